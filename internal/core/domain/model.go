package domain

import (
	"sync"
	"time"
)

// ModelID is the single model identity this gateway advertises. The
// on-device Generator is opaque - it does not expose a model catalogue of
// its own, so the gateway invents a stable, well-known id both wire
// dialects can key off.
const (
	ModelID       = "apple.local"
	ModelIDOllama = "apple.local:latest"
)

// Model is the OpenAI-shaped model listing entry. Created is captured once
// at process start and never changes for the lifetime of the process.
type Model struct {
	ID        string `json:"id"`
	Object    string `json:"object"`
	OwnedBy   string `json:"owned_by"`
	Created   int64  `json:"created"`
}

// modelClock captures the process-start timestamp exactly once. Reads are
// lock-free after init: this is written a single time before any handler
// goroutine starts and never changes afterward.
var modelClock = time.Now().Unix()

// CurrentModel returns the single advertised Model with the process-start
// timestamp.
func CurrentModel() Model {
	return Model{
		ID:      ModelID,
		Object:  "model",
		OwnedBy: "system",
		Created: modelClock,
	}
}

// ModelCreatedAt returns the process-start unix timestamp used both by the
// OpenAI model listing and the Ollama tags/modified_at field.
func ModelCreatedAt() int64 {
	return modelClock
}

// ServerState is the process-scoped, mutable record of the Server
// Controller's lifecycle. Only the controller mutates it; everyone else
// reads through the accessor methods below, which take the lock.
type ServerState struct {
	mu             sync.RWMutex
	Port           int
	Running        bool
	LastError      string
	FallbackCursor int
}

func (s *ServerState) Snapshot() (port int, running bool, lastErr string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Port, s.Running, s.LastError
}

func (s *ServerState) SetRunning(port int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Port = port
	s.Running = true
	s.LastError = ""
}

func (s *ServerState) SetStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Running = false
}

func (s *ServerState) SetError(err string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Running = false
	s.LastError = err
}

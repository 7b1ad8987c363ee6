// Package server owns the gateway's listener lifecycle: port selection
// with fallback, idempotent start/stop/restart, and the thread-safe
// state a status endpoint can read without touching the listener.
package server

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/thushan/pigate/internal/core/domain"
	"github.com/thushan/pigate/internal/logger"
	"github.com/thushan/pigate/internal/transport/httpserver"
)

// Controller owns exactly one listener at a time and exposes
// thread-safe accessors for its running/port/last-error state.
type Controller struct {
	handler       httpserver.Handler
	log           *logger.StyledLogger
	host          string
	fallbackPorts []int
	state         domain.ServerState

	mu       sync.Mutex
	cancel   context.CancelFunc
	listener net.Listener
	running  bool
}

func New(host string, primaryPort int, fallbackPorts []int, handler httpserver.Handler, log *logger.StyledLogger) *Controller {
	return &Controller{
		handler:       handler,
		log:           log,
		host:          host,
		fallbackPorts: prependUnique(primaryPort, fallbackPorts),
	}
}

func prependUnique(primary int, rest []int) []int {
	ports := []int{primary}
	for _, p := range rest {
		if p != primary {
			ports = append(ports, p)
		}
	}
	return ports
}

// Start attempts to bind the configured port, falling through the
// fallback list on address-in-use errors. It is idempotent: calling it
// while already running logs and returns nil.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		c.log.Info("server already running, ignoring start")
		return nil
	}
	c.mu.Unlock()

	var listener net.Listener
	var boundPort int
	var lastErr error

	for _, port := range c.fallbackPorts {
		addr := fmt.Sprintf("%s:%d", c.host, port)
		ln, err := net.Listen("tcp", addr)
		if err == nil {
			listener = ln
			boundPort = port
			if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
				boundPort = tcp.Port
			}
			break
		}
		lastErr = err
		if !isAddrInUse(err) {
			break
		}
		c.log.Warn("port unavailable, trying fallback", "port", port, "error", err)
	}

	if listener == nil {
		errMsg := "no port available"
		if lastErr != nil {
			errMsg = lastErr.Error()
		}
		c.state.SetError(errMsg)
		return &domain.ListenerError{Port: boundPort, Err: lastErr}
	}

	serveCtx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.listener = listener
	c.cancel = cancel
	c.running = true
	c.mu.Unlock()

	c.state.SetRunning(boundPort)
	c.log.Info("gateway listening", "port", boundPort)

	go httpserver.Serve(serveCtx, listener, c.handler, c.log.GetUnderlying())

	return nil
}

// Stop cancels the listener and every live connection derived from its
// context, then blocks until the socket is closed.
func (c *Controller) Stop() error {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return nil
	}
	cancel := c.cancel
	listener := c.listener
	c.running = false
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if listener != nil {
		_ = listener.Close()
	}

	c.state.SetStopped()
	return nil
}

// Restart stops the controller and starts it again, walking the same
// port list from the configured primary port; the previously bound port
// is not tried first.
func (c *Controller) Restart(ctx context.Context) error {
	if err := c.Stop(); err != nil {
		return err
	}
	return c.Start(ctx)
}

// Snapshot returns the current port, running flag, and last error.
func (c *Controller) Snapshot() (port int, running bool, lastErr string) {
	return c.state.Snapshot()
}

func isAddrInUse(err error) bool {
	return strings.Contains(err.Error(), "address already in use")
}

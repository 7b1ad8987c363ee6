// Package pool wraps sync.Pool in a generic, type-safe Get/Put pair so
// callers on a hot path never write an interface{} type assertion by hand.
//
// The gateway's connection loop pools the per-request *bytes.Buffer it
// accumulates incoming bytes into (internal/transport/httpserver/conn.go):
//
//	var bufPool, _ = pool.NewLitePool(func() *bytes.Buffer {
//	    return bytes.NewBuffer(make([]byte, 0, 4096))
//	})
//
//	buf := bufPool.Get()
//	defer bufPool.Put(buf)
package pool

import (
	"fmt"
	"sync"
)

// Resettable is implemented by pooled values that need to clear their
// state before going back in the pool. Put calls Reset automatically when
// the pooled type satisfies this interface.
type Resettable interface {
	Reset()
}

// Pool is a typed wrapper around sync.Pool. Every value it hands back from
// Get is guaranteed to be a T, so callers never assert the type themselves.
type Pool[T any] struct {
	pool sync.Pool
}

// NewLitePool builds a Pool whose sync.Pool.New calls newFn. newFn must be
// non-nil and must not itself produce a nil value - both are checked once
// up front rather than on every Get.
func NewLitePool[T any](newFn func() T) (*Pool[T], error) {
	if newFn == nil {
		return nil, fmt.Errorf("pool: constructor must not be nil")
	}
	if any(newFn()) == nil {
		return nil, fmt.Errorf("pool: constructor returned a nil value")
	}

	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				v := newFn()
				if any(v) == nil {
					panic("pool: constructor returned a nil value at runtime")
				}
				return v
			},
		},
	}, nil
}

// Get returns a pooled T, constructing a fresh one if the pool is empty.
func (p *Pool[T]) Get() T {
	//nolint:forcetypeassert // NewLitePool validated every value New can produce
	return p.pool.Get().(T)
}

// Put returns v to the pool, resetting it first if it implements Resettable.
func (p *Pool[T]) Put(v T) {
	if r, ok := any(v).(Resettable); ok {
		r.Reset()
	}
	p.pool.Put(v)
}

// Package relay hands values from threads we don't control to a single Go
// consumer through a bounded FIFO queue.
package relay

import (
	"sync"
	"sync/atomic"
	"time"
)

// Relay delivers pushed values to a handler in the order they were pushed.
type Relay[T any] struct {
	queue   chan T
	wait    time.Duration
	deliver func(T)

	dropped atomic.Uint64

	closeMu sync.RWMutex
	closed  bool
	done    chan struct{}
}

// New starts a relay with room for size pending values. When the queue is
// full Push waits up to wait for space before dropping the value.
func New[T any](size int, wait time.Duration, deliver func(T)) *Relay[T] {
	if size < 1 {
		size = 1
	}
	r := &Relay[T]{
		queue:   make(chan T, size),
		wait:    wait,
		deliver: deliver,
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *Relay[T]) loop() {
	defer close(r.done)
	for v := range r.queue {
		r.deliver(v)
	}
}

// Push queues v. It reports false if v was dropped because the queue stayed
// full or the relay is closed.
func (r *Relay[T]) Push(v T) bool {
	r.closeMu.RLock()
	defer r.closeMu.RUnlock()

	if r.closed {
		r.dropped.Add(1)
		return false
	}

	select {
	case r.queue <- v:
		return true
	default:
	}

	if r.wait <= 0 {
		r.dropped.Add(1)
		return false
	}

	timer := time.NewTimer(r.wait)
	defer timer.Stop()

	select {
	case r.queue <- v:
		return true
	case <-timer.C:
		r.dropped.Add(1)
		return false
	}
}

// Dropped returns the number of values that were never delivered.
func (r *Relay[T]) Dropped() uint64 {
	return r.dropped.Load()
}

// Close stops accepting values and waits until everything already queued
// has been delivered.
func (r *Relay[T]) Close() {
	r.closeMu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.closeMu.Unlock()

	<-r.done
}

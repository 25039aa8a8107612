// Package worker runs functions on a single locked OS thread.
//
// libgphoto2 is not safe for concurrent use and some camera drivers keep
// thread-affine state, so every native call made on behalf of a gphoto2
// context is funneled through one Thread.
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrStopped is returned by Do after Stop has been called.
var ErrStopped = errors.New("worker: thread stopped")

type task struct {
	fn   func()
	done chan struct{}
}

// Thread executes submitted functions in FIFO order on one OS thread.
type Thread struct {
	tasks chan task

	stopOnce sync.Once
	stop     chan struct{}
	exited   chan struct{}
}

// New starts a Thread. queue is the number of tasks that may be waiting
// before Do blocks.
func New(queue int) *Thread {
	t := &Thread{
		tasks:  make(chan task, queue),
		stop:   make(chan struct{}),
		exited: make(chan struct{}),
	}
	go t.loop()
	return t
}

func (t *Thread) loop() {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(t.exited)

	for {
		select {
		case tk := <-t.tasks:
			tk.fn()
			close(tk.done)
		case <-t.stop:
			// Finish whatever was queued before Stop.
			for {
				select {
				case tk := <-t.tasks:
					tk.fn()
					close(tk.done)
				default:
					return
				}
			}
		}
	}
}

// Do runs fn on the thread and waits for it to return.
//
// If ctx is done before fn starts, fn is skipped and ctx.Err() is returned.
// Once fn has started Do waits for it regardless of ctx; callers that need to
// interrupt a running native call must do so through the native library.
func (t *Thread) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	started := make(chan struct{})
	var skipped bool
	var mu sync.Mutex

	tk := task{
		fn: func() {
			mu.Lock()
			if skipped {
				mu.Unlock()
				return
			}
			close(started)
			mu.Unlock()
			fn()
		},
		done: make(chan struct{}),
	}

	select {
	case <-t.stop:
		return ErrStopped
	default:
	}

	select {
	case t.tasks <- tk:
	case <-t.stop:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-tk.done:
		return nil
	case <-started:
		<-tk.done
		return nil
	case <-t.exited:
		select {
		case <-tk.done:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		mu.Lock()
		select {
		case <-started:
			mu.Unlock()
			<-tk.done
			return nil
		default:
			skipped = true
			mu.Unlock()
			return ctx.Err()
		}
	}
}

// Stop runs the already queued tasks and terminates the thread. It blocks
// until the thread has exited. Calling Stop from inside a task deadlocks.
func (t *Thread) Stop() {
	t.stopOnce.Do(func() {
		close(t.stop)
	})
	<-t.exited
}

package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestDoRunsOnOneThread(t *testing.T) {
	th := New(4)
	defer th.Stop()

	tids := make(map[int]struct{})
	for i := 0; i < 20; i++ {
		require.NoError(t, th.Do(context.Background(), func() {
			tids[unix.Gettid()] = struct{}{}
		}))
	}
	assert.Len(t, tids, 1)
}

func TestDoPreservesOrder(t *testing.T) {
	th := New(64)
	defer th.Stop()

	var mu sync.Mutex
	var got []int

	var wg sync.WaitGroup
	block := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		th.Do(context.Background(), func() { <-block })
	}()
	// Give the blocking task time to occupy the thread.
	time.Sleep(20 * time.Millisecond)

	for i := 0; i < 10; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.Do(context.Background(), func() {
				mu.Lock()
				got = append(got, i)
				mu.Unlock()
			})
		}()
		time.Sleep(5 * time.Millisecond)
	}
	close(block)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestDoCancelledBeforeStart(t *testing.T) {
	th := New(1)
	defer th.Stop()

	block := make(chan struct{})
	go th.Do(context.Background(), func() { <-block })
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	ran := false
	err := th.Do(ctx, func() { ran = true })
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(block)
	// Flush the queue so the skipped task has been consumed.
	require.NoError(t, th.Do(context.Background(), func() {}))
	assert.False(t, ran)
}

func TestDoWaitsForRunningTask(t *testing.T) {
	th := New(1)
	defer th.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	finished := false
	err := th.Do(ctx, func() {
		cancel()
		time.Sleep(10 * time.Millisecond)
		finished = true
	})
	assert.NoError(t, err)
	assert.True(t, finished)
}

func TestStop(t *testing.T) {
	th := New(1)
	th.Stop()
	th.Stop()

	err := th.Do(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrStopped)
}

package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseWorkerStopBeforeStartIsNoOp(t *testing.T) {
	w := NewBaseWorker("base-test")

	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())

	select {
	case <-w.StopChan:
		t.Fatal("stop channel closed for a worker that never started")
	default:
	}
}

func TestBaseWorkerStopIsSafeUnderConcurrency(t *testing.T) {
	w := NewBaseWorker("base-test")
	w.markRunning()
	assert.True(t, w.IsRunning())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, w.Stop())
		}()
	}
	wg.Wait()

	assert.False(t, w.IsRunning())
}

func TestSyncWorkerStopEndsLoop(t *testing.T) {
	w := NewSyncWorker("sync-test", nil, time.Hour)

	done := make(chan error, 1)
	go func() {
		done <- w.Start(context.Background())
	}()

	require.Eventually(t, w.IsRunning, time.Second, 10*time.Millisecond)
	require.NoError(t, w.Stop())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestSyncWorkerStopsOnContextCancel(t *testing.T) {
	w := NewSyncWorker("sync-test", nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	require.Eventually(t, w.IsRunning, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}

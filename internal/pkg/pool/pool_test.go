package pool

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunsSubmittedJobs(t *testing.T) {
	p := New(3, 10)

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		require.True(t, p.TrySubmit(func() { n.Add(1) }))
	}
	p.Close()
	p.Wait()

	require.Equal(t, int32(10), n.Load())
}

func TestDropsWhenFull(t *testing.T) {
	p := New(1, 1)

	release := make(chan struct{})
	started := make(chan struct{})
	require.True(t, p.TrySubmit(func() {
		close(started)
		<-release
	}))
	<-started

	// worker is busy, one slot in the queue
	require.True(t, p.TrySubmit(func() {}))
	require.False(t, p.TrySubmit(func() {}))
	require.Equal(t, 1, p.Pending())

	close(release)
	p.Close()
	p.Wait()
}

func TestSubmitAfterClose(t *testing.T) {
	p := New(1, 1)
	p.Close()
	p.Close()
	p.Wait()

	require.False(t, p.TrySubmit(func() {}))
}

func TestNilJobIsSkipped(t *testing.T) {
	p := New(0, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	// unbuffered queue: keep trying until the worker is ready to receive
	for !p.TrySubmit(nil) {
	}
	for !p.TrySubmit(wg.Done) {
	}
	wg.Wait()

	p.Close()
	p.Wait()
}

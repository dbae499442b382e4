package trigger

import (
	"sync"
	"testing"
	"time"
)

func receive(t *testing.T, q *Queue) {
	t.Helper()
	select {
	case <-q.C():
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for trigger")
	}
}

func expectNone(t *testing.T, q *Queue) {
	t.Helper()
	select {
	case <-q.C():
		t.Fatalf("unexpected extra trigger")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestQueue_NoTriggerLost(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	// Far more than the inbound buffer, pushed before anyone reads.
	const n = 500
	for i := 0; i < n; i++ {
		q.Push()
	}
	for i := 0; i < n; i++ {
		receive(t, q)
	}
	expectNone(t, q)
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	q := NewQueue()
	defer q.Close()

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				q.Push()
			}
		}()
	}
	for i := 0; i < 200; i++ {
		receive(t, q)
	}
	wg.Wait()
	expectNone(t, q)
}

func TestQueue_PushAfterCloseDoesNotBlock(t *testing.T) {
	q := NewQueue()
	q.Close()
	q.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			q.Push()
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("push blocked after close")
	}
}

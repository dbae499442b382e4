// Package trigger turns asynchronous "advance" events into an ordered
// stream consumed by a single reader.
package trigger

import (
	"os"
	"os/signal"
	"sync"
)

// Queue counts pending triggers and hands them out one at a time on C.
// Push never drops a trigger and does not wait for the consumer.
type Queue struct {
	in   chan struct{}
	out  chan struct{}
	done chan struct{}
	once sync.Once
}

func NewQueue() *Queue {
	q := &Queue{
		in:   make(chan struct{}, 64),
		out:  make(chan struct{}),
		done: make(chan struct{}),
	}
	go q.pump()
	return q
}

// Push records one trigger. It is a no-op after Close.
func (q *Queue) Push() {
	select {
	case q.in <- struct{}{}:
	case <-q.done:
	}
}

// C delivers one value per pushed trigger, in push order.
func (q *Queue) C() <-chan struct{} { return q.out }

// Close stops delivery. Pending triggers are discarded.
func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}

func (q *Queue) pump() {
	pending := 0
	for {
		var out chan struct{}
		if pending > 0 {
			out = q.out
		}
		select {
		case <-q.in:
			pending++
		case out <- struct{}{}:
			pending--
		case <-q.done:
			return
		}
	}
}

// NotifySignals pushes one trigger into q for every delivery of sigs.
// The returned function stops forwarding. With no signals it does nothing.
func NotifySignals(q *Queue, sigs ...os.Signal) (stop func()) {
	if len(sigs) == 0 {
		return func() {}
	}
	// signal.Notify drops deliveries when the channel is full; the
	// forwarder below drains it straight into the queue.
	ch := make(chan os.Signal, 64)
	signal.Notify(ch, sigs...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range ch {
			q.Push()
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(ch)
			wg.Wait()
		})
	}
}

// Package dispatch provides a serial executor for UI-bound callbacks.
package dispatch

import "sync"

// Queue runs submitted functions one at a time, in submission order, on
// a single goroutine. It models the delivery context the presentation
// layer expects its callbacks on.
type Queue struct {
	mu     sync.Mutex
	fns    chan func()
	done   chan struct{}
	closed bool
}

// New starts the queue's worker goroutine.
func New() *Queue {
	q := &Queue{
		fns:  make(chan func(), 64),
		done: make(chan struct{}),
	}
	go q.run()
	return q
}

func (q *Queue) run() {
	defer close(q.done)
	for fn := range q.fns {
		fn()
	}
}

// Dispatch enqueues fn. Blocks only if the queue is full. After Close
// it drops fn, so background work finishing late cannot crash the
// process.
func (q *Queue) Dispatch(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.fns <- fn
}

// Close stops accepting work and waits for queued functions to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.fns)
	}
	q.mu.Unlock()
	<-q.done
}

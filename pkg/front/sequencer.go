package front

import (
	"sync"

	"src.smolcalc.dev/pkg/errutil"
)

// Sequencer orders asynchronous evaluations. Each request takes a ticket
// before it starts; its result may only be shown if the ticket is still the
// latest one when it completes. Later requests thus supersede earlier ones
// regardless of completion order.
type Sequencer struct {
	mu     sync.Mutex
	latest uint64
}

// Next issues a new ticket, superseding all earlier ones.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	return s.latest
}

// Current reports whether ticket is the latest one issued.
func (s *Sequencer) Current(ticket uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ticket == s.latest
}

// Queue runs operations in the order they were pushed, whichever goroutine
// drains it. Hosts that run each operation in its own goroutine push
// synchronously and drain asynchronously, so that an earlier operation can
// never change the state after a later one.
type Queue struct {
	mu      sync.Mutex
	pending []func() error

	runMu sync.Mutex
}

// Push appends op to the queue.
func (q *Queue) Push(op func() error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, op)
}

// Drain runs all pending operations, including those pushed while it runs.
// When it returns, every operation pushed before the call has completed.
func (q *Queue) Drain() error {
	q.runMu.Lock()
	defer q.runMu.Unlock()
	var errs []error
	for {
		q.mu.Lock()
		if len(q.pending) == 0 {
			q.mu.Unlock()
			return errutil.Multi(errs...)
		}
		op := q.pending[0]
		q.pending = q.pending[1:]
		q.mu.Unlock()
		errs = append(errs, op())
	}
}

// Package elementwise drives a batch of independent iterations in lockstep.
//
// Every element of the batch shares one loop counter. Elements stop on their
// own schedule: once the termination check marks an element as done its
// counters and status are recorded, its result is retired through the Work
// implementation, and it is compacted out of the active set so later steps
// never touch it again.
package elementwise

import (
	"errors"
	"fmt"
)

// ErrNegativeMaxIter is returned by Loop for a negative iteration cap.
var ErrNegativeMaxIter = errors.New("maxiter must be non-negative")

// Work is the per-problem state advanced by Loop. Positions passed to the
// methods index the currently active elements, which are always the first
// Len() entries of the implementation's slices.
type Work interface {
	// Advance moves to the next term and returns its index. The index is
	// shared by all active elements.
	Advance() int
	// Evaluate computes whatever the step needs for term n, for the active
	// elements only.
	Evaluate(n int) error
	// Step applies one update to every active element.
	Step()
	// Check records terminal statuses for active elements and marks them in
	// stop. Elements it leaves alone must stay StatusInProgress.
	Check(status []Status, stop []bool)
	// Retire copies the final value of active position pos into result slot.
	Retire(pos, slot int)
	// Compact keeps only the active positions listed in keep, in order.
	Compact(keep []int)
}

// Outcome holds the per-element bookkeeping of a finished loop. Slices are
// indexed by the element's original position in the batch.
type Outcome struct {
	Status []Status
	Nit    []int
	Nfev   []int
	// Iterations is the number of loop iterations actually run.
	Iterations int
}

type loop struct {
	w      Work
	out    Outcome
	active []int // active position -> original slot
	status []Status
	stop   []bool
	keep   []int
	nit    int
	nfev   int
}

// Loop iterates w until every element is terminal or maxiter iterations have
// run. size is the batch size and w must already hold the state produced by
// one evaluation, which is why every element reports nfev = nit + 1.
//
// Elements still active at the cap end with StatusMaxIterations. An error
// from Evaluate aborts the loop; the returned Outcome then only describes
// the elements retired so far.
func Loop(w Work, size, maxiter int) (Outcome, error) {
	if maxiter < 0 {
		return Outcome{}, fmt.Errorf("%w: got %d", ErrNegativeMaxIter, maxiter)
	}
	l := &loop{
		w: w,
		out: Outcome{
			Status: make([]Status, size),
			Nit:    make([]int, size),
			Nfev:   make([]int, size),
		},
		active: make([]int, size),
		status: make([]Status, size),
		stop:   make([]bool, size),
		keep:   make([]int, 0, size),
		nfev:   1,
	}
	for i := range l.active {
		l.active[i] = i
		l.status[i] = StatusInProgress
		l.out.Status[i] = StatusInProgress
	}

	l.check()
	for l.nit < maxiter && len(l.active) > 0 {
		n := w.Advance()
		if err := w.Evaluate(n); err != nil {
			l.out.Iterations = l.nit
			return l.out, fmt.Errorf("evaluate term %d: %w", n, err)
		}
		l.nfev++
		w.Step()
		l.nit++
		l.check()
	}
	l.out.Iterations = l.nit

	for pos := range l.active {
		l.status[pos] = StatusMaxIterations
		l.retire(pos)
	}
	l.active = l.active[:0]
	return l.out, nil
}

// check runs the termination test, retires stopped elements and compacts
// the survivors.
func (l *loop) check() {
	m := len(l.active)
	stop := l.stop[:m]
	clear(stop)
	l.w.Check(l.status[:m], stop)

	l.keep = l.keep[:0]
	for pos := 0; pos < m; pos++ {
		if stop[pos] || l.status[pos].Terminal() {
			l.retire(pos)
			continue
		}
		l.keep = append(l.keep, pos)
	}
	if len(l.keep) == m {
		return
	}

	for i, pos := range l.keep {
		l.active[i] = l.active[pos]
		l.status[i] = l.status[pos]
	}
	l.active = l.active[:len(l.keep)]
	l.status = l.status[:len(l.keep)]
	l.w.Compact(l.keep)
}

func (l *loop) retire(pos int) {
	slot := l.active[pos]
	l.out.Status[slot] = l.status[pos]
	l.out.Nit[slot] = l.nit
	l.out.Nfev[slot] = l.nfev
	l.w.Retire(pos, slot)
}

// Package hostkit holds the bookkeeping shared by the canvasfx hosts:
// ordered listener sets with idempotent release, and a frame callback queue.
package hostkit

import (
	"slices"

	"github.com/phanxgames/canvasfx"
)

// Listeners is an ordered set of callbacks keyed by subscription id. The
// zero value is ready to use.
type Listeners[F any] struct {
	next int
	ids  []int
	fns  map[int]F
}

// Add subscribes fn and returns its release function. Releasing twice is a
// no-op.
func (l *Listeners[F]) Add(fn F) func() {
	if l.fns == nil {
		l.fns = make(map[int]F)
	}
	l.next++
	id := l.next
	l.ids = append(l.ids, id)
	l.fns[id] = fn
	return func() {
		if _, ok := l.fns[id]; !ok {
			return
		}
		delete(l.fns, id)
		l.ids = slices.DeleteFunc(l.ids, func(v int) bool { return v == id })
	}
}

// Each calls call for every listener subscribed when Each started. A
// listener released by an earlier one in the same pass is skipped.
func (l *Listeners[F]) Each(call func(F)) {
	for _, id := range slices.Clone(l.ids) {
		if fn, ok := l.fns[id]; ok {
			call(fn)
		}
	}
}

// Len returns the number of live subscriptions.
func (l *Listeners[F]) Len() int { return len(l.ids) }

type frameRequest struct {
	token canvasfx.FrameToken
	fn    func()
}

// FrameQueue implements canvasfx.FrameScheduler for hosts that tick on
// their own loop. Callbacks requested while Run is executing wait for the
// next Run, like animation frame callbacks.
type FrameQueue struct {
	next    canvasfx.FrameToken
	pending []frameRequest
	runs    uint64
}

// RequestFrame queues fn for the next Run.
func (q *FrameQueue) RequestFrame(fn func()) canvasfx.FrameToken {
	q.next++
	q.pending = append(q.pending, frameRequest{token: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a queued callback. Unknown tokens are ignored.
func (q *FrameQueue) CancelFrame(token canvasfx.FrameToken) {
	q.pending = slices.DeleteFunc(q.pending, func(r frameRequest) bool { return r.token == token })
}

// Run executes every callback queued before the call and returns how many
// ran.
func (q *FrameQueue) Run() int {
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		r.fn()
	}
	q.runs++
	return len(batch)
}

// Len returns the number of queued callbacks.
func (q *FrameQueue) Len() int { return len(q.pending) }

// Runs returns how many times Run was called.
func (q *FrameQueue) Runs() uint64 { return q.runs }

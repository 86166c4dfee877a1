// Package looptest provides a deterministic eventloop.Loop driven by a virtual clock.
package looptest

import (
	"sort"
	"time"

	"github.com/datatug/sdtug/pkg/eventloop"
)

var _ eventloop.Loop = (*Fake)(nil)

// Fake runs callbacks only when the test advances the clock.
// Go runs its work synchronously; whatever the work posts is queued
// at the current virtual time.
type Fake struct {
	now   time.Duration
	seq   int
	tasks []*task

	// HoldWork makes Go queue its work until RunWork is called,
	// which lets a test reorder completions.
	HoldWork bool
	held     []func()
}

type task struct {
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *task) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func New() *Fake {
	return &Fake{}
}

// Now is the virtual time elapsed since the fake was created.
func (l *Fake) Now() time.Duration {
	return l.now
}

func (l *Fake) Post(f func()) {
	l.schedule(0, f)
}

func (l *Fake) AfterFunc(d time.Duration, f func()) eventloop.Timer {
	return l.schedule(d, f)
}

func (l *Fake) Go(work func()) {
	if l.HoldWork {
		l.held = append(l.held, work)
		return
	}
	work()
}

// HeldWork is the number of Go calls waiting for RunWork.
func (l *Fake) HeldWork() int {
	return len(l.held)
}

// RunWork runs held work in the order it was submitted.
func (l *Fake) RunWork() {
	for len(l.held) > 0 {
		work := l.held[0]
		l.held = l.held[1:]
		work()
	}
}

func (l *Fake) schedule(d time.Duration, f func()) *task {
	if d < 0 {
		d = 0
	}
	l.seq++
	t := &task{due: l.now + d, seq: l.seq, f: f}
	l.tasks = append(l.tasks, t)
	return t
}

// Pending is the number of callbacks that are scheduled and not stopped.
func (l *Fake) Pending() int {
	n := 0
	for _, t := range l.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// RunPending runs everything due at the current time, including
// callbacks posted by the callbacks it runs.
func (l *Fake) RunPending() {
	l.Advance(0)
}

// Advance moves the clock forward by d, running due callbacks in order
// of their due time and then of scheduling.
func (l *Fake) Advance(d time.Duration) {
	target := l.now + d
	for {
		next := l.next(target)
		if next == nil {
			break
		}
		l.now = next.due
		next.fired = true
		next.f()
	}
	l.now = target
	l.compact()
}

func (l *Fake) next(target time.Duration) *task {
	var due []*task
	for _, t := range l.tasks {
		if !t.stopped && !t.fired && t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (l *Fake) compact() {
	tasks := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.stopped && !t.fired {
			tasks = append(tasks, t)
		}
	}
	l.tasks = tasks
}

// Package eventloop runs UI state changes on a single goroutine.
//
// Callbacks passed to Post and AfterFunc always run on the loop,
// so state they touch needs no locking. Blocking work goes through Go
// and posts its result back.
package eventloop

import (
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from being queued.
	// It returns false if the timer already fired or was stopped.
	Stop() bool
}

type Loop interface {
	Post(f func())
	AfterFunc(d time.Duration, f func()) Timer
	Go(work func())
}

// QueueFunc hands a callback to the goroutine that owns the UI,
// e.g. (*tview.Application).QueueUpdateDraw.
type QueueFunc func(f func())

// New returns a Loop whose callbacks run through queue.
func New(queue QueueFunc) Loop {
	return &queueLoop{queue: queue}
}

type queueLoop struct {
	queue QueueFunc
}

// Post never blocks the caller. Callbacks posted from different goroutines
// have no ordering guarantee.
func (l *queueLoop) Post(f func()) {
	go l.queue(f)
}

func (l *queueLoop) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, func() {
		l.queue(f)
	})
}

func (l *queueLoop) Go(work func()) {
	go work()
}

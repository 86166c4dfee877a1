// Package navigator wraps *tview.Application behind an interface the UI can be tested against.
package navigator

import (
	"github.com/rivo/tview"
)

//go:generate mockgen -destination=mock_app.go -package=navigator . App

type App interface {
	Run() error
	QueueUpdateDraw(f func())
	SetFocus(p tview.Primitive)
	SetRoot(root tview.Primitive, fullscreen bool)
	Stop()
	EnableMouse(bool)
}

type (
	UpdateDrawQueuer func(f func())
	Focuser          func(p tview.Primitive)
	RootSetter       func(root tview.Primitive, fullscreen bool)
)

type AppOption func(a *appProxy)

// NewApp returns an App that forwards to app. Options replace individual methods;
// with a nil app every method not replaced is a no-op.
func NewApp(app *tview.Application, o ...AppOption) App {
	a := &appProxy{
		queueUpdateDraw: func(f func()) {},
		setFocus:        func(tview.Primitive) {},
		setRoot:         func(tview.Primitive, bool) {},
		enableMouse:     func(bool) {},
		run:             func() error { return nil },
		stop:            func() {},
	}
	if app != nil {
		a.setFocus = func(p tview.Primitive) {
			_ = app.SetFocus(p)
		}
		a.setRoot = func(root tview.Primitive, fullscreen bool) {
			_ = app.SetRoot(root, fullscreen)
		}
		a.enableMouse = func(b bool) {
			_ = app.EnableMouse(b)
		}
		a.queueUpdateDraw = func(f func()) {
			_ = app.QueueUpdateDraw(f)
		}
		a.run = app.Run
		a.stop = app.Stop
	}
	for _, opt := range o {
		opt(a)
	}
	return a
}

func WithQueueUpdateDraw(queueUpdateDraw UpdateDrawQueuer) AppOption {
	return func(a *appProxy) {
		a.queueUpdateDraw = queueUpdateDraw
	}
}

func WithSetFocus(setFocus Focuser) AppOption {
	return func(a *appProxy) {
		a.setFocus = setFocus
	}
}

func WithSetRoot(setRoot RootSetter) AppOption {
	return func(a *appProxy) {
		a.setRoot = setRoot
	}
}

func WithEnableMouse(enableMouse func(bool)) AppOption {
	return func(a *appProxy) {
		a.enableMouse = enableMouse
	}
}

func WithRun(run func() error) AppOption {
	return func(a *appProxy) {
		a.run = run
	}
}

func WithStop(stop func()) AppOption {
	return func(a *appProxy) {
		a.stop = stop
	}
}

var _ App = (*appProxy)(nil)

type appProxy struct {
	queueUpdateDraw UpdateDrawQueuer
	setFocus        Focuser
	setRoot         RootSetter
	enableMouse     func(bool)
	run             func() error
	stop            func()
}

func (a appProxy) EnableMouse(b bool) {
	a.enableMouse(b)
}

func (a appProxy) QueueUpdateDraw(f func()) {
	a.queueUpdateDraw(f)
}

func (a appProxy) SetFocus(p tview.Primitive) {
	a.setFocus(p)
}

func (a appProxy) SetRoot(root tview.Primitive, fullscreen bool) {
	a.setRoot(root, fullscreen)
}

func (a appProxy) Run() error {
	return a.run()
}

func (a appProxy) Stop() {
	a.stop()
}

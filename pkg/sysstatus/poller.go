// Package sysstatus polls /api/system/status for the system page.
package sysstatus

import (
	"context"
	"time"

	"github.com/datatug/sdtug/pkg/device"
	"github.com/datatug/sdtug/pkg/eventloop"
	"github.com/datatug/sdtug/pkg/logging"
	"go.uber.org/zap"
)

const PollInterval = 5 * time.Second

type Source interface {
	SystemStatus(ctx context.Context) (*device.SystemStatus, error)
}

// View renders the system page. It is called on the event loop.
type View interface {
	ShowSystemStatus(model Model)
}

// Poller refreshes the system page while it is visible.
// A tick that arrives while a request is outstanding is skipped.
type Poller struct {
	loop   eventloop.Loop
	source Source
	view   View
	log    *zap.Logger

	active   bool
	session  int
	inFlight bool
	timer    eventloop.Timer
}

func NewPoller(loop eventloop.Loop, source Source, view View) *Poller {
	return &Poller{
		loop:   loop,
		source: source,
		view:   view,
		log:    logging.L().Named("sysstatus"),
	}
}

func (p *Poller) Active() bool {
	return p.active
}

// Start fetches the status right away and then every PollInterval.
func (p *Poller) Start() {
	if p.active {
		return
	}
	p.active = true
	p.session++
	p.inFlight = false
	p.Update()
	p.schedule()
}

func (p *Poller) Stop() {
	if !p.active {
		return
	}
	p.active = false
	p.session++
	p.inFlight = false
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Poller) schedule() {
	session := p.session
	p.timer = p.loop.AfterFunc(PollInterval, func() {
		if !p.active || session != p.session {
			return
		}
		p.Update()
		p.schedule()
	})
}

// Update fetches the status once unless a request is already outstanding.
func (p *Poller) Update() {
	if p.inFlight {
		p.log.Debug("system status update skipped, previous request in flight")
		return
	}
	p.inFlight = true
	session := p.session
	p.loop.Go(func() {
		status, err := p.source.SystemStatus(context.Background())
		p.loop.Post(func() {
			if session != p.session {
				return
			}
			p.inFlight = false
			if err != nil {
				p.log.Warn("failed to fetch system status", zap.Error(err))
				p.view.ShowSystemStatus(PlaceholderModel())
				return
			}
			p.view.ShowSystemStatus(BuildModel(status))
		})
	})
}

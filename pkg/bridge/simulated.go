package bridge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// SimulatedPairer walks the pairing lifecycle on timers instead of talking
// to a real messaging backend: connecting, then a pairing code, then
// connected. Each Connect issues a fresh code.
type SimulatedPairer struct {
	latency time.Duration

	mu        sync.Mutex
	status    Status
	timers    []*time.Timer
	onStatus  func(Status)
	onPayload func(string)
}

func NewSimulatedPairer(latency time.Duration) *SimulatedPairer {
	return &SimulatedPairer{latency: latency, status: StatusDisconnected}
}

func (p *SimulatedPairer) OnStatus(callback func(Status)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStatus = callback
}

func (p *SimulatedPairer) OnPairingPayload(callback func(string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onPayload = callback
}

func (p *SimulatedPairer) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusDisconnected {
		return fmt.Errorf("pairer already %s", p.status)
	}

	p.setStatusLocked(StatusConnecting)
	p.timers = append(p.timers, time.AfterFunc(p.latency, p.issuePayload))
	return nil
}

func (p *SimulatedPairer) issuePayload() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusConnecting {
		return
	}

	payload := uuid.New().String()
	log.Debugf("simulated pairer issued pairing code %s", payload)
	if p.onPayload != nil {
		p.onPayload(payload)
	}
	p.timers = append(p.timers, time.AfterFunc(p.latency, p.completeConnect))
}

func (p *SimulatedPairer) completeConnect() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.status != StatusConnecting {
		return
	}
	p.setStatusLocked(StatusConnected)
}

func (p *SimulatedPairer) Disconnect() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, timer := range p.timers {
		timer.Stop()
	}
	p.timers = nil
	p.setStatusLocked(StatusDisconnected)
	return nil
}

func (p *SimulatedPairer) setStatusLocked(status Status) {
	p.status = status
	if p.onStatus != nil {
		p.onStatus(status)
	}
}

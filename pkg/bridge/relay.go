package bridge

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

type EventType string

const (
	EventStatus EventType = "status"
	EventQR     EventType = "qr"
)

type Event struct {
	Type EventType `json:"type"`
	Data string    `json:"data"`
}

type State struct {
	Status  Status `json:"status"`
	Payload string `json:"payload,omitempty"`
}

// Relay sits between one Pairer and any number of channel subscribers. It
// retains the last status and pairing payload so a subscriber arriving
// mid-handshake still sees the current picture.
type Relay struct {
	pairer Pairer

	mu          sync.Mutex
	state       State
	subscribers map[int]chan Event
	nextSub     int
}

func NewRelay(pairer Pairer) *Relay {
	relay := &Relay{
		pairer:      pairer,
		state:       State{Status: StatusDisconnected},
		subscribers: make(map[int]chan Event),
	}
	pairer.OnStatus(relay.handleStatus)
	pairer.OnPairingPayload(relay.handlePayload)
	return relay
}

func (r *Relay) Connect(ctx context.Context) error {
	return r.pairer.Connect(ctx)
}

func (r *Relay) Disconnect() error {
	return r.pairer.Disconnect()
}

func (r *Relay) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Subscribe registers a push channel and immediately replays the retained
// state into it. The returned function drops the subscription.
func (r *Relay) Subscribe() (<-chan Event, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// buffered enough for the replay plus a full handshake burst
	channel := make(chan Event, 16)
	id := r.nextSub
	r.nextSub++
	r.subscribers[id] = channel

	channel <- Event{Type: EventStatus, Data: string(r.state.Status)}
	if r.state.Payload != "" {
		channel <- Event{Type: EventQR, Data: r.state.Payload}
	}

	return channel, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if subscriber, ok := r.subscribers[id]; ok {
			delete(r.subscribers, id)
			close(subscriber)
		}
	}
}

func (r *Relay) handleStatus(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Status = status
	// a pairing code is only meaningful mid-handshake
	if status == StatusConnected || status == StatusDisconnected {
		r.state.Payload = ""
	}
	r.broadcast(Event{Type: EventStatus, Data: string(status)})
}

func (r *Relay) handlePayload(payload string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Payload = payload
	r.broadcast(Event{Type: EventQR, Data: payload})
}

// broadcast drops events for subscribers that stopped draining rather than
// blocking the pairer callback. Callers hold the lock.
func (r *Relay) broadcast(event Event) {
	for id, subscriber := range r.subscribers {
		select {
		case subscriber <- event:
		default:
			log.Warnf("bridge subscriber %d is not draining, dropping %s event", id, event.Type)
		}
	}
}

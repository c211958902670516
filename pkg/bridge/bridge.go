package bridge

import "context"

type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
)

// Pairer is the capability boundary towards a messaging backend. Implementations
// push status transitions and pairing payloads through the callbacks; reconnect
// behavior lives behind this interface, not in the relay.
type Pairer interface {
	// Connect starts the pairing lifecycle. It returns once the attempt is
	// underway, progress arrives via callbacks.
	Connect(ctx context.Context) error
	Disconnect() error
	// OnStatus and OnPairingPayload register the relay's callbacks. They are
	// called before Connect and never concurrently with it.
	OnStatus(func(Status))
	OnPairingPayload(func(payload string))
}

package bluetooth

import (
	"context"
	"io"

	"pos-bridge-backend/internal/model"
)

// DiscoveryEvents carries the callbacks fired while a discovery session runs.
// Either field may be nil.
type DiscoveryEvents struct {
	Found       func(model.Device)
	BondChanged func(model.Device, model.BondState)
}

// Adapter abstracts the host Bluetooth stack. The Linux implementation shells
// out to bluez; other platforms degrade to an unsupported adapter so the rest
// of the daemon still starts.
type Adapter interface {
	// Available reports whether a Bluetooth stack exists on this host.
	Available() bool
	// Enabled reports whether the local adapter is powered on.
	Enabled() bool
	// CheckPermissions verifies the process may drive the adapter.
	CheckPermissions() error
	// PairedDevices lists devices bonded with the local adapter.
	PairedDevices() ([]model.Device, error)
	// Pair initiates bonding with the given address. It returns once the
	// request is underway; completion is observed through discovery events.
	Pair(address string) error
	// Discover runs a discovery session until ctx is cancelled, invoking the
	// callbacks as devices appear or change bond state.
	Discover(ctx context.Context, events DiscoveryEvents) error
	// OpenStream establishes an RFCOMM byte stream to the given address.
	OpenStream(address string, channel int, secure bool) (io.WriteCloser, error)
	// IsConnected probes whether the OS reports an active link to address.
	IsConnected(address string) (bool, error)
}

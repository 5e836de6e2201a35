//go:build !linux

package bluetooth

import (
	"context"
	"io"

	"pos-bridge-backend/internal/model"
)

// unsupportedAdapter stands in on platforms without a usable Bluetooth stack.
// Queries degrade to empty results; anything that would touch hardware fails
// with ErrUnavailable.
type unsupportedAdapter struct{}

// NewAdapter returns the platform Bluetooth adapter.
func NewAdapter() Adapter {
	return unsupportedAdapter{}
}

func (unsupportedAdapter) Available() bool         { return false }
func (unsupportedAdapter) Enabled() bool           { return false }
func (unsupportedAdapter) CheckPermissions() error { return ErrUnavailable }
func (unsupportedAdapter) Pair(string) error       { return ErrUnavailable }

func (unsupportedAdapter) PairedDevices() ([]model.Device, error) {
	return nil, nil
}

func (unsupportedAdapter) Discover(context.Context, DiscoveryEvents) error {
	return ErrUnavailable
}

func (unsupportedAdapter) OpenStream(string, int, bool) (io.WriteCloser, error) {
	return nil, ErrUnavailable
}

func (unsupportedAdapter) IsConnected(string) (bool, error) {
	return false, ErrUnavailable
}

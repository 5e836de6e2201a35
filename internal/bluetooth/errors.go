package bluetooth

import "errors"

// Failure classes surfaced by the connection manager. All are recoverable:
// the manager is left in a consistent disconnected state after any of them.
var (
	ErrUnavailable      = errors.New("bluetooth adapter unavailable")
	ErrDisabled         = errors.New("bluetooth is disabled")
	ErrPermissionDenied = errors.New("bluetooth permission denied")
	ErrConnectionFailed = errors.New("connection failed")
	ErrNotConnected     = errors.New("no active connection")
	ErrIO               = errors.New("printer write failed")
	ErrPairingFailed    = errors.New("pairing failed")
	ErrScan             = errors.New("scan failed")
)

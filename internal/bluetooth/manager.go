package bluetooth

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"pos-bridge-backend/config"
	"pos-bridge-backend/internal/codec"
	"pos-bridge-backend/internal/model"
	"pos-bridge-backend/internal/store"
)

// State describes the manager's position in the connection lifecycle.
type State string

const (
	StateIdle         State = "IDLE"
	StateScanning     State = "SCANNING"
	StateConnecting   State = "CONNECTING"
	StateConnected    State = "CONNECTED"
	StateDisconnected State = "DISCONNECTED"
)

// Manager owns at most one RFCOMM link to a printer at a time. It serialises
// connect attempts, watches the link for remote drops, and remembers the last
// printer across connections so callers can reconnect later.
type Manager struct {
	adapter Adapter
	store   store.Store
	bus     *Bus
	cfg     config.BluetoothConfig

	mu         sync.Mutex
	state      State
	conn       io.WriteCloser
	connected  *model.Device
	connecting bool
	scanCancel context.CancelFunc
	scanDone   chan struct{}
	watchStop  chan struct{}
	// known caches names and types seen during discovery and enumeration so
	// connect can persist a friendly name alongside the address.
	known map[string]model.Device
}

func NewManager(adapter Adapter, st store.Store, cfg config.BluetoothConfig) *Manager {
	return &Manager{
		adapter: adapter,
		store:   st,
		bus:     NewBus(),
		cfg:     cfg,
		state:   StateIdle,
		known:   make(map[string]model.Device),
	}
}

// Events exposes the bus carrying device found, bond change and disconnect
// notifications.
func (m *Manager) Events() *Bus {
	return m.bus
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) IsBluetoothAvailable() bool {
	return m.adapter.Available()
}

func (m *Manager) IsBluetoothEnabled() bool {
	return m.adapter.Available() && m.adapter.Enabled()
}

func (m *Manager) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conn != nil
}

// ConnectedDevice returns a copy of the currently connected device, or nil.
func (m *Manager) ConnectedDevice() *model.Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connected == nil {
		return nil
	}
	d := *m.connected
	return &d
}

func (m *Manager) checkAdapter() error {
	if !m.adapter.Available() {
		return ErrUnavailable
	}
	if !m.adapter.Enabled() {
		return ErrDisabled
	}
	return nil
}

// PairedDevices lists devices bonded with the local adapter.
func (m *Manager) PairedDevices() ([]model.Device, error) {
	if err := m.checkAdapter(); err != nil {
		return nil, err
	}
	devices, err := m.adapter.PairedDevices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScan, err)
	}
	m.mu.Lock()
	for _, d := range devices {
		m.known[d.Address] = d
	}
	m.mu.Unlock()
	return devices, nil
}

// SystemConnectedPairedDevices lists paired devices the OS currently reports
// as connected. Devices whose probe fails are skipped rather than failing the
// whole listing.
func (m *Manager) SystemConnectedPairedDevices() ([]model.Device, error) {
	devices, err := m.PairedDevices()
	if err != nil {
		return nil, err
	}
	connected := make([]model.Device, 0, len(devices))
	for _, d := range devices {
		ok, err := m.adapter.IsConnected(d.Address)
		if err != nil {
			log.Printf("bluetooth: connection probe for %s failed: %v", d.Address, err)
			continue
		}
		if ok {
			connected = append(connected, d)
		}
	}
	return connected, nil
}

// StartScan begins a discovery session. A running session is cancelled and
// replaced. Each address is reported at most once per session.
func (m *Manager) StartScan() error {
	if err := m.checkAdapter(); err != nil {
		return err
	}
	if err := m.adapter.CheckPermissions(); err != nil {
		return err
	}
	m.StopScan()

	timeout := time.Duration(m.cfg.ScanTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	done := make(chan struct{})

	m.mu.Lock()
	m.scanCancel = cancel
	m.scanDone = done
	if m.state == StateIdle || m.state == StateDisconnected {
		m.state = StateScanning
	}
	m.mu.Unlock()

	seen := make(map[string]bool)
	go func() {
		defer close(done)
		err := m.adapter.Discover(ctx, DiscoveryEvents{
			Found: func(d model.Device) {
				if seen[d.Address] {
					return
				}
				seen[d.Address] = true
				m.mu.Lock()
				m.known[d.Address] = d
				m.mu.Unlock()
				m.bus.Publish(Event{Type: EventDeviceFound, Device: &d})
			},
			BondChanged: func(d model.Device, state model.BondState) {
				m.mu.Lock()
				if cached, ok := m.known[d.Address]; ok && d.Name == "" {
					d.Name = cached.Name
					d.Type = cached.Type
				}
				m.known[d.Address] = d
				m.mu.Unlock()
				m.bus.Publish(Event{Type: EventDeviceBondStateChanged, Device: &d, BondState: state})
			},
		})
		if err != nil && ctx.Err() == nil {
			log.Printf("bluetooth: discovery ended: %v", err)
		}
		m.mu.Lock()
		if m.scanDone == done {
			m.scanCancel = nil
			m.scanDone = nil
			if m.state == StateScanning {
				m.state = StateIdle
			}
		}
		m.mu.Unlock()
	}()
	return nil
}

// StopScan cancels any running discovery session and waits for it to finish.
func (m *Manager) StopScan() {
	m.mu.Lock()
	cancel := m.scanCancel
	done := m.scanDone
	m.scanCancel = nil
	m.scanDone = nil
	m.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// Pair requests bonding with the given address. Already-bonded devices
// succeed immediately.
func (m *Manager) Pair(address string) error {
	if err := m.checkAdapter(); err != nil {
		return err
	}
	devices, err := m.adapter.PairedDevices()
	if err == nil {
		for _, d := range devices {
			if d.Address == address {
				return nil
			}
		}
	}
	if err := m.adapter.Pair(address); err != nil {
		return fmt.Errorf("%w: %v", ErrPairingFailed, err)
	}
	return nil
}

// Connect opens an RFCOMM stream to the given address. Connecting to the
// already-connected device is a no-op; connecting elsewhere tears the current
// link down first. Only one attempt runs at a time. A secure connection is
// tried first, then an insecure one. On success the device is persisted as
// the last printer.
func (m *Manager) Connect(ctx context.Context, address string) error {
	m.mu.Lock()
	if m.connecting {
		m.mu.Unlock()
		return fmt.Errorf("%w: another connection attempt is in progress", ErrConnectionFailed)
	}
	if m.conn != nil && m.connected != nil && m.connected.Address == address {
		m.mu.Unlock()
		return nil
	}
	m.connecting = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.connecting = false
		m.mu.Unlock()
	}()

	if err := m.checkAdapter(); err != nil {
		return err
	}

	// Discovery interferes with channel setup on most stacks.
	m.StopScan()
	m.closeCurrent(false)

	m.mu.Lock()
	m.state = StateConnecting
	m.mu.Unlock()

	stream, err := m.adapter.OpenStream(address, m.cfg.Channel, true)
	if err != nil {
		log.Printf("bluetooth: secure connect to %s failed, retrying insecure: %v", address, err)
		stream, err = m.adapter.OpenStream(address, m.cfg.Channel, false)
	}
	if err != nil {
		m.mu.Lock()
		m.state = StateDisconnected
		m.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	dev := m.lookupDevice(address)
	m.mu.Lock()
	m.conn = stream
	m.connected = &dev
	m.state = StateConnected
	stop := make(chan struct{})
	m.watchStop = stop
	m.mu.Unlock()

	go m.watch(address, stop)

	if err := m.store.SaveLastPrinter(ctx, dev.Address, dev.Name); err != nil {
		log.Printf("bluetooth: failed to persist last printer: %v", err)
	}
	log.Printf("bluetooth: connected to %s (%s)", dev.DisplayName(), dev.Address)
	return nil
}

// lookupDevice resolves an address to the richest device record we have.
func (m *Manager) lookupDevice(address string) model.Device {
	m.mu.Lock()
	d, ok := m.known[address]
	m.mu.Unlock()
	if ok {
		return d
	}
	if devices, err := m.adapter.PairedDevices(); err == nil {
		for _, pd := range devices {
			if pd.Address == address {
				return pd
			}
		}
	}
	return model.Device{Address: address}
}

// Disconnect closes the active link. The last printer record is kept so the
// device can be reconnected later. Disconnecting without a link is a no-op.
func (m *Manager) Disconnect() error {
	m.closeCurrent(false)
	return nil
}

// closeCurrent tears down the active link, stops the watchdog, and moves the
// manager to DISCONNECTED. When notify is set, a disconnect event is
// published for the device that was connected.
func (m *Manager) closeCurrent(notify bool) {
	m.mu.Lock()
	conn := m.conn
	dev := m.connected
	stop := m.watchStop
	m.conn = nil
	m.connected = nil
	m.watchStop = nil
	if conn != nil {
		m.state = StateDisconnected
	}
	m.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			log.Printf("bluetooth: closing connection: %v", err)
		}
	}
	if notify && dev != nil {
		m.bus.Publish(Event{Type: EventDeviceDisconnected, Device: dev})
	}
}

// watch polls the OS link state and publishes a disconnect event when the
// remote side drops the connection. Probe errors are ignored; the next tick
// tries again.
func (m *Manager) watch(address string, stop chan struct{}) {
	interval := time.Duration(m.cfg.WatchIntervalSeconds) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ok, err := m.adapter.IsConnected(address)
			if err != nil {
				continue
			}
			if ok {
				continue
			}
			m.mu.Lock()
			gone := m.connected != nil && m.connected.Address == address && m.watchStop == stop
			if gone {
				// Detach so closeCurrent does not double-close stop.
				m.watchStop = nil
			}
			m.mu.Unlock()
			if gone {
				log.Printf("bluetooth: device %s dropped the connection", address)
				m.closeCurrent(true)
			}
			return
		}
	}
}

// Send writes raw bytes to the connected printer. A failed write tears the
// link down so the state reflects reality.
func (m *Manager) Send(data []byte) error {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	if _, err := conn.Write(data); err != nil {
		m.closeCurrent(true)
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// SendText writes a UTF-8 string as raw bytes.
func (m *Manager) SendText(s string) error {
	return m.Send([]byte(s))
}

// SendBase64 decodes a base64 payload and writes it to the printer.
func (m *Manager) SendBase64(payload string) error {
	data, err := codec.Decode(payload)
	if err != nil {
		return err
	}
	return m.Send(data)
}

// LastPrinter returns the persisted last printer, or nil when none is saved.
func (m *Manager) LastPrinter(ctx context.Context) (*model.LastPrinter, error) {
	return m.store.GetLastPrinter(ctx)
}

// ForgetLastPrinter clears the persisted last printer.
func (m *Manager) ForgetLastPrinter(ctx context.Context) error {
	return m.store.ClearLastPrinter(ctx)
}

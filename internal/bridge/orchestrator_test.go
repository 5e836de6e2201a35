package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pos-bridge-backend/config"
	"pos-bridge-backend/internal/bluetooth"
	"pos-bridge-backend/internal/model"
	"pos-bridge-backend/internal/store"
)

type stubStream struct {
	mu        sync.Mutex
	buf       bytes.Buffer
	failWrite bool
}

func (s *stubStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return 0, errors.New("broken pipe")
	}
	return s.buf.Write(p)
}

func (s *stubStream) Close() error { return nil }

func (s *stubStream) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf.Bytes()...)
}

type stubAdapter struct {
	mu      sync.Mutex
	paired  []model.Device
	linkUp  map[string]bool
	streams map[string]*stubStream
}

func newStubAdapter() *stubAdapter {
	return &stubAdapter{
		linkUp:  make(map[string]bool),
		streams: make(map[string]*stubStream),
	}
}

func (a *stubAdapter) Available() bool         { return true }
func (a *stubAdapter) Enabled() bool           { return true }
func (a *stubAdapter) CheckPermissions() error { return nil }
func (a *stubAdapter) Pair(string) error       { return nil }

func (a *stubAdapter) PairedDevices() ([]model.Device, error) {
	return a.paired, nil
}

func (a *stubAdapter) Discover(ctx context.Context, events bluetooth.DiscoveryEvents) error {
	<-ctx.Done()
	return nil
}

func (a *stubAdapter) OpenStream(address string, channel int, secure bool) (io.WriteCloser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := &stubStream{}
	a.streams[address] = s
	a.linkUp[address] = true
	return s, nil
}

func (a *stubAdapter) IsConnected(address string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.linkUp[address], nil
}

func (a *stubAdapter) stream(address string) *stubStream {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.streams[address]
}

func testOrchestrator(t *testing.T, adapter bluetooth.Adapter) (*Orchestrator, *bluetooth.Manager) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.LastPrinter{}))

	cfg := config.BluetoothConfig{
		Channel:              1,
		ScanTimeoutSeconds:   2,
		AutoReconnect:        true,
		WatchIntervalSeconds: 60,
	}
	manager := bluetooth.NewManager(adapter, store.NewGormStore(db), cfg)
	return NewOrchestrator(manager, cfg), manager
}

func invoiceMessage(t *testing.T, itemName string) []byte {
	t.Helper()
	payload, err := json.Marshal(model.InvoiceData{
		BusinessInfo:  model.BusinessInfo{Name: "Cafe One"},
		InvoiceNumber: "INV-42",
		Items: []model.LineItem{
			{ProductName: itemName, Quantity: 2, Subtotal: 11.98},
		},
		Summary: model.Summary{Subtotal: 11.98, Total: 11.98},
	})
	require.NoError(t, err)
	msg, err := json.Marshal(model.PrintJob{Type: "PRINT_INVOICE", Payload: payload})
	require.NoError(t, err)
	return msg
}

func TestHandleMessageMalformed(t *testing.T) {
	o, _ := testOrchestrator(t, newStubAdapter())
	err := o.HandleMessage(context.Background(), []byte("{not json"))
	assert.Error(t, err)
}

func TestHandleMessageUnknownType(t *testing.T) {
	o, _ := testOrchestrator(t, newStubAdapter())
	err := o.HandleMessage(context.Background(), []byte(`{"type":"REBOOT","payload":{}}`))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestHandleMessageBadPayload(t *testing.T) {
	adapter := newStubAdapter()
	o, m := testOrchestrator(t, adapter)
	require.NoError(t, m.Connect(context.Background(), "AA:BB:CC:DD:EE:FF"))

	err := o.HandleMessage(context.Background(), []byte(`{"type":"PRINT_INVOICE","payload":"notanobject"}`))
	assert.ErrorIs(t, err, ErrFormat)
}

func TestPrintFlowDeliversCompiledBytes(t *testing.T) {
	adapter := newStubAdapter()
	o, m := testOrchestrator(t, adapter)
	require.NoError(t, m.Connect(context.Background(), "AA:BB:CC:DD:EE:FF"))

	require.NoError(t, o.HandleMessage(context.Background(), invoiceMessage(t, "Burger")))

	sent := adapter.stream("AA:BB:CC:DD:EE:FF").Bytes()
	assert.True(t, bytes.Contains(sent, []byte{0x1B, 0x40}), "should start with printer init")
	assert.True(t, bytes.Contains(sent, []byte("Burger")))
	assert.True(t, bytes.Contains(sent, []byte("INV-42")))
}

func TestPrintWithoutPrinterHoldsJob(t *testing.T) {
	adapter := newStubAdapter()
	o, _ := testOrchestrator(t, adapter)

	err := o.HandleMessage(context.Background(), invoiceMessage(t, "Burger"))
	assert.ErrorIs(t, err, ErrPrinterRequired)

	// Connecting afterwards prints the held job.
	require.NoError(t, o.Connect(context.Background(), "AA:BB:CC:DD:EE:FF"))
	sent := adapter.stream("AA:BB:CC:DD:EE:FF").Bytes()
	assert.True(t, bytes.Contains(sent, []byte("Burger")))
}

func TestNewestPendingJobWins(t *testing.T) {
	adapter := newStubAdapter()
	o, _ := testOrchestrator(t, adapter)

	ctx := context.Background()
	assert.ErrorIs(t, o.HandleMessage(ctx, invoiceMessage(t, "First")), ErrPrinterRequired)
	assert.ErrorIs(t, o.HandleMessage(ctx, invoiceMessage(t, "Second")), ErrPrinterRequired)

	require.NoError(t, o.Connect(ctx, "AA:BB:CC:DD:EE:FF"))
	sent := adapter.stream("AA:BB:CC:DD:EE:FF").Bytes()
	assert.False(t, bytes.Contains(sent, []byte("First")))
	assert.True(t, bytes.Contains(sent, []byte("Second")))
}

func TestPrintReconnectsToLastPrinter(t *testing.T) {
	adapter := newStubAdapter()
	o, m := testOrchestrator(t, adapter)

	ctx := context.Background()
	require.NoError(t, m.Connect(ctx, "AA:BB:CC:DD:EE:FF"))
	require.NoError(t, m.Disconnect())
	require.False(t, m.IsConnected())

	// The remembered printer is reconnected without caller involvement.
	require.NoError(t, o.HandleMessage(ctx, invoiceMessage(t, "Burger")))
	assert.True(t, m.IsConnected())
}

func TestStartupReconnectPrefersSystemConnectedPrinter(t *testing.T) {
	adapter := newStubAdapter()
	adapter.paired = []model.Device{
		{Address: "AA:BB:CC:DD:EE:01", Name: "Headset", Bonded: true, Type: model.DeviceTypeAudio},
		{Address: "AA:BB:CC:DD:EE:02", Name: "RPP02N", Bonded: true, Type: model.DeviceTypePrinter},
	}
	adapter.linkUp["AA:BB:CC:DD:EE:01"] = true
	adapter.linkUp["AA:BB:CC:DD:EE:02"] = true

	o, m := testOrchestrator(t, adapter)
	o.Start(context.Background())

	require.Eventually(t, m.IsConnected, 2*time.Second, 20*time.Millisecond)
	dev := m.ConnectedDevice()
	require.NotNil(t, dev)
	assert.Equal(t, "AA:BB:CC:DD:EE:02", dev.Address)
}

func TestPrintWriteFailureRequiresReselection(t *testing.T) {
	adapter := newStubAdapter()
	o, m := testOrchestrator(t, adapter)

	ctx := context.Background()
	require.NoError(t, m.Connect(ctx, "AA:BB:CC:DD:EE:FF"))
	stream := adapter.stream("AA:BB:CC:DD:EE:FF")
	stream.mu.Lock()
	stream.failWrite = true
	stream.mu.Unlock()

	err := o.HandleMessage(ctx, invoiceMessage(t, "Burger"))
	assert.ErrorIs(t, err, ErrPrinterRequired)
	assert.False(t, m.IsConnected())
}

func TestPrintRawRejectsBadBase64(t *testing.T) {
	o, _ := testOrchestrator(t, newStubAdapter())
	err := o.PrintRaw(context.Background(), "!!definitely not base64!!")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestPrintTest(t *testing.T) {
	adapter := newStubAdapter()
	o, m := testOrchestrator(t, adapter)
	require.NoError(t, m.Connect(context.Background(), "AA:BB:CC:DD:EE:FF"))

	require.NoError(t, o.PrintTest(context.Background()))
	sent := adapter.stream("AA:BB:CC:DD:EE:FF").Bytes()
	assert.True(t, bytes.Contains(sent, []byte("Printer Connected")))
}

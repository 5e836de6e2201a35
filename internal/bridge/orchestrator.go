package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"pos-bridge-backend/config"
	"pos-bridge-backend/internal/bluetooth"
	"pos-bridge-backend/internal/codec"
	"pos-bridge-backend/internal/escpos"
	"pos-bridge-backend/internal/model"
)

var (
	// ErrFormat means a payload could not be compiled into printer bytes.
	ErrFormat = errors.New("could not format document")
	// ErrPrinterRequired means no printer is connected and a silent
	// reconnect did not produce one.
	ErrPrinterRequired = errors.New("printer connection required")
)

// Orchestrator ties the document compilers to the connection manager. It
// accepts print jobs, silently reconnects to a remembered printer when
// possible, and holds at most one job for a printer that is not there yet.
type Orchestrator struct {
	manager *bluetooth.Manager
	cfg     config.BluetoothConfig

	mu      sync.Mutex
	pending *model.PrintJob
}

func NewOrchestrator(manager *bluetooth.Manager, cfg config.BluetoothConfig) *Orchestrator {
	return &Orchestrator{manager: manager, cfg: cfg}
}

// Start kicks off the startup reconnect when auto reconnect is enabled.
func (o *Orchestrator) Start(ctx context.Context) {
	if !o.cfg.AutoReconnect {
		return
	}
	go func() {
		if err := o.reconnect(ctx); err != nil {
			log.Printf("bridge: startup reconnect found no printer: %v", err)
		}
	}()
}

// kindForType maps an inbound message type like "PRINT_INVOICE" to the
// document kind it carries.
func kindForType(msgType string) (model.DocumentKind, bool) {
	kind := model.DocumentKind(strings.TrimPrefix(msgType, "PRINT_"))
	if kind == model.DocumentKind(msgType) {
		return "", false
	}
	switch kind {
	case model.KindInvoice, model.KindKOT, model.KindBarcode, model.KindBarcodeLabel:
		return kind, true
	}
	return "", false
}

// HandleMessage processes one inbound channel message. Malformed messages
// are logged and reported back, never fatal. A job that fails only because
// no printer is connected is held as the pending job; a newer job replaces
// an older one.
func (o *Orchestrator) HandleMessage(ctx context.Context, raw []byte) error {
	var job model.PrintJob
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Printf("bridge: dropping malformed message: %v", err)
		return fmt.Errorf("parse message: %w", err)
	}
	kind, ok := kindForType(job.Type)
	if !ok {
		log.Printf("bridge: dropping message with unknown type %q", job.Type)
		return fmt.Errorf("%w: unknown message type %q", ErrFormat, job.Type)
	}
	err := o.Print(ctx, kind, job.Payload)
	if errors.Is(err, ErrPrinterRequired) {
		o.mu.Lock()
		o.pending = &job
		o.mu.Unlock()
		log.Printf("bridge: no printer connected, holding %s job", kind)
	}
	return err
}

// Print compiles a document and sends it to the printer, reconnecting
// silently once if no connection is active.
func (o *Orchestrator) Print(ctx context.Context, kind model.DocumentKind, payload json.RawMessage) error {
	data := escpos.FormatDocument(kind, payload)
	if len(data) == 0 {
		return fmt.Errorf("%w: %s", ErrFormat, kind)
	}
	return o.send(ctx, codec.Encode(data))
}

// PrintRaw sends a caller-supplied base64 payload unchanged.
func (o *Orchestrator) PrintRaw(ctx context.Context, payload string) error {
	if _, err := codec.Decode(payload); err != nil {
		return fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return o.send(ctx, payload)
}

// PrintTest sends a short self-test ticket.
func (o *Orchestrator) PrintTest(ctx context.Context) error {
	data := escpos.NewBuilder().
		Append(escpos.Init...).
		Append(escpos.AlignCenter...).
		TextLine("Printer Connected").
		NewLine().
		Append(escpos.Feed(3)...).
		Append(escpos.Cut...).
		Bytes()
	return o.send(ctx, codec.Encode(data))
}

func (o *Orchestrator) send(ctx context.Context, payload string) error {
	if !o.manager.IsConnected() {
		if err := o.reconnect(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrPrinterRequired, err)
		}
	}
	err := o.manager.SendBase64(payload)
	// A failed write means the link is gone; route the caller back to
	// device selection instead of reporting a transport error.
	if errors.Is(err, bluetooth.ErrNotConnected) || errors.Is(err, bluetooth.ErrIO) {
		return fmt.Errorf("%w: %v", ErrPrinterRequired, err)
	}
	return err
}

// Connect establishes a connection on behalf of a caller and then retries
// the pending job, if any.
func (o *Orchestrator) Connect(ctx context.Context, address string) error {
	if err := o.manager.Connect(ctx, address); err != nil {
		return err
	}
	o.flushPending(ctx)
	return nil
}

func (o *Orchestrator) flushPending(ctx context.Context) {
	o.mu.Lock()
	job := o.pending
	o.pending = nil
	o.mu.Unlock()
	if job == nil {
		return
	}
	kind, ok := kindForType(job.Type)
	if !ok {
		return
	}
	if err := o.Print(ctx, kind, job.Payload); err != nil {
		log.Printf("bridge: held %s job failed after reconnect: %v", kind, err)
	}
}

// reconnect tries to restore a connection without caller involvement. It
// prefers a paired printer the OS already reports connected, then any other
// system-connected device, then the remembered last printer.
func (o *Orchestrator) reconnect(ctx context.Context) error {
	var candidates []string
	if devices, err := o.manager.SystemConnectedPairedDevices(); err == nil {
		for _, d := range devices {
			if d.Type == model.DeviceTypePrinter {
				candidates = append(candidates, d.Address)
			}
		}
		for _, d := range devices {
			if d.Type != model.DeviceTypePrinter {
				candidates = append(candidates, d.Address)
			}
		}
	}
	if last, err := o.manager.LastPrinter(ctx); err == nil && last != nil {
		candidates = append(candidates, last.Address)
	}
	if len(candidates) == 0 {
		return errors.New("no reconnect candidates")
	}
	var lastErr error
	tried := make(map[string]bool)
	for _, address := range candidates {
		if tried[address] {
			continue
		}
		tried[address] = true
		if err := o.manager.Connect(ctx, address); err != nil {
			lastErr = err
			continue
		}
		o.flushPending(ctx)
		return nil
	}
	return lastErr
}

//go:build linux

package bluetooth

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.bug.st/serial"

	"pos-bridge-backend/internal/model"
)

// bluezAdapter drives the host stack through the bluez command line tools.
// bluetoothctl handles enumeration, pairing and discovery; rfcomm binds the
// serial channel that carries printer bytes.
type bluezAdapter struct{}

// NewAdapter returns the platform Bluetooth adapter.
func NewAdapter() Adapter {
	return &bluezAdapter{}
}

func (a *bluezAdapter) Available() bool {
	_, err := exec.LookPath("bluetoothctl")
	return err == nil
}

func (a *bluezAdapter) Enabled() bool {
	out, err := exec.Command("bluetoothctl", "show").Output()
	if err != nil {
		return false
	}
	return parseAdapterPowered(string(out))
}

func (a *bluezAdapter) CheckPermissions() error {
	if _, err := exec.LookPath("rfcomm"); err != nil {
		return fmt.Errorf("%w: rfcomm not found, install bluez", ErrUnavailable)
	}
	if privilegeHelper() == "" && os.Geteuid() != 0 {
		return fmt.Errorf("%w: need root or a privilege helper for rfcomm", ErrPermissionDenied)
	}
	return nil
}

func (a *bluezAdapter) PairedDevices() ([]model.Device, error) {
	out, err := exec.Command("bluetoothctl", "devices", "Paired").Output()
	if err != nil {
		return nil, fmt.Errorf("list paired devices: %w", err)
	}
	var devices []model.Device
	for _, line := range strings.Split(string(out), "\n") {
		d, ok := parseDeviceLine(line)
		if !ok {
			continue
		}
		d.Bonded = true
		d.Type = a.deviceType(d.Address)
		devices = append(devices, d)
	}
	return devices, nil
}

// deviceType classifies a device from its bluez icon. Failures fall back to
// uncategorized so a flaky info call never drops the device from listings.
func (a *bluezAdapter) deviceType(address string) model.DeviceType {
	out, err := exec.Command("bluetoothctl", "info", address).Output()
	if err != nil {
		return model.DeviceTypeUncategorized
	}
	return classifyIcon(parseDeviceInfo(string(out)).Icon)
}

func (a *bluezAdapter) Pair(address string) error {
	cmd := exec.Command("bluetoothctl", "pair", address)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start pairing: %w", err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			log.Printf("bluetooth: pairing with %s ended: %v", address, err)
		}
	}()
	return nil
}

func (a *bluezAdapter) Discover(ctx context.Context, events DiscoveryEvents) error {
	cmd := exec.CommandContext(ctx, "bluetoothctl")
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("open bluetoothctl stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("open bluetoothctl stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start bluetoothctl: %w", err)
	}
	if _, err := io.WriteString(stdin, "scan on\n"); err != nil {
		cmd.Process.Kill()
		cmd.Wait()
		return fmt.Errorf("enable scanning: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		ev, ok := parseScanLine(scanner.Text())
		if !ok {
			continue
		}
		switch ev.kind {
		case scanEventFound:
			if events.Found != nil {
				events.Found(ev.device)
			}
		case scanEventBond:
			if events.BondChanged != nil {
				events.BondChanged(ev.device, ev.bond)
			}
		}
	}

	io.WriteString(stdin, "scan off\nexit\n")
	stdin.Close()
	cmd.Wait()
	if err := ctx.Err(); err != nil {
		return nil
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read discovery output: %w", err)
	}
	return nil
}

func (a *bluezAdapter) OpenStream(address string, channel int, secure bool) (io.WriteCloser, error) {
	if err := a.CheckPermissions(); err != nil {
		return nil, err
	}
	devPath, err := freeRFCOMMSlot()
	if err != nil {
		return nil, err
	}
	if secure {
		return connectRFCOMM(devPath, address, channel)
	}
	return bindRFCOMM(devPath, address, channel)
}

func (a *bluezAdapter) IsConnected(address string) (bool, error) {
	out, err := exec.Command("bluetoothctl", "info", address).Output()
	if err != nil {
		return false, fmt.Errorf("query device %s: %w", address, err)
	}
	return parseDeviceInfo(string(out)).Connected, nil
}

// rfcommStream is an open RFCOMM link: the serial port on /dev/rfcommN plus
// the rfcomm process (if any) keeping the binding alive.
type rfcommStream struct {
	port    serial.Port
	devPath string
	cmd     *exec.Cmd
	cancel  context.CancelFunc
}

func (s *rfcommStream) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

func (s *rfcommStream) Close() error {
	err := s.port.Close()
	if s.cancel != nil {
		s.cancel()
	}
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
		s.cmd.Wait()
	}
	runPrivileged("rfcomm", "release", s.devPath)
	return err
}

// connectRFCOMM establishes an authenticated link with `rfcomm connect` and
// waits for the device node to appear before opening it.
func connectRFCOMM(devPath, address string, channel int) (*rfcommStream, error) {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := privilegedCommandContext(ctx, "rfcomm", "connect", devPath, address, fmt.Sprintf("%d", channel))
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start rfcomm: %w", err)
	}

	deadline := time.Now().Add(15 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(devPath); err == nil {
			// Give the node a moment to become writable.
			time.Sleep(500 * time.Millisecond)
			port, err := openSerial(devPath)
			if err != nil {
				break
			}
			return &rfcommStream{port: port, devPath: devPath, cmd: cmd, cancel: cancel}, nil
		}
		time.Sleep(500 * time.Millisecond)
	}

	cancel()
	cmd.Process.Kill()
	cmd.Wait()
	return nil, fmt.Errorf("timeout waiting for %s", devPath)
}

// bindRFCOMM sets up the link without authentication. The channel is only
// dialled when the device node is opened.
func bindRFCOMM(devPath, address string, channel int) (*rfcommStream, error) {
	if err := runPrivileged("rfcomm", "bind", devPath, address, fmt.Sprintf("%d", channel)); err != nil {
		return nil, fmt.Errorf("bind %s: %w", devPath, err)
	}
	port, err := openSerial(devPath)
	if err != nil {
		runPrivileged("rfcomm", "release", devPath)
		return nil, err
	}
	return &rfcommStream{port: port, devPath: devPath}, nil
}

func openSerial(devPath string) (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(devPath, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", devPath, err)
	}
	return port, nil
}

// freeRFCOMMSlot finds an unused /dev/rfcommN device number.
func freeRFCOMMSlot() (string, error) {
	for i := 0; i < 10; i++ {
		devPath := fmt.Sprintf("/dev/rfcomm%d", i)
		out, _ := exec.Command("rfcomm", "show", devPath).Output()
		if len(out) == 0 {
			return devPath, nil
		}
	}
	return "", fmt.Errorf("no free rfcomm device slots")
}

// privilegeHelper reports which escalation tool is installed, if any.
func privilegeHelper() string {
	if _, err := exec.LookPath("pkexec"); err == nil {
		return "pkexec"
	}
	if _, err := exec.LookPath("sudo"); err == nil {
		return "sudo"
	}
	return ""
}

func privilegedCommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	if os.Geteuid() == 0 {
		return exec.CommandContext(ctx, name, args...)
	}
	switch privilegeHelper() {
	case "pkexec":
		return exec.CommandContext(ctx, "pkexec", append([]string{name}, args...)...)
	default:
		return exec.CommandContext(ctx, "sudo", append([]string{"-n", name}, args...)...)
	}
}

func runPrivileged(name string, args ...string) error {
	return privilegedCommandContext(context.Background(), name, args...).Run()
}

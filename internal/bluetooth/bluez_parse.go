package bluetooth

import (
	"regexp"
	"strings"

	"pos-bridge-backend/internal/model"
)

// bluetoothctl emits ANSI colour codes and readline prompt markers on
// interactive streams; strip them before parsing.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m|\x01|\x02`)

func stripANSI(s string) string {
	return ansiRe.ReplaceAllString(s, "")
}

// parseDeviceLine parses a "Device XX:XX:XX:XX:XX:XX Name" line as printed by
// `bluetoothctl devices`.
func parseDeviceLine(line string) (model.Device, bool) {
	line = strings.TrimSpace(stripANSI(line))
	idx := strings.Index(line, "Device ")
	if idx < 0 {
		return model.Device{}, false
	}
	rest := line[idx+len("Device "):]
	parts := strings.SplitN(rest, " ", 2)
	if len(parts) == 0 || !looksLikeAddress(parts[0]) {
		return model.Device{}, false
	}
	d := model.Device{Address: parts[0]}
	if len(parts) == 2 {
		d.Name = strings.TrimSpace(parts[1])
	}
	return d, true
}

func looksLikeAddress(s string) bool {
	return len(s) == 17 && strings.Count(s, ":") == 5
}

type scanEventKind int

const (
	scanEventFound scanEventKind = iota
	scanEventBond
)

type scanEvent struct {
	kind   scanEventKind
	device model.Device
	bond   model.BondState
}

// parseScanLine interprets one line of interactive bluetoothctl output during
// discovery. "[NEW] Device ..." reports a found device; "[CHG] Device <mac>
// Paired: yes|no" reports a bond change.
func parseScanLine(line string) (scanEvent, bool) {
	line = strings.TrimSpace(stripANSI(line))
	switch {
	case strings.Contains(line, "[NEW] Device "):
		d, ok := parseDeviceLine(line)
		if !ok {
			return scanEvent{}, false
		}
		return scanEvent{kind: scanEventFound, device: d}, true
	case strings.Contains(line, "[CHG] Device ") && strings.Contains(line, "Paired:"):
		d, ok := parseDeviceLine(line)
		if !ok {
			return scanEvent{}, false
		}
		// The remainder after the address is "Paired: yes" rather than a name.
		bonded := strings.HasSuffix(d.Name, "yes")
		d.Name = ""
		d.Bonded = bonded
		state := model.BondNone
		if bonded {
			state = model.BondBonded
		}
		return scanEvent{kind: scanEventBond, device: d, bond: state}, true
	}
	return scanEvent{}, false
}

// deviceInfo holds the fields we read from `bluetoothctl info <mac>`.
type deviceInfo struct {
	Name      string
	Paired    bool
	Connected bool
	Icon      string
}

func parseDeviceInfo(out string) deviceInfo {
	var info deviceInfo
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(stripANSI(line))
		switch {
		case strings.HasPrefix(line, "Name:"):
			info.Name = strings.TrimSpace(strings.TrimPrefix(line, "Name:"))
		case strings.HasPrefix(line, "Paired:"):
			info.Paired = strings.HasSuffix(line, "yes")
		case strings.HasPrefix(line, "Connected:"):
			info.Connected = strings.HasSuffix(line, "yes")
		case strings.HasPrefix(line, "Icon:"):
			info.Icon = strings.TrimSpace(strings.TrimPrefix(line, "Icon:"))
		}
	}
	return info
}

// classifyIcon maps a bluez device icon to a coarse device type.
func classifyIcon(icon string) model.DeviceType {
	switch {
	case icon == "printer":
		return model.DeviceTypePrinter
	case icon == "computer":
		return model.DeviceTypeComputer
	case icon == "phone":
		return model.DeviceTypePhone
	case strings.HasPrefix(icon, "audio"), icon == "headset", icon == "headphones":
		return model.DeviceTypeAudio
	case icon == "":
		return model.DeviceTypeUncategorized
	default:
		return model.DeviceTypeOther
	}
}

// parseAdapterPowered reads the "Powered: yes|no" field from
// `bluetoothctl show` output.
func parseAdapterPowered(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(stripANSI(line))
		if strings.HasPrefix(line, "Powered:") {
			return strings.HasSuffix(line, "yes")
		}
	}
	return false
}

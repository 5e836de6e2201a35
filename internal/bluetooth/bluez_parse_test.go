package bluetooth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-bridge-backend/internal/model"
)

func TestParseDeviceLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want model.Device
		ok   bool
	}{
		{
			name: "plain device line",
			line: "Device 86:67:7A:B4:5C:F8 RPP02N",
			want: model.Device{Address: "86:67:7A:B4:5C:F8", Name: "RPP02N"},
			ok:   true,
		},
		{
			name: "name with spaces",
			line: "Device 00:11:22:33:44:55 Kitchen Printer 2",
			want: model.Device{Address: "00:11:22:33:44:55", Name: "Kitchen Printer 2"},
			ok:   true,
		},
		{
			name: "ansi colour codes",
			line: "\x1b[0;93mDevice 86:67:7A:B4:5C:F8 RPP02N\x1b[0m",
			want: model.Device{Address: "86:67:7A:B4:5C:F8", Name: "RPP02N"},
			ok:   true,
		},
		{
			name: "no address",
			line: "Device notanaddress something",
			ok:   false,
		},
		{
			name: "unrelated line",
			line: "Agent registered",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDeviceLine(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseScanLine(t *testing.T) {
	ev, ok := parseScanLine("[NEW] Device 86:67:7A:B4:5C:F8 RPP02N")
	assert.True(t, ok)
	assert.Equal(t, scanEventFound, ev.kind)
	assert.Equal(t, "86:67:7A:B4:5C:F8", ev.device.Address)
	assert.Equal(t, "RPP02N", ev.device.Name)

	ev, ok = parseScanLine("[CHG] Device 86:67:7A:B4:5C:F8 Paired: yes")
	assert.True(t, ok)
	assert.Equal(t, scanEventBond, ev.kind)
	assert.Equal(t, model.BondBonded, ev.bond)
	assert.True(t, ev.device.Bonded)

	ev, ok = parseScanLine("[CHG] Device 86:67:7A:B4:5C:F8 Paired: no")
	assert.True(t, ok)
	assert.Equal(t, model.BondNone, ev.bond)

	_, ok = parseScanLine("[CHG] Device 86:67:7A:B4:5C:F8 RSSI: -54")
	assert.False(t, ok)
}

func TestParseDeviceInfo(t *testing.T) {
	out := `Device 86:67:7A:B4:5C:F8 (public)
	Name: RPP02N
	Alias: RPP02N
	Paired: yes
	Bonded: yes
	Trusted: no
	Connected: yes
	Icon: printer
`
	info := parseDeviceInfo(out)
	assert.Equal(t, "RPP02N", info.Name)
	assert.True(t, info.Paired)
	assert.True(t, info.Connected)
	assert.Equal(t, "printer", info.Icon)
}

func TestClassifyIcon(t *testing.T) {
	assert.Equal(t, model.DeviceTypePrinter, classifyIcon("printer"))
	assert.Equal(t, model.DeviceTypeComputer, classifyIcon("computer"))
	assert.Equal(t, model.DeviceTypePhone, classifyIcon("phone"))
	assert.Equal(t, model.DeviceTypeAudio, classifyIcon("audio-headset"))
	assert.Equal(t, model.DeviceTypeUncategorized, classifyIcon(""))
	assert.Equal(t, model.DeviceTypeOther, classifyIcon("input-mouse"))
}

func TestParseAdapterPowered(t *testing.T) {
	assert.True(t, parseAdapterPowered("Controller AA:BB:CC:DD:EE:FF\n\tPowered: yes\n"))
	assert.False(t, parseAdapterPowered("Controller AA:BB:CC:DD:EE:FF\n\tPowered: no\n"))
	assert.False(t, parseAdapterPowered(""))
}

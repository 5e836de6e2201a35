package model

import "time"

// DeviceType is the coarse device classification reported by the radio.
type DeviceType string

const (
	DeviceTypePrinter       DeviceType = "printer"
	DeviceTypeComputer      DeviceType = "computer"
	DeviceTypePhone         DeviceType = "phone"
	DeviceTypeAudio         DeviceType = "audio"
	DeviceTypeUncategorized DeviceType = "uncategorized"
	DeviceTypeOther         DeviceType = "other"
)

// BondState is the OS-level pairing state of a remote device.
type BondState string

const (
	BondNone    BondState = "none"
	BondBonding BondState = "bonding"
	BondBonded  BondState = "bonded"
)

// Device is a remote Bluetooth device observed during discovery or paired
// enumeration. Identity is the MAC address; the name is display-only and
// may be stale.
type Device struct {
	Name    string     `json:"name"`
	Address string     `json:"address"`
	Bonded  bool       `json:"bonded"`
	Type    DeviceType `json:"type"`
}

// UnknownDeviceName substitutes for devices that do not advertise a name.
const UnknownDeviceName = "Unknown Device"

// DisplayName returns the device name, or a placeholder when absent.
func (d Device) DisplayName() string {
	if d.Name == "" {
		return UnknownDeviceName
	}
	return d.Name
}

// LastPrinter is the single persisted record of the most recently
// successfully connected printer. It is written on every successful manual
// connect and deliberately survives a manual disconnect.
type LastPrinter struct {
	ID        int64     `gorm:"primaryKey" json:"-"`
	Address   string    `gorm:"size:64;not null" json:"address"`
	Name      string    `gorm:"size:256" json:"name"`
	UpdatedAt time.Time `json:"-"`
}

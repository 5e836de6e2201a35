// Package escpos compiles structured POS documents into ESC/POS byte
// streams for serial-profile receipt printers.
package escpos

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// ESC/POS control sequences used by the document compilers. The command
// subset is limited to what receipt, kitchen-ticket and barcode-tag output
// needs; this is not a full language binding.
var (
	Init        = []byte{esc, 0x40}
	AlignLeft   = []byte{esc, 0x61, 0x00}
	AlignCenter = []byte{esc, 0x61, 0x01}
	AlignRight  = []byte{esc, 0x61, 0x02}
	BoldOn      = []byte{esc, 0x45, 0x01}
	BoldOff     = []byte{esc, 0x45, 0x00}
	TextNormal  = []byte{gs, 0x21, 0x00}
	TextDouble  = []byte{gs, 0x21, 0x30}
	Cut         = []byte{gs, 0x56, 0x41, 0x10}

	// Barcode setup: height in dots, module width, HRI text below.
	BarcodeHeight    = []byte{gs, 0x68, 80}
	BarcodeWidth     = []byte{gs, 0x77, 2}
	BarcodeTextBelow = []byte{gs, 0x48, 2}
	barcodeCode128   = byte(73)
	barcodeCodeSetB  = "{B"
)

// maxBarcodePayload is the largest value the single-byte GS k length
// argument can carry.
const maxBarcodePayload = 255

// Feed returns the feed-n-lines command.
func Feed(n int) []byte {
	return []byte{esc, 0x64, byte(n)}
}

// lineWidth is the character width of a 58mm receipt at the default font.
const lineWidth = 32

// separator is the horizontal rule printed between receipt sections.
var separator = stringOf('-', lineWidth)

func stringOf(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

// Package tspl compiles barcode labels into TSPL command scripts for
// thermal label printers. TSPL is textual: the output is the script
// encoded as single-byte ASCII.
package tspl

import (
	"fmt"
	"strings"

	"pos-bridge-backend/internal/model"
)

// Default label stock dimensions in millimeters.
const (
	DefaultWidthMm  = 35.0
	DefaultHeightMm = 18.0
)

// dotsPerMm is the dot pitch of a 203 DPI print head.
const dotsPerMm = 8

// Label compiles a Code-128 product label sized to the payload's label
// dimensions (35x18 mm when unspecified).
func Label(data model.BarcodeData) []byte {
	width, height := DefaultWidthMm, DefaultHeightMm
	if data.LabelSize != nil {
		if data.LabelSize.WidthMm > 0 {
			width = data.LabelSize.WidthMm
		}
		if data.LabelSize.HeightMm > 0 {
			height = data.LabelSize.HeightMm
		}
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "SIZE %g mm, %g mm\r\n", width, height)
	buf.WriteString("GAP 2 mm, 0\r\n")
	buf.WriteString("DIRECTION 1\r\n")
	buf.WriteString("CLS\r\n")

	// Text fields are anchored at the horizontal center of the label.
	centerX := int(width * dotsPerMm / 2)

	topText := joinNonEmpty(" / ", data.BrandName, data.CategoryName, data.ModelNo)
	fmt.Fprintf(&buf, "TEXT %d,15,\"0\",0,1,1,3,\"%s\"\r\n", centerX, truncate(topText, 25))
	fmt.Fprintf(&buf, "TEXT %d,40,\"0\",0,1,1,3,\"SHOP: %s\"\r\n", centerX, data.ShopName)

	// BARCODE x,y,"type",height,human-readable,rotation,narrow,wide,"content"
	fmt.Fprintf(&buf, "BARCODE 40,70,\"128\",50,1,0,2,2,\"%s\"\r\n", data.SKU)

	buf.WriteString("PRINT 1\r\n")
	return encodeASCII(buf.String())
}

// encodeASCII maps the script to single-byte characters; code points above
// 0xFF become '?', matching the printers' code page handling.
func encodeASCII(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xFF {
			out = append(out, '?')
			continue
		}
		out = append(out, byte(r))
	}
	return out
}

// truncate clips s to at most n code points. encodeASCII emits one byte
// per code point, so the rune count is the printed width.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

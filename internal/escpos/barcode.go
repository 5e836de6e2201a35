package escpos

import (
	"strings"

	"pos-bridge-backend/internal/model"
)

// BarcodeTag compiles a Code-128 price tag. Tags are printed on
// peel-off roll stock, so the output deliberately omits the cut command.
func BarcodeTag(data model.BarcodeData) []byte {
	b := NewBuilder()
	b.Append(Init...)
	b.Append(AlignCenter...)

	header := joinNonEmpty(" / ", data.BrandName, data.CategoryName)
	if header != "" {
		b.TextLine(truncate(header, lineWidth))
	}
	if data.ShopName != "" {
		b.Append(BoldOn...)
		b.TextLine(data.ShopName)
		b.Append(BoldOff...)
	}

	if data.SKU != "" {
		b.NewLine()
		b.Append(BarcodeHeight...)
		b.Append(BarcodeWidth...)
		b.Append(BarcodeTextBelow...)

		// GS k 73 n: n counts the code-set selector plus the SKU bytes.
		// n is a single byte, so the payload is clamped to keep an
		// oversize SKU from wrapping the length field.
		payload := NewBuilder().Text(barcodeCodeSetB + data.SKU).Bytes()
		if len(payload) > maxBarcodePayload {
			payload = payload[:maxBarcodePayload]
		}
		b.Append(gs, 0x6B, barcodeCode128, byte(len(payload)))
		b.Append(payload...)
		b.NewLine()
	}

	if data.Price > 0 {
		b.Append(BoldOn...)
		b.TextLine("Price: " + amount(data.Price))
		b.Append(BoldOff...)
	}

	b.Append(Feed(3)...)
	return b.Bytes()
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

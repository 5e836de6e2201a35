package escpos

import (
	"encoding/json"

	"pos-bridge-backend/internal/model"
	"pos-bridge-backend/internal/tspl"
)

// FormatDocument maps a document kind to its compiler and runs it against
// the payload. An unrecognized kind or an undecodable payload yields an
// empty byte sequence rather than an error; callers treat empty output as
// a formatting failure.
func FormatDocument(kind model.DocumentKind, payload json.RawMessage) []byte {
	switch kind {
	case model.KindInvoice:
		var data model.InvoiceData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil
		}
		return Invoice(data)
	case model.KindKOT:
		var data model.KOTData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil
		}
		return KOT(data)
	case model.KindBarcode:
		var data model.BarcodeData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil
		}
		return BarcodeTag(data)
	case model.KindBarcodeLabel:
		var data model.BarcodeData
		if err := json.Unmarshal(payload, &data); err != nil {
			return nil
		}
		return tspl.Label(data)
	default:
		return nil
	}
}

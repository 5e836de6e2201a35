package escpos

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-bridge-backend/internal/model"
)

func TestFormatDocumentRouting(t *testing.T) {
	invoice, _ := json.Marshal(sampleInvoice())
	kot, _ := json.Marshal(sampleKOT())
	barcode, _ := json.Marshal(model.BarcodeData{SKU: "SKU123", ShopName: "Corner Store"})

	assert.Contains(t, string(FormatDocument(model.KindInvoice, invoice)), "INVOICE")
	assert.Contains(t, string(FormatDocument(model.KindKOT, kot)), "KITCHEN ORDER TICKET")
	assert.True(t, bytes.Contains(FormatDocument(model.KindBarcode, barcode), []byte{0x1D, 0x6B, 73}))

	label := FormatDocument(model.KindBarcodeLabel, barcode)
	assert.True(t, bytes.HasPrefix(label, []byte("SIZE ")))
	assert.Contains(t, string(label), "PRINT 1")
}

func TestFormatDocumentUnknownKind(t *testing.T) {
	assert.Empty(t, FormatDocument("RECEIPT", []byte(`{}`)))
}

func TestFormatDocumentBadPayload(t *testing.T) {
	assert.Empty(t, FormatDocument(model.KindInvoice, []byte(`"a string"`)))
	assert.Empty(t, FormatDocument(model.KindKOT, []byte(`{`)))
}

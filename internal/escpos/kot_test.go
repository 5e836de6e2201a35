package escpos

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-bridge-backend/internal/model"
)

func sampleKOT() model.KOTData {
	return model.KOTData{
		BusinessInfo: model.BusinessInfo{Name: "Cafe One"},
		Date:         "2026-08-30 18:05",
		TableNumber:  "7",
		GuestNumber:  3,
		Items: []model.LineItem{
			{ProductName: "Burger", Quantity: 2, Subtotal: 11.98, Details: "no onions"},
			{ProductName: "Fries", Quantity: 3, Subtotal: 10.47},
		},
		SpecialNotes: "Rush order",
	}
}

func TestKOTLayout(t *testing.T) {
	out := string(KOT(sampleKOT()))

	assert.Contains(t, out, "KITCHEN ORDER TICKET (KOT)")
	assert.Contains(t, out, "Table: 7")
	assert.Contains(t, out, "2x Burger")
	assert.Contains(t, out, "  - no onions")
	assert.Contains(t, out, "NOTES:")
	assert.Contains(t, out, "Rush order")
}

func TestKOTTotalItems(t *testing.T) {
	out := string(KOT(sampleKOT()))
	row := totalItemsRow(5)
	assert.Len(t, row, lineWidth)
	assert.True(t, strings.HasSuffix(row, "5"))
	assert.Contains(t, out, row)
}

func TestKOTCarriesNoPrices(t *testing.T) {
	out := string(KOT(sampleKOT()))
	assert.NotContains(t, out, "11.98")
	assert.NotContains(t, out, "10.47")
	assert.NotContains(t, out, "Total:")
}

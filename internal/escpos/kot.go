package escpos

import (
	"fmt"
	"strconv"

	"pos-bridge-backend/internal/model"
)

// KOT compiles a kitchen order ticket. Kitchen tickets carry quantities
// and preparation notes only, never prices.
func KOT(data model.KOTData) []byte {
	b := NewBuilder()
	b.Append(Init...)
	b.Append(AlignCenter...)

	if data.BusinessInfo.Name != "" {
		b.TextLine(data.BusinessInfo.Name)
	}
	b.Append(BoldOn...)
	b.Append(TextDouble...)
	b.TextLine("KOT")
	b.Append(TextNormal...)
	b.TextLine("KITCHEN ORDER TICKET (KOT)")
	b.Append(BoldOff...)

	b.Append(AlignLeft...)
	b.TextLine("Date: " + formatDate(data.Date))
	if data.TableNumber != "" {
		b.Append(BoldOn...)
		b.TextLine("Table: " + data.TableNumber)
		b.Append(BoldOff...)
	}
	if data.GuestNumber > 0 {
		b.TextLine("Guests: " + strconv.Itoa(data.GuestNumber))
	}

	b.TextLine(separator)
	b.Append(BoldOn...)
	b.TextLine("Qty  Item")
	b.Append(BoldOff...)
	b.TextLine(separator)

	totalItems := 0
	for _, item := range data.Items {
		totalItems += item.Quantity
		b.Append(BoldOn...)
		b.TextLine(fmt.Sprintf("%dx %s", item.Quantity, item.ProductName))
		b.Append(BoldOff...)
		if item.Details != "" {
			b.TextLine("  - " + item.Details)
		}
	}

	b.TextLine(separator)
	b.TextLine(totalItemsRow(totalItems))

	if data.SpecialNotes != "" {
		b.Append(BoldOn...)
		b.TextLine("NOTES:")
		b.TextLine(data.SpecialNotes)
		b.Append(BoldOff...)
	}

	b.Append(Feed(3)...)
	b.Append(Cut...)
	return b.Bytes()
}

// totalItemsRow right-justifies the quantity sum on a full-width row.
func totalItemsRow(total int) string {
	label := "Total Items:"
	return label + padLeft(strconv.Itoa(total), lineWidth-len(label))
}

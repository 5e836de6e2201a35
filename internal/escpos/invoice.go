package escpos

import (
	"strconv"

	"pos-bridge-backend/internal/model"
)

// Invoice compiles a customer receipt. Pure and deterministic: identical
// input yields byte-identical output.
func Invoice(data model.InvoiceData) []byte {
	b := NewBuilder()
	b.Append(Init...)
	b.Append(AlignCenter...)

	if data.BusinessInfo.Name != "" {
		b.Append(BoldOn...)
		b.Append(TextDouble...)
		b.TextLine(data.BusinessInfo.Name)
		b.Append(TextNormal...)
		b.Append(BoldOff...)
	}
	if data.BusinessInfo.Address != "" {
		b.TextLine(data.BusinessInfo.Address)
	}
	if data.BusinessInfo.Phone != "" {
		b.TextLine("Tel: " + data.BusinessInfo.Phone)
	}

	b.TextLine(separator)
	b.Append(BoldOn...)
	b.TextLine("INVOICE")
	b.Append(BoldOff...)
	b.Append(AlignLeft...)

	invoiceNo := data.InvoiceNumber
	if invoiceNo == "" {
		invoiceNo = "N/A"
	}
	b.TextLine("Inv #: " + invoiceNo)
	b.TextLine("Date: " + formatDate(data.Date))
	if data.TableNumber != "" {
		b.TextLine("Table: " + data.TableNumber)
	}
	if data.GuestNumber > 0 {
		b.TextLine("Guests: " + strconv.Itoa(data.GuestNumber))
	}
	customer := data.Customer.Name
	if customer == "" {
		customer = "Walk-in Customer"
	}
	b.TextLine("Cust: " + customer)
	if data.Customer.Phone != "" {
		b.TextLine("Phone: " + data.Customer.Phone)
	}

	b.TextLine(separator)
	b.Append(BoldOn...)
	b.TextLine(padRight("Qty", 4) + padRight("Item", 18) + padLeft("Total", 10))
	b.Append(BoldOff...)
	b.TextLine(separator)

	for _, item := range data.Items {
		b.TextLine(itemRow(item.Quantity, item.ProductName, item.Subtotal))
		if item.Details != "" {
			b.TextLine("  " + item.Details)
		}
	}

	b.TextLine(separator)
	b.Append(AlignRight...)
	b.TextLine("Subtotal: " + amount(data.Summary.Subtotal))
	if data.Summary.Discount > 0 {
		b.TextLine("Discount (" + rate(data.Summary.DiscountRate) + "%): -" + amount(data.Summary.Discount))
	}
	if data.Summary.Vat > 0 {
		b.TextLine("Vat (" + rate(data.Summary.VatRate) + "%): " + amount(data.Summary.Vat))
	}
	b.Append(BoldOn...)
	b.TextLine("TOTAL: " + amount(data.Summary.Total))
	b.Append(BoldOff...)

	b.Append(AlignCenter...)
	b.NewLine()
	b.TextLine("Thank You!")
	b.Append(Feed(3)...)
	b.Append(Cut...)

	return b.Bytes()
}

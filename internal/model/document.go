package model

import "encoding/json"

// DocumentKind selects which printer document compiler handles a payload.
type DocumentKind string

const (
	KindInvoice      DocumentKind = "INVOICE"
	KindKOT          DocumentKind = "KOT"
	KindBarcode      DocumentKind = "BARCODE"
	KindBarcodeLabel DocumentKind = "BARCODE_LABEL"
)

// PrintJob is a transient print request as it arrives on the wire. Type is
// the message type ("PRINT_INVOICE", "PRINT_KOT", ...). At most one job is
// pending at a time; a newer job replaces an unsent older one.
type PrintJob struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// BusinessInfo is the letterhead block shared by receipt documents.
type BusinessInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Customer identifies the buyer on an invoice.
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// LineItem is one ordered product on an invoice or kitchen ticket.
type LineItem struct {
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
	Details     string  `json:"details"`
}

// Summary is the monetary footer of an invoice. Discount and Vat lines are
// printed only when the corresponding amount is strictly positive.
type Summary struct {
	Subtotal     float64 `json:"subtotal"`
	Discount     float64 `json:"discount"`
	DiscountRate float64 `json:"discountRate"`
	Vat          float64 `json:"vat"`
	VatRate      float64 `json:"vatRate"`
	Total        float64 `json:"total"`
}

// InvoiceData is the payload of an INVOICE print request.
type InvoiceData struct {
	BusinessInfo  BusinessInfo `json:"businessInfo"`
	InvoiceNumber string       `json:"invoiceNumber"`
	Date          string       `json:"date"`
	TableNumber   string       `json:"tableNumber"`
	GuestNumber   int          `json:"guestNumber"`
	Customer      Customer     `json:"customer"`
	Items         []LineItem   `json:"items"`
	Summary       Summary      `json:"summary"`
}

// KOTData is the payload of a KOT (kitchen order ticket) print request.
// Kitchen tickets never carry prices.
type KOTData struct {
	BusinessInfo BusinessInfo `json:"businessInfo"`
	Date         string       `json:"date"`
	TableNumber  string       `json:"tableNumber"`
	GuestNumber  int          `json:"guestNumber"`
	Items        []LineItem   `json:"items"`
	SpecialNotes string       `json:"specialNotes"`
}

// LabelSize is an optional physical label dimension override in millimeters.
type LabelSize struct {
	WidthMm  float64 `json:"widthMm"`
	HeightMm float64 `json:"heightMm"`
}

// BarcodeData is the payload of BARCODE (ESC/POS tag) and BARCODE_LABEL
// (TSPL label) print requests. SKU is the Code-128 payload.
type BarcodeData struct {
	BrandName    string     `json:"brandName"`
	CategoryName string     `json:"categoryName"`
	ModelNo      string     `json:"modelNo"`
	ShopName     string     `json:"shopName"`
	SKU          string     `json:"sku"`
	Price        float64    `json:"price"`
	LabelSize    *LabelSize `json:"labelSize"`
}

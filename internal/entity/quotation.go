package entity

import "time"

const (
	QuotationStatusDraft    = "draft"
	QuotationStatusSent     = "sent"
	QuotationStatusAccepted = "accepted"
	QuotationStatusRejected = "rejected"
	QuotationStatusExpired  = "expired"
)

// TaxRate is the flat rate applied to every quotation subtotal.
const TaxRate = 0.10

// LineItem is one row of a quotation. Amount is derived from
// Quantity * UnitPrice and is never set directly.
type LineItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type ClientInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Address string `json:"address,omitempty"`
}

type QuotationInfo struct {
	QuotationNumber string `json:"quotationNumber"`
	Date            string `json:"date"`       // YYYY-MM-DD
	ValidUntil      string `json:"validUntil"` // YYYY-MM-DD
	Notes           string `json:"notes,omitempty"`
	Terms           string `json:"terms,omitempty"`
}

// Quotation as listed by the upstream API.
type Quotation struct {
	ID              string     `json:"_id"`
	QuotationNumber string     `json:"quotationNumber"`
	Client          ClientInfo `json:"client"`
	Date            time.Time  `json:"date"`
	Total           float64    `json:"total"`
	Status          string     `json:"status"`
	PDFURL          string     `json:"pdfUrl,omitempty"`
}

package usecase

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
)

// Editable line item fields.
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldUnitPrice   = "unitPrice"
)

const defaultTerms = "Payment due within 30 days of receipt."

// QuoteBuilder keeps a quotation draft consistent while it is edited:
// every quantity or unit price change recomputes the row amount in the
// same update, and totals are derived on read, never stored.
type QuoteBuilder struct {
	LeadID string
	Client entity.ClientInfo
	Info   entity.QuotationInfo

	items []entity.LineItem
	ids   IDGenerator
}

// SubmissionPayload is what gets posted to the quotations collaborator.
// Assembly only; the caller owns the actual transmission.
type SubmissionPayload struct {
	LeadID        string               `json:"leadId,omitempty"`
	ClientInfo    entity.ClientInfo    `json:"clientInfo"`
	QuotationInfo entity.QuotationInfo `json:"quotationInfo"`
	Items         []entity.LineItem    `json:"items"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
}

// NewQuoteBuilder starts a draft with generated quotation info and a
// single placeholder row. The item list is never empty afterwards.
func NewQuoteBuilder(ids IDGenerator) *QuoteBuilder {
	now := time.Now()
	b := &QuoteBuilder{
		Info: entity.QuotationInfo{
			QuotationNumber: fmt.Sprintf("QT-%04d", rand.Intn(10000)),
			Date:            now.Format("2006-01-02"),
			ValidUntil:      now.AddDate(0, 0, 30).Format("2006-01-02"),
			Terms:           defaultTerms,
		},
		ids: ids,
	}
	b.items = append(b.items, b.newItem())
	return b
}

func (b *QuoteBuilder) newItem() entity.LineItem {
	return entity.LineItem{
		ID:       b.ids.NewID(),
		Quantity: 1,
	}
}

// PrefillFromLead copies a lead's contact details into the client block.
func (b *QuoteBuilder) PrefillFromLead(l entity.Lead) {
	b.LeadID = l.ID
	b.Client = entity.ClientInfo{
		Name:    l.Name,
		Email:   l.Email,
		Company: l.Company,
		Address: l.Address,
	}
}

// UpdateField edits one field of one row. Quantity and unit price go
// through CoerceNumber and trigger an amount recompute for that row.
// An unknown item id or field is a no-op: stale edit events from rows
// that were just removed must not error.
func (b *QuoteBuilder) UpdateField(itemID, field, value string) {
	for i := range b.items {
		if b.items[i].ID != itemID {
			continue
		}
		switch field {
		case FieldDescription:
			b.items[i].Description = value
		case FieldQuantity:
			b.items[i].Quantity = CoerceNumber(value)
		case FieldUnitPrice:
			b.items[i].UnitPrice = CoerceNumber(value)
		default:
			return
		}
		b.items[i].Amount = b.items[i].Quantity * b.items[i].UnitPrice
		return
	}
}

// AddItem appends a fresh default row and returns it.
func (b *QuoteBuilder) AddItem() entity.LineItem {
	item := b.newItem()
	b.items = append(b.items, item)
	return item
}

// RemoveItem drops the matching row. Removing the last remaining row is
// refused: an empty quotation has no meaningful total.
func (b *QuoteBuilder) RemoveItem(itemID string) {
	if len(b.items) == 1 {
		return
	}
	for i := range b.items {
		if b.items[i].ID == itemID {
			b.items = append(b.items[:i], b.items[i+1:]...)
			return
		}
	}
}

// Items returns a copy of the current rows.
func (b *QuoteBuilder) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(b.items))
	copy(out, b.items)
	return out
}

func (b *QuoteBuilder) Subtotal() float64 {
	var sum float64
	for _, item := range b.items {
		sum += item.Amount
	}
	return sum
}

func (b *QuoteBuilder) Tax() float64 {
	return b.Subtotal() * entity.TaxRate
}

func (b *QuoteBuilder) Total() float64 {
	return b.Subtotal() + b.Tax()
}

func (b *QuoteBuilder) BuildSubmissionPayload() SubmissionPayload {
	return SubmissionPayload{
		LeadID:        b.LeadID,
		ClientInfo:    b.Client,
		QuotationInfo: b.Info,
		Items:         b.Items(),
		Subtotal:      b.Subtotal(),
		Tax:           b.Tax(),
		Total:         b.Total(),
	}
}

package usecase

import (
	"encoding/json"

	"github.com/xcabral/leaddesk/internal/entity"
)

type LeadInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Company    string `json:"company"`
	Position   string `json:"position,omitempty"`
	Status     string `json:"status,omitempty"`
	AssignedTo string `json:"assignedTo,omitempty"`
	Address    string `json:"address,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// QuotationItemInput carries raw row input. Quantity and unit price stay
// json.Number here; the builder's coercion policy decides what they mean.
type QuotationItemInput struct {
	Description string      `json:"description"`
	Quantity    json.Number `json:"quantity"`
	UnitPrice   json.Number `json:"unitPrice"`
}

type QuotationInput struct {
	LeadID        string               `json:"leadId,omitempty"`
	ClientInfo    entity.ClientInfo    `json:"clientInfo"`
	QuotationInfo entity.QuotationInfo `json:"quotationInfo"`
	Items         []QuotationItemInput `json:"items"`
}

// BuildQuotation replays the submitted rows through a fresh builder, so
// amounts and totals are always recomputed here and client-supplied
// figures are never trusted. Empty quotation info fields keep the
// builder's generated defaults.
func BuildQuotation(ids IDGenerator, in QuotationInput) SubmissionPayload {
	b := NewQuoteBuilder(ids)
	b.LeadID = in.LeadID
	b.Client = in.ClientInfo

	if in.QuotationInfo.QuotationNumber != "" {
		b.Info.QuotationNumber = in.QuotationInfo.QuotationNumber
	}
	if in.QuotationInfo.Date != "" {
		b.Info.Date = in.QuotationInfo.Date
	}
	if in.QuotationInfo.ValidUntil != "" {
		b.Info.ValidUntil = in.QuotationInfo.ValidUntil
	}
	if in.QuotationInfo.Terms != "" {
		b.Info.Terms = in.QuotationInfo.Terms
	}
	b.Info.Notes = in.QuotationInfo.Notes

	for i, item := range in.Items {
		var row entity.LineItem
		if i == 0 {
			row = b.Items()[0]
		} else {
			row = b.AddItem()
		}
		b.UpdateField(row.ID, FieldDescription, item.Description)
		b.UpdateField(row.ID, FieldQuantity, item.Quantity.String())
		b.UpdateField(row.ID, FieldUnitPrice, item.UnitPrice.String())
	}

	return b.BuildSubmissionPayload()
}

package entity

import "time"

// Lead status pipeline, in funnel order.
const (
	LeadStatusNew         = "new"
	LeadStatusContacted   = "contacted"
	LeadStatusQualified   = "qualified"
	LeadStatusProposal    = "proposal"
	LeadStatusNegotiation = "negotiation"
	LeadStatusWon         = "won"
	LeadStatusLost        = "lost"
)

type Lead struct {
	ID         string    `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Company    string    `json:"company"`
	Position   string    `json:"position,omitempty"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assignedTo,omitempty"`
	Address    string    `json:"address,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LeadStatuses lists every valid pipeline status.
func LeadStatuses() []string {
	return []string{
		LeadStatusNew,
		LeadStatusContacted,
		LeadStatusQualified,
		LeadStatusProposal,
		LeadStatusNegotiation,
		LeadStatusWon,
		LeadStatusLost,
	}
}

func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

package report

import (
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
)

// Placeholder datasets used when the upstream reports API is down.
// Charts render these instead of an error state.

var leadStatusLabels = []string{"New", "Contacted", "Qualified", "Proposal", "Negotiation", "Won", "Lost"}

var quotationStatusLabels = []string{"Draft", "Sent", "Accepted", "Rejected", "Expired"}

// SampleData builds a deterministic placeholder dataset for the kind
// over the given range.
func SampleData(kind string, from, to time.Time) Data {
	data := Data{
		Kind:      kind,
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
	}

	switch kind {
	case KindLeads:
		data.Status = sampleStatusSeries(leadStatusLabels, from, to)
	case KindQuotations:
		data.Status = sampleStatusSeries(quotationStatusLabels, from, to)
	case KindConversion:
		data.Conversion = sampleConversionSeries(from, to)
	case KindSalesPerformance:
		data.Performance = SamplePerformance()
	}
	return data
}

func sampleStatusSeries(labels []string, from, to time.Time) []StatusPoint {
	var points []StatusPoint
	for i, month := range monthsBetween(from, to) {
		counts := make(map[string]int, len(labels))
		for j, label := range labels {
			counts[label] = 5 + (i*7+j*11)%50
		}
		points = append(points, StatusPoint{Name: month, Counts: counts})
	}
	return points
}

func sampleConversionSeries(from, to time.Time) []ConversionPoint {
	var points []ConversionPoint
	for i, month := range monthsBetween(from, to) {
		points = append(points, ConversionPoint{
			Name:            month,
			LeadToQuotation: float64(20 + (i*9)%30),
			QuotationToSale: float64(30 + (i*13)%40),
			Overall:         float64(10 + (i*5)%20),
		})
	}
	return points
}

// SamplePerformance returns the placeholder sales rep table.
func SamplePerformance() []PerformanceRow {
	reps := []struct{ name, email string }{
		{"John Doe", "john.doe@example.com"},
		{"Jane Smith", "jane.smith@example.com"},
		{"Mike Johnson", "mike.j@example.com"},
		{"Sarah Williams", "sarah.w@example.com"},
		{"David Brown", "david.b@example.com"},
	}

	rows := make([]PerformanceRow, 0, len(reps))
	for i, rep := range reps {
		assigned := 25 + i*9
		contacted := assigned - 4 - i
		sent := contacted - 6
		closed := sent / 2
		rows = append(rows, PerformanceRow{
			Name:           rep.name,
			Email:          rep.email,
			LeadsAssigned:  assigned,
			LeadsContacted: contacted,
			QuotationsSent: sent,
			SalesClosed:    closed,
			ConversionRate: float64(closed) / float64(assigned) * 100,
			Revenue:        float64(closed * (2500 + i*800)),
			Target:         float64(40000 + i*5000),
		})
	}
	return rows
}

// SampleDashboardStats is the dashboard fallback block.
func SampleDashboardStats() DashboardStats {
	return DashboardStats{
		TotalLeads:      128,
		NewLeads:        12,
		TotalQuotations: 64,
		ConversionRate:  24.5,
	}
}

// SampleLeads returns a handful of placeholder leads for the dashboard
// recent-leads card when the upstream list is unavailable.
func SampleLeads() []entity.Lead {
	base := time.Now().AddDate(0, 0, -30)
	return []entity.Lead{
		{ID: "1", Name: "John Smith", Email: "john.smith@example.com", Company: "Acme Inc", Position: "CTO", Status: entity.LeadStatusNew, AssignedTo: "Jane Smith", CreatedAt: base},
		{ID: "2", Name: "Sarah Johnson", Email: "sarah.j@techcorp.com", Company: "TechCorp", Position: "CEO", Status: entity.LeadStatusContacted, AssignedTo: "Mike Johnson", CreatedAt: base.AddDate(0, 0, 3)},
		{ID: "3", Name: "Michael Brown", Email: "michael.b@globex.net", Company: "Globex", Position: "IT Director", Status: entity.LeadStatusQualified, AssignedTo: "John Doe", CreatedAt: base.AddDate(0, 0, 5)},
		{ID: "4", Name: "Emily Davis", Email: "emily.d@startupco.io", Company: "StartupCo", Position: "Founder", Status: entity.LeadStatusProposal, AssignedTo: "Jane Smith", CreatedAt: base.AddDate(0, 0, 7)},
		{ID: "5", Name: "David Wilson", Email: "david.w@megacorp.org", Company: "MegaCorp", Position: "COO", Status: entity.LeadStatusNegotiation, AssignedTo: "Mike Johnson", CreatedAt: base.AddDate(0, 0, 10)},
	}
}

func monthsBetween(from, to time.Time) []string {
	if to.Before(from) {
		from, to = to, from
	}

	var months []string
	current := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !current.After(end) {
		months = append(months, current.Format("Jan 2006"))
		current = current.AddDate(0, 1, 0)
	}
	return months
}

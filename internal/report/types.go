package report

// Report kinds accepted by the reports endpoints.
const (
	KindLeads            = "leads"
	KindQuotations       = "quotations"
	KindConversion       = "conversion"
	KindSalesPerformance = "sales-performance"
)

func IsValidKind(kind string) bool {
	switch kind {
	case KindLeads, KindQuotations, KindConversion, KindSalesPerformance:
		return true
	}
	return false
}

// StatusPoint is one month of per-status counts, used by the leads and
// quotations reports.
type StatusPoint struct {
	Name   string         `json:"name"` // e.g. "Jan 2026"
	Counts map[string]int `json:"counts"`
}

// ConversionPoint is one month of funnel conversion rates, in percent.
type ConversionPoint struct {
	Name            string  `json:"name"`
	LeadToQuotation float64 `json:"leadToQuotation"`
	QuotationToSale float64 `json:"quotationToSale"`
	Overall         float64 `json:"overallConversion"`
}

// PerformanceRow is one sales rep in the sales performance report.
type PerformanceRow struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	LeadsAssigned  int     `json:"leadsAssigned"`
	LeadsContacted int     `json:"leadsContacted"`
	QuotationsSent int     `json:"quotationsSent"`
	SalesClosed    int     `json:"salesClosed"`
	ConversionRate float64 `json:"conversionRate"`
	Revenue        float64 `json:"revenue"`
	Target         float64 `json:"target"`
}

// DashboardStats is the headline card block on the dashboard.
type DashboardStats struct {
	TotalLeads      int     `json:"totalLeads"`
	NewLeads        int     `json:"newLeads"`
	TotalQuotations int     `json:"totalQuotations"`
	ConversionRate  float64 `json:"conversionRate"`
}

// Data is the union carried by report responses and email jobs. Only
// the slice matching the kind is populated.
type Data struct {
	Kind        string            `json:"kind"`
	StartDate   string            `json:"startDate"`
	EndDate     string            `json:"endDate"`
	Status      []StatusPoint     `json:"status,omitempty"`
	Conversion  []ConversionPoint `json:"conversion,omitempty"`
	Performance []PerformanceRow  `json:"performance,omitempty"`
}

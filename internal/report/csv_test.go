package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xcabral/leaddesk/internal/entity"
)

func parseCSV(t *testing.T, raw []byte) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(string(raw))).ReadAll()
	assert.NoError(t, err)
	return records
}

// ============ TESTS ============

func TestRenderCSVStatusReport(t *testing.T) {
	data := Data{
		Kind: KindLeads,
		Status: []StatusPoint{
			{Name: "Jul 2026", Counts: map[string]int{"New": 5, "Won": 2}},
			{Name: "Aug 2026", Counts: map[string]int{"New": 8, "Lost": 1}},
		},
	}

	out, err := RenderCSV(data)
	assert.NoError(t, err)

	records := parseCSV(t, out)
	assert.Equal(t, []string{"Period", "Lost", "New", "Won"}, records[0])
	assert.Equal(t, []string{"Jul 2026", "0", "5", "2"}, records[1])
	assert.Equal(t, []string{"Aug 2026", "1", "8", "0"}, records[2])
}

func TestRenderCSVConversionReport(t *testing.T) {
	data := Data{
		Kind: KindConversion,
		Conversion: []ConversionPoint{
			{Name: "Jul 2026", LeadToQuotation: 25.5, QuotationToSale: 40, Overall: 12.25},
		},
	}

	out, err := RenderCSV(data)
	assert.NoError(t, err)

	records := parseCSV(t, out)
	assert.Len(t, records, 2)
	assert.Equal(t, []string{"Jul 2026", "25.5", "40.0", "12.2"}, records[1])
}

func TestRenderCSVPerformanceReport(t *testing.T) {
	data := Data{
		Kind:        KindSalesPerformance,
		Performance: SamplePerformance(),
	}

	out, err := RenderCSV(data)
	assert.NoError(t, err)

	records := parseCSV(t, out)
	assert.Len(t, records, 6) // header + 5 reps
	assert.Equal(t, "Sales Rep", records[0][0])
	assert.Equal(t, "John Doe", records[1][0])
}

func TestRenderCSVUnknownKind(t *testing.T) {
	_, err := RenderCSV(Data{Kind: "weather"})
	assert.Error(t, err)
}

func TestSampleDataMatchesKind(t *testing.T) {
	from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	leads := SampleData(KindLeads, from, to)
	assert.Equal(t, KindLeads, leads.Kind)
	assert.Equal(t, "2026-06-10", leads.StartDate)
	assert.Equal(t, "2026-08-20", leads.EndDate)
	assert.Len(t, leads.Status, 3) // Jun, Jul, Aug
	assert.Equal(t, "Jun 2026", leads.Status[0].Name)
	assert.Empty(t, leads.Conversion)
	assert.Empty(t, leads.Performance)

	conv := SampleData(KindConversion, from, to)
	assert.Len(t, conv.Conversion, 3)
	assert.Empty(t, conv.Status)

	perf := SampleData(KindSalesPerformance, from, to)
	assert.Len(t, perf.Performance, 5)
}

func TestSampleDataIsDeterministic(t *testing.T) {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, SampleData(KindLeads, from, to), SampleData(KindLeads, from, to))
}

func TestSampleLeadsAreWellFormed(t *testing.T) {
	leads := SampleLeads()

	assert.Len(t, leads, 5)
	for _, l := range leads {
		assert.True(t, entity.IsValidLeadStatus(l.Status), l.Name)
		assert.NotEmpty(t, l.Email)
		assert.NotEmpty(t, l.Company)
	}
}

func TestSampleDataRendersAsCSV(t *testing.T) {
	from := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	for _, kind := range []string{KindLeads, KindQuotations, KindConversion, KindSalesPerformance} {
		out, err := RenderCSV(SampleData(kind, from, to))
		assert.NoError(t, err, kind)
		assert.NotEmpty(t, out, kind)
	}
}

package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
)

// RenderCSV writes a report dataset as CSV, one row per data point. The
// column set depends on the kind.
func RenderCSV(data Data) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	switch data.Kind {
	case KindLeads, KindQuotations:
		if err := writeStatusRows(w, data.Status); err != nil {
			return nil, err
		}
	case KindConversion:
		if err := writeConversionRows(w, data.Conversion); err != nil {
			return nil, err
		}
	case KindSalesPerformance:
		if err := writePerformanceRows(w, data.Performance); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown report kind %q", data.Kind)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeStatusRows(w *csv.Writer, points []StatusPoint) error {
	// Stable column order across all rows.
	labelSet := make(map[string]bool)
	for _, p := range points {
		for label := range p.Counts {
			labelSet[label] = true
		}
	}
	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if err := w.Write(append([]string{"Period"}, labels...)); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{p.Name}
		for _, label := range labels {
			row = append(row, strconv.Itoa(p.Counts[label]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeConversionRows(w *csv.Writer, points []ConversionPoint) error {
	if err := w.Write([]string{"Period", "Lead to Quotation (%)", "Quotation to Sale (%)", "Overall Conversion (%)"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			p.Name,
			formatPercent(p.LeadToQuotation),
			formatPercent(p.QuotationToSale),
			formatPercent(p.Overall),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writePerformanceRows(w *csv.Writer, rows []PerformanceRow) error {
	header := []string{"Sales Rep", "Email", "Leads Assigned", "Leads Contacted", "Quotations Sent", "Sales Closed", "Conversion Rate (%)", "Revenue", "Target"}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range rows {
		row := []string{
			r.Name,
			r.Email,
			strconv.Itoa(r.LeadsAssigned),
			strconv.Itoa(r.LeadsContacted),
			strconv.Itoa(r.QuotationsSent),
			strconv.Itoa(r.SalesClosed),
			formatPercent(r.ConversionRate),
			strconv.FormatFloat(r.Revenue, 'f', 2, 64),
			strconv.FormatFloat(r.Target, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

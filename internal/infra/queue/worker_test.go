package queue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xcabral/leaddesk/internal/report"
)

// MockReportMailer
type MockReportMailer struct {
	mock.Mock
}

func (m *MockReportMailer) SendReport(to string, data report.Data, csv []byte) error {
	args := m.Called(to, data, csv)
	return args.Error(0)
}

func conversionPayload() ReportEmailPayload {
	return ReportEmailPayload{
		To:          "ada@example.com",
		RequestedBy: "ada@example.com",
		Report: report.Data{
			Kind:      report.KindConversion,
			StartDate: "2026-07-01",
			EndDate:   "2026-07-31",
			Conversion: []report.ConversionPoint{
				{Name: "Jul 2026", LeadToQuotation: 25, QuotationToSale: 40, Overall: 12},
			},
		},
	}
}

// ============ TESTS ============

func TestWorkerProcessRendersAndSends(t *testing.T) {
	mailer := new(MockReportMailer)
	mailer.On("SendReport", "ada@example.com", mock.Anything, mock.Anything).Return(nil)

	w := NewWorker(nil, mailer)
	payload := conversionPayload()

	err := w.process(payload)

	assert.NoError(t, err)
	mailer.AssertCalled(t, "SendReport", "ada@example.com", payload.Report, mock.Anything)

	csv := mailer.Calls[0].Arguments.Get(2).([]byte)
	assert.Contains(t, string(csv), "Jul 2026")
}

func TestWorkerProcessPropagatesMailerError(t *testing.T) {
	boom := errors.New("smtp down")
	mailer := new(MockReportMailer)
	mailer.On("SendReport", mock.Anything, mock.Anything, mock.Anything).Return(boom)

	w := NewWorker(nil, mailer)

	err := w.process(conversionPayload())
	assert.ErrorIs(t, err, boom)
}

func TestWorkerProcessRejectsUnknownKind(t *testing.T) {
	mailer := new(MockReportMailer)
	w := NewWorker(nil, mailer)

	payload := conversionPayload()
	payload.Report.Kind = "weather"

	err := w.process(payload)

	assert.Error(t, err)
	mailer.AssertNotCalled(t, "SendReport", mock.Anything, mock.Anything, mock.Anything)
}

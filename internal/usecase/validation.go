package usecase

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/xcabral/leaddesk/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateLeadInput(input LeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	} else if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.Company) == "" {
		errors = append(errors, ValidationError{"company", "is required"})
	}

	if input.Status != "" && !entity.IsValidLeadStatus(input.Status) {
		errors = append(errors, ValidationError{"status", "is not a valid lead status"})
	}

	return errors
}

func ValidateQuotationInput(input QuotationInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.ClientInfo.Name) == "" {
		errors = append(errors, ValidationError{"clientInfo.name", "is required"})
	}
	if strings.TrimSpace(input.ClientInfo.Email) == "" {
		errors = append(errors, ValidationError{"clientInfo.email", "is required"})
	} else if _, err := mail.ParseAddress(input.ClientInfo.Email); err != nil {
		errors = append(errors, ValidationError{"clientInfo.email", "is invalid"})
	}
	if strings.TrimSpace(input.ClientInfo.Company) == "" {
		errors = append(errors, ValidationError{"clientInfo.company", "is required"})
	}

	if input.QuotationInfo.Date != "" && !isValidDate(input.QuotationInfo.Date) {
		errors = append(errors, ValidationError{"quotationInfo.date", "must be a valid date (YYYY-MM-DD)"})
	}
	if input.QuotationInfo.ValidUntil != "" && !isValidDate(input.QuotationInfo.ValidUntil) {
		errors = append(errors, ValidationError{"quotationInfo.validUntil", "must be a valid date (YYYY-MM-DD)"})
	}

	if len(input.Items) == 0 {
		errors = append(errors, ValidationError{"items", "at least one item is required"})
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.Description) == "" {
			errors = append(errors, ValidationError{fmt.Sprintf("items[%d].description", i), "is required"})
		}
	}

	return errors
}

func isValidDate(dateStr string) bool {
	if _, err := time.Parse("2006-01-02", dateStr); err == nil {
		return true
	}
	if _, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return true
	}
	return false
}

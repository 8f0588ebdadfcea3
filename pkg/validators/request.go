package validators

import (
	"errors"
	"time"

	"ishan/rms-api/internal/model"
)

var (
	ErrTitleEmpty      = errors.New("no title provided")
	ErrAmountInvalid   = errors.New("amount must be a positive number")
	ErrDateInvalid     = errors.New("date must be in YYYY-MM-DD format")
	ErrCategoryInvalid = errors.New("invalid category provided")
)

// RequestFieldsValidator checks the editable fields of a reimbursement
// request before any store call.
func RequestFieldsValidator(title string, amount float64, date string, category model.Category) error {
	if title == "" {
		return ErrTitleEmpty
	}

	if amount <= 0 {
		return ErrAmountInvalid
	}

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrDateInvalid
	}

	if !category.Valid() {
		return ErrCategoryInvalid
	}

	return nil
}

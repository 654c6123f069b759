package handler

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// toDecimal converts a float64 to a decimal.Decimal
func toDecimal(f *float64) decimal.Decimal {
	if f == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*f)
}

// toDecimalPtr converts an optional float64 to an optional decimal
func toDecimalPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := decimal.NewFromFloat(*f)
	return &d
}

// refID returns the referenced ID, or nil when there is no reference.
// The binder has already checked the ID is a UUID.
func refID(ref *EntityRef) *uuid.UUID {
	if ref == nil {
		return nil
	}
	id, err := uuid.Parse(ref.ID)
	if err != nil {
		return nil
	}
	return &id
}

package engine

import (
	"errors"

	"loanbook/pkg/models"
)

var (
	// ErrInvalidAmount is returned for a non-positive principal or payment amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrDataIntegrity is returned when a payment references a loan that does
	// not exist in the dataset being enriched.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrInvalidDate is returned when a date input is missing where required
	// or cannot be parsed as a calendar date.
	ErrInvalidDate = models.ErrInvalidDate
)

package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loanbook/pkg/models"
)

// SampleData returns the bundled demonstration data set: four loans due on
// the same date, covering each headline status (On Time, Late, Defaulted,
// Unpaid) once enriched.
func SampleData() ([]*models.Loan, []*models.Payment) {
	dueDate := models.NewDate(2025, time.March, 1)

	loans := []*models.Loan{
		{
			ID:           uuid.New(),
			Name:         "Tom's Loan",
			Principal:    decimal.NewFromInt(10000),
			InterestRate: decimal.NewFromFloat(5.0),
			DueDate:      dueDate,
		},
		{
			ID:           uuid.New(),
			Name:         "Chris Wailaka",
			Principal:    decimal.NewFromInt(500000),
			InterestRate: decimal.NewFromFloat(3.5),
			DueDate:      dueDate,
		},
		{
			ID:           uuid.New(),
			Name:         "NP Mobile Money",
			Principal:    decimal.NewFromInt(30000),
			InterestRate: decimal.NewFromFloat(4.5),
			DueDate:      dueDate,
		},
		{
			ID:           uuid.New(),
			Name:         "Esther's Autoparts",
			Principal:    decimal.NewFromInt(40000),
			InterestRate: decimal.NewFromFloat(1.5),
			DueDate:      dueDate,
		},
	}

	dates := []models.Date{
		models.NewDate(2025, time.March, 4),
		models.NewDate(2025, time.March, 15),
		models.NewDate(2025, time.April, 5),
	}
	payments := []*models.Payment{
		{ID: uuid.New(), LoanID: loans[0].ID, PaymentDate: &dates[0], Amount: decimal.NewFromInt(10000)},
		{ID: uuid.New(), LoanID: loans[1].ID, PaymentDate: &dates[1], Amount: decimal.NewFromInt(500000)},
		{ID: uuid.New(), LoanID: loans[2].ID, PaymentDate: &dates[2], Amount: decimal.NewFromInt(30000)},
	}

	return loans, payments
}

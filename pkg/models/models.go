package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Loan is a borrowing agreement with a principal due in full on DueDate.
// Loans are immutable after creation; only payments accumulate against them.
type Loan struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"principal"`
	InterestRate decimal.Decimal `json:"interest_rate"` // display only, no accrual
	DueDate      Date            `json:"due_date"`
}

// Payment is a single recorded installment against a loan. Payments are
// append-only; they are never edited or deleted once recorded. A nil
// PaymentDate means the installment has been recorded but not yet paid.
type Payment struct {
	ID          uuid.UUID       `json:"id"`
	LoanID      uuid.UUID       `json:"loan_id"`
	PaymentDate *Date           `json:"payment_date,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentStatus classifies how well a borrower is keeping pace with the
// repayment schedule. The set of values is closed.
type PaymentStatus string

const (
	StatusOnTime                 PaymentStatus = "On Time"
	StatusLate                   PaymentStatus = "Late"
	StatusDefaulted              PaymentStatus = "Defaulted"
	StatusUnpaid                 PaymentStatus = "Unpaid"
	StatusPartiallyPaid          PaymentStatus = "Partially Paid"
	StatusLatePartiallyPaid      PaymentStatus = "Late Partially Paid"
	StatusDefaultedPartiallyPaid PaymentStatus = "Defaulted Partially Paid"
)

// Valid reports whether s is one of the seven canonical labels.
func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusOnTime, StatusLate, StatusDefaulted, StatusUnpaid,
		StatusPartiallyPaid, StatusLatePartiallyPaid, StatusDefaultedPartiallyPaid:
		return true
	}
	return false
}

// LoanView is a loan combined with its payments and the derived balance and
// status. It is recomputed on every read and never stored.
type LoanView struct {
	Loan
	Payments         []*Payment      `json:"loan_payments"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
}

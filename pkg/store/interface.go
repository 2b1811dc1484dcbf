package store

import (
	"errors"

	"github.com/google/uuid"

	"loanbook/pkg/models"
)

// ErrLoanNotFound is returned when a loan id resolves to no stored loan.
var ErrLoanNotFound = errors.New("loan not found")

// Storage defines the persistence operations for loans and payments. The
// store owns durability and identifier uniqueness; derived status and
// balance are never persisted. Implementations must hand readers an
// internally consistent snapshot of a loan's payments.
type Storage interface {
	CreateLoan(loan *models.Loan) error
	GetLoan(id uuid.UUID) (*models.Loan, error)
	GetAllLoans() ([]*models.Loan, error)

	CreatePayment(payment *models.Payment) error
	GetPaymentsForLoan(loanID uuid.UUID) ([]*models.Payment, error)
	GetAllPayments() ([]*models.Payment, error)

	Close() error
}

package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"loanbook/pkg/engine"
	"loanbook/pkg/models"
	"loanbook/pkg/store"
)

var (
	// ErrLoanSettled is returned when a payment is recorded against a loan
	// whose principal is already fully covered.
	ErrLoanSettled = errors.New("loan is already fully paid")

	// ErrExceedsBalance is returned when a payment amount is greater than
	// the remaining balance of the loan.
	ErrExceedsBalance = errors.New("payment amount exceeds remaining balance")
)

// Ledger coordinates the record store and the status engine. Every write
// path (GraphQL mutation or REST endpoint) goes through the same methods,
// so both observe identical validation; every read re-derives status and
// balance from source data, nothing is cached.
type Ledger struct {
	storage  store.Storage
	enricher *engine.Enricher
	log      *logrus.Logger
}

// New creates a Ledger over the given Storage implementation.
func New(s store.Storage, log *logrus.Logger) *Ledger {
	return &Ledger{
		storage:  s,
		enricher: engine.NewEnricher(),
		log:      log,
	}
}

// CreateLoan validates and persists a new loan.
func (l *Ledger) CreateLoan(name string, interestRate, principal decimal.Decimal, dueDate models.Date) (*models.Loan, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: principal must be positive, got %s", engine.ErrInvalidAmount, principal)
	}
	if interestRate.IsNegative() {
		return nil, fmt.Errorf("%w: interest rate must not be negative, got %s", engine.ErrInvalidAmount, interestRate)
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", engine.ErrInvalidDate)
	}

	loan := &models.Loan{
		ID:           uuid.New(),
		Name:         name,
		Principal:    principal,
		InterestRate: interestRate,
		DueDate:      dueDate,
	}
	if err := l.storage.CreateLoan(loan); err != nil {
		return nil, fmt.Errorf("failed to store loan: %w", err)
	}
	l.log.WithFields(logrus.Fields{"loan_id": loan.ID, "principal": principal}).Info("loan created")
	return loan, nil
}

// RecordPayment validates and persists a payment against a loan. The loan
// must exist, must not already be settled, and the amount must be positive
// and no greater than the remaining balance.
func (l *Ledger) RecordPayment(loanID uuid.UUID, paymentDate models.Date, amount decimal.Decimal) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: payment amount must be greater than zero", engine.ErrInvalidAmount)
	}
	if paymentDate.IsZero() {
		return nil, fmt.Errorf("%w: payment date is required", engine.ErrInvalidDate)
	}

	loan, err := l.storage.GetLoan(loanID)
	if err != nil {
		return nil, err
	}
	payments, err := l.storage.GetPaymentsForLoan(loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for loan %s: %w", loanID, err)
	}

	balance, err := engine.Reconcile(loan.Principal, engine.TotalPaid(payments))
	if err != nil {
		return nil, err
	}
	if balance.FullyPaid {
		return nil, ErrLoanSettled
	}
	if amount.GreaterThan(balance.Remaining) {
		return nil, fmt.Errorf("%w: remaining balance is %s", ErrExceedsBalance, balance.Remaining.StringFixed(2))
	}

	payment := &models.Payment{
		ID:          uuid.New(),
		LoanID:      loanID,
		PaymentDate: &paymentDate,
		Amount:      amount,
	}
	if err := l.storage.CreatePayment(payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}
	l.log.WithFields(logrus.Fields{"loan_id": loanID, "payment_id": payment.ID, "amount": amount}).Info("payment recorded")
	return payment, nil
}

// GetLoan returns the enriched view of one loan.
func (l *Ledger) GetLoan(id uuid.UUID) (*models.LoanView, error) {
	loan, err := l.storage.GetLoan(id)
	if err != nil {
		return nil, err
	}
	payments, err := l.storage.GetPaymentsForLoan(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments for loan %s: %w", id, err)
	}
	return l.enricher.Enrich(loan, payments)
}

// GetAllLoans returns enriched views for the whole book. Loans that cannot
// be enriched are reported as faults alongside the partial result, never
// failing the batch.
func (l *Ledger) GetAllLoans() ([]*models.LoanView, []engine.Fault, error) {
	loans, err := l.storage.GetAllLoans()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load loans: %w", err)
	}
	payments, err := l.storage.GetAllPayments()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load payments: %w", err)
	}

	views, faults := l.enricher.EnrichAll(loans, payments)
	for _, f := range faults {
		l.log.WithField("loan_id", f.LoanID).WithError(f.Err).Warn("loan skipped during enrichment")
	}
	return views, faults, nil
}

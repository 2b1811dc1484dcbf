package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"loanbook/pkg/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_CreateAndGetLoan(t *testing.T) {
	s := newTestSQLiteStore(t)

	loan := &models.Loan{
		ID:           uuid.New(),
		Name:         "Tom's Loan",
		Principal:    decimal.NewFromInt(10000),
		InterestRate: decimal.NewFromFloat(5.0),
		DueDate:      models.NewDate(2025, time.March, 1),
	}

	if err := s.CreateLoan(loan); err != nil {
		t.Fatalf("Failed to create loan: %v", err)
	}

	fetched, err := s.GetLoan(loan.ID)
	if err != nil {
		t.Fatalf("Failed to get loan: %v", err)
	}

	if fetched.Name != loan.Name {
		t.Errorf("Expected name %q, got %q", loan.Name, fetched.Name)
	}
	if !fetched.Principal.Equal(loan.Principal) {
		t.Errorf("Expected principal %s, got %s", loan.Principal, fetched.Principal)
	}
	if !fetched.DueDate.Equal(loan.DueDate) {
		t.Errorf("Expected due date %s, got %s", loan.DueDate, fetched.DueDate)
	}
}

func TestSQLiteStore_GetLoanNotFound(t *testing.T) {
	s := newTestSQLiteStore(t)

	_, err := s.GetLoan(uuid.New())
	if !errors.Is(err, ErrLoanNotFound) {
		t.Errorf("Expected ErrLoanNotFound, got %v", err)
	}
}

func TestSQLiteStore_Payments(t *testing.T) {
	s := newTestSQLiteStore(t)

	loan := &models.Loan{
		ID:           uuid.New(),
		Name:         "test",
		Principal:    decimal.NewFromInt(10000),
		InterestRate: decimal.NewFromFloat(1.0),
		DueDate:      models.NewDate(2025, time.March, 1),
	}
	// Must create loan first due to foreign key
	if err := s.CreateLoan(loan); err != nil {
		t.Fatalf("Failed to create loan: %v", err)
	}

	later := models.NewDate(2025, time.March, 10)
	earlier := models.NewDate(2025, time.March, 2)
	amount := decimal.NewFromInt(4000)
	for _, d := range []models.Date{later, earlier} {
		date := d
		err := s.CreatePayment(&models.Payment{
			ID:          uuid.New(),
			LoanID:      loan.ID,
			PaymentDate: &date,
			Amount:      amount,
		})
		if err != nil {
			t.Fatalf("Failed to create payment: %v", err)
		}
	}

	payments, err := s.GetPaymentsForLoan(loan.ID)
	if err != nil {
		t.Fatalf("Failed to get payments: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(payments))
	}
	if !payments[0].PaymentDate.Equal(earlier) {
		t.Errorf("Expected payments ordered oldest first, got %s first", payments[0].PaymentDate)
	}
	if !payments[0].Amount.Equal(amount) {
		t.Errorf("Expected amount %s, got %s", amount, payments[0].Amount)
	}

	all, err := s.GetAllPayments()
	if err != nil {
		t.Fatalf("Failed to get all payments: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 payments in total, got %d", len(all))
	}

	other, err := s.GetPaymentsForLoan(uuid.New())
	if err != nil {
		t.Fatalf("Failed to get payments for unknown loan: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no payments for an unknown loan, got %d", len(other))
	}
}

func TestSQLiteStore_UndatedPayment(t *testing.T) {
	s := newTestSQLiteStore(t)

	loan := &models.Loan{
		ID:           uuid.New(),
		Name:         "test",
		Principal:    decimal.NewFromInt(5000),
		InterestRate: decimal.Zero,
		DueDate:      models.NewDate(2025, time.March, 1),
	}
	if err := s.CreateLoan(loan); err != nil {
		t.Fatalf("Failed to create loan: %v", err)
	}

	err := s.CreatePayment(&models.Payment{
		ID:     uuid.New(),
		LoanID: loan.ID,
		Amount: decimal.NewFromInt(1000),
	})
	if err != nil {
		t.Fatalf("Failed to create undated payment: %v", err)
	}

	payments, err := s.GetPaymentsForLoan(loan.ID)
	if err != nil {
		t.Fatalf("Failed to get payments: %v", err)
	}
	if len(payments) != 1 {
		t.Fatalf("Expected 1 payment, got %d", len(payments))
	}
	if payments[0].PaymentDate != nil {
		t.Errorf("Expected nil payment date, got %s", payments[0].PaymentDate)
	}
}

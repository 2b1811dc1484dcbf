package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"loanbook/pkg/models"
)

// Memory is an in-memory Storage, used in tests and as a scratch backend.
// Loans keep insertion order so reads are deterministic.
type Memory struct {
	mu       sync.RWMutex
	loans    map[uuid.UUID]*models.Loan
	order    []uuid.UUID
	payments []*models.Payment
}

func NewMemory() *Memory {
	return &Memory{loans: make(map[uuid.UUID]*models.Loan)}
}

func (m *Memory) CreateLoan(loan *models.Loan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.loans[loan.ID]; ok {
		return fmt.Errorf("loan %s already exists", loan.ID)
	}
	m.loans[loan.ID] = loan
	m.order = append(m.order, loan.ID)
	return nil
}

func (m *Memory) GetLoan(id uuid.UUID) (*models.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loan, ok := m.loans[id]
	if !ok {
		return nil, ErrLoanNotFound
	}
	return loan, nil
}

func (m *Memory) GetAllLoans() ([]*models.Loan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	loans := make([]*models.Loan, 0, len(m.order))
	for _, id := range m.order {
		loans = append(loans, m.loans[id])
	}
	return loans, nil
}

func (m *Memory) CreatePayment(payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.payments = append(m.payments, payment)
	return nil
}

func (m *Memory) GetPaymentsForLoan(loanID uuid.UUID) ([]*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var payments []*models.Payment
	for _, p := range m.payments {
		if p.LoanID == loanID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *Memory) GetAllPayments() ([]*models.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	payments := make([]*models.Payment, len(m.payments))
	copy(payments, m.payments)
	return payments, nil
}

func (m *Memory) Close() error {
	return nil
}

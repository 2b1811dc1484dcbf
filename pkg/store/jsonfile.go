package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"loanbook/pkg/models"
)

// fileDocument mirrors the on-disk JSON layout.
type fileDocument struct {
	Loans        []*models.Loan    `json:"loans"`
	LoanPayments []*models.Payment `json:"loan_payments"`
}

// FileStore is a Storage backed by a single JSON document on disk. The
// whole document is loaded at open time; a missing file, malformed JSON or
// an unparseable date fails the open rather than being papered over with
// fabricated data. Every operation serializes through one mutex so
// concurrent payment creations cannot lose updates.
type FileStore struct {
	mu       sync.Mutex
	path     string
	loans    []*models.Loan
	payments []*models.Payment
}

// NewFileStore opens the JSON document at path.
func NewFileStore(path string) (*FileStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read data file %q: %w", path, err)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("could not parse data file %q: %w", path, err)
	}
	return &FileStore{path: path, loans: doc.Loans, payments: doc.LoanPayments}, nil
}

// save writes the document atomically: temp file in the same directory,
// then rename over the original. Caller must hold the mutex.
func (f *FileStore) save() error {
	doc := fileDocument{Loans: f.loans, LoanPayments: f.payments}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode data file: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("could not write data file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("could not replace data file %q: %w", f.path, err)
	}
	return nil
}

func (f *FileStore) CreateLoan(loan *models.Loan) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.loans {
		if l.ID == loan.ID {
			return fmt.Errorf("loan %s already exists", loan.ID)
		}
	}
	f.loans = append(f.loans, loan)
	if err := f.save(); err != nil {
		f.loans = f.loans[:len(f.loans)-1]
		return err
	}
	return nil
}

func (f *FileStore) GetLoan(id uuid.UUID) (*models.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, l := range f.loans {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, ErrLoanNotFound
}

func (f *FileStore) GetAllLoans() ([]*models.Loan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	loans := make([]*models.Loan, len(f.loans))
	copy(loans, f.loans)
	return loans, nil
}

func (f *FileStore) CreatePayment(payment *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.payments = append(f.payments, payment)
	if err := f.save(); err != nil {
		f.payments = f.payments[:len(f.payments)-1]
		return err
	}
	return nil
}

func (f *FileStore) GetPaymentsForLoan(loanID uuid.UUID) ([]*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var payments []*models.Payment
	for _, p := range f.payments {
		if p.LoanID == loanID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (f *FileStore) GetAllPayments() ([]*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payments := make([]*models.Payment, len(f.payments))
	copy(payments, f.payments)
	return payments, nil
}

func (f *FileStore) Close() error {
	return nil
}

// SeedFileIfMissing writes the bundled sample data set to path when no file
// exists there yet. Whether to fall back to sample data is a caller policy;
// NewFileStore itself never fabricates records.
func SeedFileIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("could not stat data file %q: %w", path, err)
	}

	loans, payments := SampleData()
	doc := fileDocument{Loans: loans, LoanPayments: payments}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode sample data: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create data directory %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("could not write sample data file %q: %w", path, err)
	}
	return nil
}

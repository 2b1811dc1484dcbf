package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"loanbook/pkg/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore manages the database connection and operations for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore and initializes the database.
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	// Manually enable foreign keys and WAL mode
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}
	return s, nil
}

// initSchema creates the tables if they don't already exist. Decimal fields
// are stored as TEXT so no precision is lost; dates as ISO-8601 TEXT.
func (s *SQLiteStore) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS loans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		principal TEXT NOT NULL,
		interest_rate TEXT NOT NULL DEFAULT '0',
		due_date TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS payments (
		id TEXT PRIMARY KEY,
		loan_id TEXT NOT NULL,
		payment_date TEXT,
		amount TEXT NOT NULL,
		FOREIGN KEY(loan_id) REFERENCES loans(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// CreateLoan inserts a new loan into the database.
func (s *SQLiteStore) CreateLoan(loan *models.Loan) error {
	_, err := s.db.Exec(
		`INSERT INTO loans (id, name, principal, interest_rate, due_date) VALUES (?, ?, ?, ?, ?)`,
		loan.ID.String(), loan.Name, loan.Principal, loan.InterestRate, loan.DueDate.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// GetLoan retrieves a loan by its ID.
func (s *SQLiteStore) GetLoan(id uuid.UUID) (*models.Loan, error) {
	row := s.db.QueryRow(`SELECT id, name, principal, interest_rate, due_date FROM loans WHERE id = ?`, id.String())
	loan, err := scanLoan(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

// GetAllLoans retrieves all loans.
func (s *SQLiteStore) GetAllLoans() ([]*models.Loan, error) {
	rows, err := s.db.Query(`SELECT id, name, principal, interest_rate, due_date FROM loans`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all loans: %w", err)
	}
	defer rows.Close()

	var loans []*models.Loan
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan row: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return loans, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLoan(r rowScanner) (*models.Loan, error) {
	var loan models.Loan
	var idStr, dueDateStr string
	if err := r.Scan(&idStr, &loan.Name, &loan.Principal, &loan.InterestRate, &dueDateStr); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid loan id %q: %w", idStr, err)
	}
	dueDate, err := models.ParseDate(dueDateStr)
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", idStr, err)
	}
	loan.ID = id
	loan.DueDate = dueDate
	return &loan, nil
}

// CreatePayment inserts a new payment into the database.
func (s *SQLiteStore) CreatePayment(payment *models.Payment) error {
	var paymentDate interface{}
	if payment.PaymentDate != nil {
		paymentDate = payment.PaymentDate.String()
	}
	_, err := s.db.Exec(
		`INSERT INTO payments (id, loan_id, payment_date, amount) VALUES (?, ?, ?, ?)`,
		payment.ID.String(), payment.LoanID.String(), paymentDate, payment.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// GetPaymentsForLoan retrieves all payments for a given loan ID, oldest first.
func (s *SQLiteStore) GetPaymentsForLoan(loanID uuid.UUID) ([]*models.Payment, error) {
	rows, err := s.db.Query(
		`SELECT id, loan_id, payment_date, amount FROM payments WHERE loan_id = ? ORDER BY payment_date ASC`,
		loanID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments for loan %s: %w", loanID, err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

// GetAllPayments retrieves every payment in the store.
func (s *SQLiteStore) GetAllPayments() ([]*models.Payment, error) {
	rows, err := s.db.Query(`SELECT id, loan_id, payment_date, amount FROM payments ORDER BY payment_date ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get all payments: %w", err)
	}
	defer rows.Close()

	return scanPayments(rows)
}

func scanPayments(rows *sql.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		var payment models.Payment
		var idStr, loanIDStr string
		var paymentDate sql.NullString
		if err := rows.Scan(&idStr, &loanIDStr, &paymentDate, &payment.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid payment id %q: %w", idStr, err)
		}
		loanID, err := uuid.Parse(loanIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid loan id %q on payment %s: %w", loanIDStr, idStr, err)
		}
		payment.ID = id
		payment.LoanID = loanID
		if paymentDate.Valid {
			d, err := models.ParseDate(paymentDate.String)
			if err != nil {
				return nil, fmt.Errorf("payment %s: %w", idStr, err)
			}
			payment.PaymentDate = &d
		}
		payments = append(payments, &payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return payments, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

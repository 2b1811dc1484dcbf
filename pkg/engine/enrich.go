package engine

import (
	"fmt"

	"github.com/google/uuid"

	"loanbook/pkg/models"
)

// ReferenceDate picks the payment date used as the timeliness reference for
// a loan with multiple payments. It returns nil when no payment is dated.
type ReferenceDate func(payments []*models.Payment) *models.Date

// LatestPaymentDate uses the most recent payment date: how current the
// repayment is as of the last observed activity. This is the default policy.
func LatestPaymentDate(payments []*models.Payment) *models.Date {
	var latest *models.Date
	for _, p := range payments {
		if p.PaymentDate == nil {
			continue
		}
		if latest == nil || p.PaymentDate.After(*latest) {
			d := *p.PaymentDate
			latest = &d
		}
	}
	return latest
}

// EarliestPaymentDate uses the first payment date instead, for callers that
// prefer to judge timeliness by when repayment began.
func EarliestPaymentDate(payments []*models.Payment) *models.Date {
	var earliest *models.Date
	for _, p := range payments {
		if p.PaymentDate == nil {
			continue
		}
		if earliest == nil || p.PaymentDate.Before(*earliest) {
			d := *p.PaymentDate
			earliest = &d
		}
	}
	return earliest
}

// Enricher derives the view of a loan from its raw records. It is stateless
// apart from the reference-date policy, performs no I/O and never mutates
// its inputs, so a single instance is safe for concurrent use.
type Enricher struct {
	ReferenceDate ReferenceDate
}

func NewEnricher() *Enricher {
	return &Enricher{ReferenceDate: LatestPaymentDate}
}

// Enrich produces the derived view of one loan. Every payment must belong to
// the loan; a mismatched loan id is an ErrDataIntegrity failure, never
// silently dropped.
func (e *Enricher) Enrich(loan *models.Loan, payments []*models.Payment) (*models.LoanView, error) {
	matched := make([]*models.Payment, 0, len(payments))
	for _, p := range payments {
		if p.LoanID != loan.ID {
			return nil, fmt.Errorf("%w: payment %s references loan %s, not %s",
				ErrDataIntegrity, p.ID, p.LoanID, loan.ID)
		}
		matched = append(matched, p)
	}

	balance, err := Reconcile(loan.Principal, TotalPaid(matched))
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", loan.ID, err)
	}

	// When payments exist but none carries a date yet, the bucket falls back
	// to OnTime: activity has been recorded and nothing is observably late.
	bucket, _ := Classify(loan.DueDate, e.ReferenceDate(matched))
	status := Resolve(len(matched) > 0, balance.FullyPaid, bucket)

	return &models.LoanView{
		Loan:             *loan,
		Payments:         matched,
		RemainingBalance: balance.Remaining,
		PaymentStatus:    status,
	}, nil
}

// Fault reports one loan that could not be enriched during a batch read.
type Fault struct {
	LoanID uuid.UUID
	Err    error
}

// EnrichAll enriches a batch of loans against the complete payment dataset.
// Failures are independent: a loan that cannot be enriched becomes a Fault
// while the rest of the batch is still returned. A payment whose loan id
// resolves to no loan in the batch is likewise reported as a Fault.
func (e *Enricher) EnrichAll(loans []*models.Loan, payments []*models.Payment) ([]*models.LoanView, []Fault) {
	known := make(map[uuid.UUID]bool, len(loans))
	for _, l := range loans {
		known[l.ID] = true
	}

	var faults []Fault
	byLoan := make(map[uuid.UUID][]*models.Payment, len(loans))
	for _, p := range payments {
		if !known[p.LoanID] {
			faults = append(faults, Fault{
				LoanID: p.LoanID,
				Err:    fmt.Errorf("%w: payment %s references unknown loan %s", ErrDataIntegrity, p.ID, p.LoanID),
			})
			continue
		}
		byLoan[p.LoanID] = append(byLoan[p.LoanID], p)
	}

	views := make([]*models.LoanView, 0, len(loans))
	for _, l := range loans {
		view, err := e.Enrich(l, byLoan[l.ID])
		if err != nil {
			faults = append(faults, Fault{LoanID: l.ID, Err: err})
			continue
		}
		views = append(views, view)
	}
	return views, faults
}

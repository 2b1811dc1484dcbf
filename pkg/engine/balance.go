package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loanbook/pkg/models"
)

// TotalPaid sums the amounts of a loan's recorded payments. An empty
// sequence yields zero. Every payment counts once; uniqueness is the
// responsibility of the write path that recorded them.
func TotalPaid(payments []*models.Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// Balance is the reconciliation of a principal against the total paid.
type Balance struct {
	Remaining decimal.Decimal
	FullyPaid bool
}

// Reconcile derives the remaining balance and the fully-paid flag.
// Over-payment is clamped to a zero remaining balance, never an error.
// Meeting the principal exactly counts as fully paid.
func Reconcile(principal, totalPaid decimal.Decimal) (Balance, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return Balance{}, fmt.Errorf("%w: principal must be positive, got %s", ErrInvalidAmount, principal)
	}
	remaining := principal.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return Balance{
		Remaining: remaining,
		FullyPaid: totalPaid.GreaterThanOrEqual(principal),
	}, nil
}

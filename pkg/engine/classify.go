package engine

import "loanbook/pkg/models"

// Bucket is the timeliness classification of a payment date relative to a
// loan's due date.
type Bucket int

const (
	OnTime Bucket = iota
	Late
	Defaulted
)

func (b Bucket) String() string {
	switch b {
	case OnTime:
		return "on_time"
	case Late:
		return "late"
	case Defaulted:
		return "defaulted"
	}
	return "unknown"
}

const (
	// onTimeAllowanceDays is how many days past the due date still count as on time.
	onTimeAllowanceDays = 5
	// gracePeriodDays is how many days past the due date before a loan is defaulted.
	gracePeriodDays = 30
)

// Classify buckets ref against due in whole calendar days. Boundaries are
// inclusive: up to 5 days past due is OnTime, 6 to 30 is Late, beyond 30 is
// Defaulted. Early payment is OnTime. A nil ref means no payment has been
// dated yet; ok is false and the bucket must not be used.
func Classify(due models.Date, ref *models.Date) (Bucket, bool) {
	if ref == nil {
		return OnTime, false
	}
	days := ref.DaysSince(due)
	switch {
	case days <= onTimeAllowanceDays:
		return OnTime, true
	case days <= gracePeriodDays:
		return Late, true
	default:
		return Defaulted, true
	}
}

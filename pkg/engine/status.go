package engine

import "loanbook/pkg/models"

// Resolve combines the timeliness bucket with the payment facts into one of
// the seven canonical status labels. It is total: every input combination
// maps to a label.
//
// No payment at all is Unpaid regardless of the due date. With payments
// recorded, the bucket picks between the full and the partial variant of
// its label.
func Resolve(hasAnyPayment, fullyPaid bool, bucket Bucket) models.PaymentStatus {
	if !hasAnyPayment {
		return models.StatusUnpaid
	}
	if fullyPaid {
		switch bucket {
		case OnTime:
			return models.StatusOnTime
		case Late:
			return models.StatusLate
		default:
			return models.StatusDefaulted
		}
	}
	switch bucket {
	case OnTime:
		return models.StatusPartiallyPaid
	case Late:
		return models.StatusLatePartiallyPaid
	default:
		return models.StatusDefaultedPartiallyPaid
	}
}

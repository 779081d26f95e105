package loan

import (
	"fmt"
	"time"
)

// NewSchedule splits principal into terms monthly installments. Every installment
// gets principal/terms and the last one also carries the remainder, so the amounts
// always add up to principal exactly.
func NewSchedule(principal int64, terms int, currency Currency, start time.Time) ([]ScheduledRepayment, error) {
	if terms <= 0 {
		return nil, fmt.Errorf("%w: terms must be positive, got %d", ErrInvalidArgument, terms)
	}
	if principal < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative, got %d", ErrInvalidArgument, principal)
	}

	base := principal / int64(terms)
	remainder := principal % int64(terms)

	out := make([]ScheduledRepayment, 0, terms)
	for i := 1; i <= terms; i++ {
		amount := base
		if i == terms {
			amount += remainder
		}
		out = append(out, ScheduledRepayment{
			Amount:            amount,
			OutstandingAmount: amount,
			CurrencyCode:      currency,
			DueDate:           AddMonths(start, i),
			Status:            RepaymentDue,
		})
	}
	return out, nil
}

// AddMonths moves t forward by n calendar months, clamping the day to the last day
// of the target month (Jan 31 + 1 month = Feb 28/29). The result is a UTC date.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	if last := daysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

func daysIn(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

package loan

import (
	"fmt"
	"sort"
)

// Allocation is the outcome of applying one payment to a schedule snapshot.
type Allocation struct {
	// Installments is the full schedule after the payment, in the input order.
	Installments []ScheduledRepayment
	// Changed holds only the installments the payment touched, oldest due first.
	Changed []ScheduledRepayment
	Applied int64
	// Unapplied is the overpayment left after every installment was settled.
	// It is not carried forward anywhere.
	Unapplied int64
}

// Outstanding is the loan balance after the payment.
func (a Allocation) Outstanding() int64 { return TotalOutstanding(a.Installments) }

// Allocate applies amount to the open installments of a schedule, oldest due date
// first, settling each one in full before moving on. The input slice is not modified.
func Allocate(installments []ScheduledRepayment, amount int64) (Allocation, error) {
	if amount <= 0 {
		return Allocation{}, fmt.Errorf("%w: repayment amount must be positive, got %d", ErrInvalidArgument, amount)
	}

	snapshot := make([]ScheduledRepayment, len(installments))
	copy(snapshot, installments)

	open := make([]int, 0, len(snapshot))
	for i := range snapshot {
		if snapshot[i].Status.Open() {
			open = append(open, i)
		}
	}
	sort.SliceStable(open, func(a, b int) bool {
		return snapshot[open[a]].DueDate.Before(snapshot[open[b]].DueDate)
	})

	remaining := amount
	var changed []ScheduledRepayment
	for _, i := range open {
		if remaining <= 0 {
			break
		}
		s := &snapshot[i]
		if remaining >= s.OutstandingAmount {
			remaining -= s.OutstandingAmount
			s.OutstandingAmount = 0
			s.Status = RepaymentRepaid
		} else {
			s.OutstandingAmount -= remaining
			s.Status = RepaymentPartial
			remaining = 0
		}
		changed = append(changed, *s)
	}

	return Allocation{
		Installments: snapshot,
		Changed:      changed,
		Applied:      amount - remaining,
		Unapplied:    remaining,
	}, nil
}

package loan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schedule5000(t *testing.T) []ScheduledRepayment {
	t.Helper()
	items, err := NewSchedule(5000, 3, CurrencyVND, date(2022, 1, 20))
	require.NoError(t, err)
	for i := range items {
		items[i].ID = uint64(i + 1)
	}
	return items
}

func outstandings(items []ScheduledRepayment) []int64 {
	out := make([]int64, len(items))
	for i, s := range items {
		out[i] = s.OutstandingAmount
	}
	return out
}

func statuses(items []ScheduledRepayment) []RepaymentStatus {
	out := make([]RepaymentStatus, len(items))
	for i, s := range items {
		out[i] = s.Status
	}
	return out
}

func TestAllocate_FullThenPartial(t *testing.T) {
	items := schedule5000(t)

	first, err := Allocate(items, 1666)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1666, 1668}, outstandings(first.Installments))
	assert.Equal(t, []RepaymentStatus{RepaymentRepaid, RepaymentDue, RepaymentDue}, statuses(first.Installments))
	assert.Equal(t, int64(3334), first.Outstanding())
	assert.Equal(t, StatusDue, StatusFor(first.Outstanding()))
	require.Len(t, first.Changed, 1)
	assert.Equal(t, uint64(1), first.Changed[0].ID)

	second, err := Allocate(first.Installments, 500)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1166, 1668}, outstandings(second.Installments))
	assert.Equal(t, []RepaymentStatus{RepaymentRepaid, RepaymentPartial, RepaymentDue}, statuses(second.Installments))
	assert.Equal(t, int64(2834), second.Outstanding())
	assert.Equal(t, StatusDue, StatusFor(second.Outstanding()))
	require.Len(t, second.Changed, 1)
	assert.Equal(t, uint64(2), second.Changed[0].ID)
}

func TestAllocate_DoesNotMutateInput(t *testing.T) {
	items := schedule5000(t)

	_, err := Allocate(items, 4000)
	require.NoError(t, err)
	assert.Equal(t, []int64{1666, 1666, 1668}, outstandings(items))
	assert.Equal(t, []RepaymentStatus{RepaymentDue, RepaymentDue, RepaymentDue}, statuses(items))
}

func TestAllocate_SpansInstallments(t *testing.T) {
	items := schedule5000(t)

	got, err := Allocate(items, 2000)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1332, 1668}, outstandings(got.Installments))
	assert.Equal(t, []RepaymentStatus{RepaymentRepaid, RepaymentPartial, RepaymentDue}, statuses(got.Installments))
	assert.Len(t, got.Changed, 2)
	assert.Equal(t, int64(2000), got.Applied)
	assert.Zero(t, got.Unapplied)
}

func TestAllocate_ExactFullRepayment(t *testing.T) {
	items := schedule5000(t)

	got, err := Allocate(items, 5000)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0}, outstandings(got.Installments))
	assert.Equal(t, []RepaymentStatus{RepaymentRepaid, RepaymentRepaid, RepaymentRepaid}, statuses(got.Installments))
	assert.Zero(t, got.Outstanding())
	assert.Equal(t, StatusRepaid, StatusFor(got.Outstanding()))
	assert.Zero(t, got.Unapplied)
}

func TestAllocate_OverpaymentIsAbsorbed(t *testing.T) {
	items := schedule5000(t)

	got, err := Allocate(items, 7500)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 0}, outstandings(got.Installments))
	assert.Equal(t, StatusRepaid, StatusFor(got.Outstanding()))
	assert.Equal(t, int64(5000), got.Applied)
	assert.Equal(t, int64(2500), got.Unapplied)

	again, err := Allocate(got.Installments, 100)
	require.NoError(t, err)
	assert.Empty(t, again.Changed)
	assert.Equal(t, int64(100), again.Unapplied)
	assert.Zero(t, again.Outstanding())
}

func TestAllocate_OldestDueFirstRegardlessOfInputOrder(t *testing.T) {
	items := schedule5000(t)
	reversed := []ScheduledRepayment{items[2], items[0], items[1]}

	got, err := Allocate(reversed, 1700)
	require.NoError(t, err)

	// input order is preserved in the snapshot
	assert.Equal(t, uint64(3), got.Installments[0].ID)
	assert.Equal(t, int64(1668), got.Installments[0].OutstandingAmount)
	assert.Equal(t, RepaymentRepaid, got.Installments[1].Status)
	assert.Equal(t, int64(1632), got.Installments[2].OutstandingAmount)

	require.Len(t, got.Changed, 2)
	assert.Equal(t, uint64(1), got.Changed[0].ID)
	assert.Equal(t, uint64(2), got.Changed[1].ID)
}

func TestAllocate_PartialInstallmentIsSettledBeforeLaterOnes(t *testing.T) {
	items := schedule5000(t)
	items[0].OutstandingAmount = 0
	items[0].Status = RepaymentRepaid
	items[1].OutstandingAmount = 1166
	items[1].Status = RepaymentPartial

	got, err := Allocate(items, 1166)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 1668}, outstandings(got.Installments))
	assert.Equal(t, []RepaymentStatus{RepaymentRepaid, RepaymentRepaid, RepaymentDue}, statuses(got.Installments))
	assert.Equal(t, int64(1668), got.Outstanding())
}

func TestAllocate_EqualDueDatesKeepInputOrder(t *testing.T) {
	d := date(2022, 2, 20)
	items := []ScheduledRepayment{
		{ID: 1, Amount: 100, OutstandingAmount: 100, DueDate: d, Status: RepaymentDue},
		{ID: 2, Amount: 100, OutstandingAmount: 100, DueDate: d, Status: RepaymentDue},
	}

	got, err := Allocate(items, 150)
	require.NoError(t, err)
	assert.Equal(t, RepaymentRepaid, got.Installments[0].Status)
	assert.Equal(t, RepaymentPartial, got.Installments[1].Status)
	assert.Equal(t, int64(50), got.Installments[1].OutstandingAmount)
}

func TestAllocate_ZeroAmountInstallmentsAreSettled(t *testing.T) {
	items, err := NewSchedule(2, 3, CurrencyVND, date(2022, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0, 2}, amounts(items))

	got, err := Allocate(items, 1)
	require.NoError(t, err)
	assert.Equal(t, []RepaymentStatus{RepaymentRepaid, RepaymentRepaid, RepaymentPartial}, statuses(got.Installments))
	assert.Equal(t, int64(1), got.Outstanding())
}

func TestAllocate_NeverNegativeAndMonotonic(t *testing.T) {
	items, err := NewSchedule(10_000, 6, CurrencySGD, date(2022, 1, 1))
	require.NoError(t, err)

	prev := items
	for _, pay := range []int64{1, 999, 1666, 3, 2500, 10, 4000, 900} {
		got, err := Allocate(prev, pay)
		require.NoError(t, err)
		for i, s := range got.Installments {
			assert.GreaterOrEqual(t, s.OutstandingAmount, int64(0))
			assert.LessOrEqual(t, s.OutstandingAmount, prev[i].OutstandingAmount)
			if prev[i].Status == RepaymentRepaid {
				assert.Equal(t, RepaymentRepaid, s.Status)
			}
			if prev[i].Status == RepaymentPartial {
				assert.NotEqual(t, RepaymentDue, s.Status)
			}
		}
		assert.GreaterOrEqual(t, got.Outstanding(), int64(0))
		prev = got.Installments
	}
	assert.Zero(t, TotalOutstanding(prev))
}

func TestAllocate_RepeatedPaymentIsCumulative(t *testing.T) {
	items := schedule5000(t)

	once, err := Allocate(items, 1000)
	require.NoError(t, err)
	twice, err := Allocate(once.Installments, 1000)
	require.NoError(t, err)

	assert.Equal(t, int64(4000), once.Outstanding())
	assert.Equal(t, int64(3000), twice.Outstanding())
	assert.NotEqual(t, outstandings(once.Installments), outstandings(twice.Installments))
}

func TestAllocate_RejectsNonPositiveAmount(t *testing.T) {
	items := schedule5000(t)
	for _, amt := range []int64{0, -1, -5000} {
		_, err := Allocate(items, amt)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "amount %d", amt)
	}
}

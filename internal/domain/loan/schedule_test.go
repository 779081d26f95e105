package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func amounts(items []ScheduledRepayment) []int64 {
	out := make([]int64, len(items))
	for i, s := range items {
		out[i] = s.Amount
	}
	return out
}

func TestNewSchedule(t *testing.T) {
	t.Run("RemainderGoesToLastInstallment", func(t *testing.T) {
		items, err := NewSchedule(5000, 3, CurrencyVND, date(2022, 1, 20))
		require.NoError(t, err)

		assert.Equal(t, []int64{1666, 1666, 1668}, amounts(items))
		assert.Equal(t, int64(5000), TotalOutstanding(items))
		for _, s := range items {
			assert.Equal(t, s.Amount, s.OutstandingAmount)
			assert.Equal(t, RepaymentDue, s.Status)
			assert.Equal(t, CurrencyVND, s.CurrencyCode)
		}
	})

	t.Run("SumAndCountInvariant", func(t *testing.T) {
		start := date(2023, 5, 15)
		for _, tc := range []struct {
			principal int64
			terms     int
		}{
			{0, 1}, {1, 3}, {2, 3}, {5000, 1}, {5000, 3}, {5000, 7},
			{9999, 12}, {1_000_000, 24}, {7, 10}, {123_456_789, 36},
		} {
			items, err := NewSchedule(tc.principal, tc.terms, CurrencySGD, start)
			require.NoError(t, err)
			require.Len(t, items, tc.terms)

			var sum int64
			for _, s := range items {
				sum += s.Amount
			}
			assert.Equal(t, tc.principal, sum, "principal=%d terms=%d", tc.principal, tc.terms)

			base := tc.principal / int64(tc.terms)
			for _, s := range items[:tc.terms-1] {
				assert.Equal(t, base, s.Amount)
			}
			assert.Equal(t, base+tc.principal%int64(tc.terms), items[tc.terms-1].Amount)
		}
	})

	t.Run("DueDatesAreMonthlyFromStart", func(t *testing.T) {
		items, err := NewSchedule(5000, 3, CurrencyVND, date(2022, 1, 20))
		require.NoError(t, err)

		want := []time.Time{date(2022, 2, 20), date(2022, 3, 20), date(2022, 4, 20)}
		for i, s := range items {
			assert.True(t, want[i].Equal(s.DueDate), "installment %d due %s, want %s", i+1, s.DueDate, want[i])
		}
	})

	t.Run("EndOfMonthStartIsClamped", func(t *testing.T) {
		items, err := NewSchedule(400, 4, CurrencyTHB, date(2024, 1, 31))
		require.NoError(t, err)

		want := []string{"2024-02-29", "2024-03-31", "2024-04-30", "2024-05-31"}
		for i, s := range items {
			assert.Equal(t, want[i], s.DueDate.Format(DateLayout))
		}
	})

	t.Run("RejectsInvalidArguments", func(t *testing.T) {
		_, err := NewSchedule(5000, 0, CurrencyVND, date(2022, 1, 1))
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		_, err = NewSchedule(5000, -2, CurrencyVND, date(2022, 1, 1))
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		_, err = NewSchedule(-1, 3, CurrencyVND, date(2022, 1, 1))
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	})
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		start string
		n     int
		want  string
	}{
		{"2022-01-20", 1, "2022-02-20"},
		{"2022-01-31", 1, "2022-02-28"},
		{"2024-01-31", 1, "2024-02-29"},
		{"2022-03-31", 1, "2022-04-30"},
		{"2022-11-30", 3, "2023-02-28"},
		{"2022-12-15", 1, "2023-01-15"},
		{"2022-08-31", 18, "2024-02-29"},
	}
	for _, tc := range cases {
		start, err := ParseDate(tc.start)
		require.NoError(t, err)
		assert.Equal(t, tc.want, AddMonths(start, tc.n).Format(DateLayout), "%s + %d", tc.start, tc.n)
	}
}

func TestAddMonths_DropsTimeOfDay(t *testing.T) {
	start := time.Date(2022, 1, 20, 23, 30, 0, 0, time.UTC)
	got := AddMonths(start, 1)
	assert.True(t, date(2022, 2, 20).Equal(got))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, StatusRepaid, StatusFor(0))
	assert.Equal(t, StatusDue, StatusFor(1))
	assert.Equal(t, StatusDue, StatusFor(5000))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2022-01-20")
	require.NoError(t, err)
	assert.True(t, date(2022, 1, 20).Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseDate("2022/01/20")
	assert.Error(t, err)
}

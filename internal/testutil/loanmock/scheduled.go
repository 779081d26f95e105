package loanmock

import (
	"context"

	domain "loan-engine/internal/domain/loan"
)

var _ domain.ScheduledRepaymentRepository = (*ScheduledRepo)(nil)

// ScheduledRepo is a function-backed mock of domain.ScheduledRepaymentRepository.
type ScheduledRepo struct {
	CreateBatchFn  func(ctx context.Context, items []domain.ScheduledRepayment) error
	ListByLoanIDFn func(ctx context.Context, loanNumericID uint64) ([]domain.ScheduledRepayment, error)
	SaveFn         func(ctx context.Context, s *domain.ScheduledRepayment) error
}

func (m *ScheduledRepo) CreateBatch(ctx context.Context, items []domain.ScheduledRepayment) error {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, items)
	}
	return nil
}
func (m *ScheduledRepo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]domain.ScheduledRepayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}
func (m *ScheduledRepo) Save(ctx context.Context, s *domain.ScheduledRepayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, s)
	}
	return nil
}

// ReceivedRepo is a function-backed mock of domain.ReceivedRepaymentRepository.
type ReceivedRepo struct {
	CreateFn       func(ctx context.Context, r *domain.ReceivedRepayment) error
	ListByLoanIDFn func(ctx context.Context, loanNumericID uint64) ([]domain.ReceivedRepayment, error)
}

var _ domain.ReceivedRepaymentRepository = (*ReceivedRepo)(nil)

func (m *ReceivedRepo) Create(ctx context.Context, r *domain.ReceivedRepayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}
func (m *ReceivedRepo) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]domain.ReceivedRepayment, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanNumericID)
	}
	return nil, context.Canceled
}

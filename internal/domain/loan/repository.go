package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate takes a row lock held until the surrounding tx ends.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	// Save persists outstanding amount and status, failing with ErrConcurrentUpdate
	// when the stored version no longer matches l.Version.
	Save(ctx context.Context, l *Loan) error
}

type ScheduledRepaymentRepository interface {
	CreateBatch(ctx context.Context, items []ScheduledRepayment) error
	// ListByLoanID returns every installment of the loan ordered by due date, then id.
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]ScheduledRepayment, error)
	Save(ctx context.Context, s *ScheduledRepayment) error
}

type ReceivedRepaymentRepository interface {
	Create(ctx context.Context, r *ReceivedRepayment) error
	ListByLoanID(ctx context.Context, loanNumericID uint64) ([]ReceivedRepayment, error)
}

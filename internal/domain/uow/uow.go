package uow

import (
	"context"

	"loan-engine/internal/domain/loan"
)

// Repos are bound to the transaction of the enclosing WithinTx/WithinLoanTx call.
type Repos struct {
	Loans     loan.Repository
	Scheduled loan.ScheduledRepaymentRepository
	Received  loan.ReceivedRepaymentRepository
}

type UnitOfWork interface {
	// plain tx: commits when fn returns nil, rolls back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in; the lock is held until fn returns
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}

package mysql

import (
	"context"

	loanDomain "loan-engine/internal/domain/loan"

	"gorm.io/gorm"
)

type ReceivedRepaymentRepository struct{ db *gorm.DB }

func NewReceivedRepaymentRepository(db *gorm.DB) *ReceivedRepaymentRepository {
	return &ReceivedRepaymentRepository{db: db}
}

func (r *ReceivedRepaymentRepository) Create(ctx context.Context, rr *loanDomain.ReceivedRepayment) error {
	return r.db.WithContext(ctx).Create(rr).Error
}

func (r *ReceivedRepaymentRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]loanDomain.ReceivedRepayment, error) {
	var out []loanDomain.ReceivedRepayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("received_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

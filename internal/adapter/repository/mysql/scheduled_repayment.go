package mysql

import (
	"context"

	loanDomain "loan-engine/internal/domain/loan"

	"gorm.io/gorm"
)

type ScheduledRepaymentRepository struct{ db *gorm.DB }

func NewScheduledRepaymentRepository(db *gorm.DB) *ScheduledRepaymentRepository {
	return &ScheduledRepaymentRepository{db: db}
}

// CreateBatch inserts all installments in one statement and back-fills their IDs.
func (r *ScheduledRepaymentRepository) CreateBatch(ctx context.Context, items []loanDomain.ScheduledRepayment) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *ScheduledRepaymentRepository) ListByLoanID(ctx context.Context, loanNumericID uint64) ([]loanDomain.ScheduledRepayment, error) {
	var out []loanDomain.ScheduledRepayment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("due_date ASC, id ASC").
		Find(&out)
	return out, res.Error
}

func (r *ScheduledRepaymentRepository) Save(ctx context.Context, s *loanDomain.ScheduledRepayment) error {
	return r.db.WithContext(ctx).
		Model(&loanDomain.ScheduledRepayment{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"outstanding_amount": s.OutstandingAmount,
			"status":             s.Status,
		}).Error
}

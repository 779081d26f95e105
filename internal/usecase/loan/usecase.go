package loan

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"loan-engine/internal/domain/loan"
	"loan-engine/internal/domain/uow"
	"loan-engine/pkg/id"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Usecase struct {
	uow       uow.UnitOfWork
	loans     loan.Repository
	scheduled loan.ScheduledRepaymentRepository
	log       logrus.FieldLogger
}

func NewUsecase(u uow.UnitOfWork, loans loan.Repository, scheduled loan.ScheduledRepaymentRepository, log logrus.FieldLogger) *Usecase {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Usecase{uow: u, loans: loans, scheduled: scheduled, log: log}
}

type CreateLoanInput struct {
	UserID       string `json:"user_id"`
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
	Terms        int    `json:"terms"`
	ProcessedAt  string `json:"processed_at"`
}

type RepayLoanInput struct {
	LoanID       string `json:"-"`
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
	ReceivedAt   string `json:"received_at"`
}

type ScheduledRepaymentDTO struct {
	Amount            int64  `json:"amount"`
	OutstandingAmount int64  `json:"outstanding_amount"`
	CurrencyCode      string `json:"currency_code"`
	DueDate           string `json:"due_date"`
	Status            string `json:"status"`
}

type LoanDTO struct {
	LoanID              string                  `json:"loan_id"`
	UserID              string                  `json:"user_id"`
	Amount              int64                   `json:"amount"`
	OutstandingAmount   int64                   `json:"outstanding_amount"`
	CurrencyCode        string                  `json:"currency_code"`
	Terms               int                     `json:"terms"`
	ProcessedAt         string                  `json:"processed_at"`
	Status              string                  `json:"status"`
	CreatedAt           time.Time               `json:"created_at"`
	ScheduledRepayments []ScheduledRepaymentDTO `json:"scheduled_repayments"`
}

func toDTO(l *loan.Loan, items []loan.ScheduledRepayment) *LoanDTO {
	out := &LoanDTO{
		LoanID:              l.LoanID,
		UserID:              l.UserID,
		Amount:              l.Amount,
		OutstandingAmount:   l.OutstandingAmount,
		CurrencyCode:        string(l.CurrencyCode),
		Terms:               l.Terms,
		ProcessedAt:         l.ProcessedAt.Format(loan.DateLayout),
		Status:              string(l.Status),
		CreatedAt:           l.CreatedAt,
		ScheduledRepayments: make([]ScheduledRepaymentDTO, 0, len(items)),
	}
	for _, s := range items {
		out.ScheduledRepayments = append(out.ScheduledRepayments, ScheduledRepaymentDTO{
			Amount:            s.Amount,
			OutstandingAmount: s.OutstandingAmount,
			CurrencyCode:      string(s.CurrencyCode),
			DueDate:           s.DueDate.Format(loan.DateLayout),
			Status:            string(s.Status),
		})
	}
	return out
}

func parseCurrency(code string) (loan.Currency, error) {
	c := loan.Currency(code)
	if !slices.Contains(loan.Currencies, c) {
		return "", fmt.Errorf("%w: unsupported currency %q", loan.ErrInvalidArgument, code)
	}
	return c, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := loan.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD, got %q", loan.ErrInvalidArgument, field, value)
	}
	return t, nil
}

// translate maps storage-level misses onto the domain sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", loan.ErrNotFound, err)
	}
	return err
}

// CreateLoan issues a loan and its full installment schedule in one transaction.
func (u *Usecase) CreateLoan(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", loan.ErrInvalidArgument)
	}
	currency, err := parseCurrency(in.CurrencyCode)
	if err != nil {
		return nil, err
	}
	processedAt, err := parseDate("processed_at", in.ProcessedAt)
	if err != nil {
		return nil, err
	}
	items, err := loan.NewSchedule(in.Amount, in.Terms, currency, processedAt)
	if err != nil {
		return nil, err
	}

	l := &loan.Loan{
		LoanID:            id.NewID32(),
		UserID:            in.UserID,
		Amount:            in.Amount,
		OutstandingAmount: in.Amount,
		CurrencyCode:      currency,
		Terms:             in.Terms,
		ProcessedAt:       processedAt,
		Status:            loan.StatusFor(in.Amount),
		Version:           1,
	}

	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		for i := range items {
			items[i].LoanID = l.ID
		}
		return r.Scheduled.CreateBatch(ctx, items)
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"loan_id":  l.LoanID,
		"user_id":  l.UserID,
		"amount":   l.Amount,
		"currency": l.CurrencyCode,
		"terms":    l.Terms,
	}).Info("loan created")

	return toDTO(l, items), nil
}

// RepayLoan records a payment and applies it to the open installments, oldest due first.
// Every call is a new payment event.
func (u *Usecase) RepayLoan(ctx context.Context, in RepayLoanInput) (*LoanDTO, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive, got %d", loan.ErrInvalidArgument, in.Amount)
	}
	currency, err := parseCurrency(in.CurrencyCode)
	if err != nil {
		return nil, err
	}
	receivedAt, err := parseDate("received_at", in.ReceivedAt)
	if err != nil {
		return nil, err
	}

	var (
		out   *loan.Loan
		items []loan.ScheduledRepayment
		alloc loan.Allocation
	)
	err = u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		if currency != l.CurrencyCode {
			u.log.WithFields(logrus.Fields{
				"loan_id":          l.LoanID,
				"loan_currency":    l.CurrencyCode,
				"payment_currency": currency,
			}).Warn("repayment currency differs from loan currency")
		}

		if err := r.Received.Create(ctx, &loan.ReceivedRepayment{
			LoanID:       l.ID,
			Amount:       in.Amount,
			CurrencyCode: currency,
			ReceivedAt:   receivedAt,
		}); err != nil {
			return err
		}

		current, err := r.Scheduled.ListByLoanID(ctx, l.ID)
		if err != nil {
			return err
		}
		alloc, err = loan.Allocate(current, in.Amount)
		if err != nil {
			return err
		}
		for i := range alloc.Changed {
			if err := r.Scheduled.Save(ctx, &alloc.Changed[i]); err != nil {
				return err
			}
		}

		l.OutstandingAmount = alloc.Outstanding()
		l.Status = loan.StatusFor(l.OutstandingAmount)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out, items = l, alloc.Installments
		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	entry := u.log.WithFields(logrus.Fields{
		"loan_id":     out.LoanID,
		"amount":      in.Amount,
		"applied":     alloc.Applied,
		"outstanding": out.OutstandingAmount,
		"status":      out.Status,
	})
	if alloc.Unapplied > 0 {
		entry = entry.WithField("unapplied", alloc.Unapplied)
	}
	entry.Info("repayment applied")

	return toDTO(out, items), nil
}

// GetLoan returns the loan with its installments ordered by due date.
func (u *Usecase) GetLoan(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, translate(err)
	}
	items, err := u.scheduled.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	return toDTO(l, items), nil
}

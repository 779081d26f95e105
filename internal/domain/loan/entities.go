package loan

import (
	"errors"
	"time"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("loan not found")
	ErrConcurrentUpdate = errors.New("loan was modified concurrently")
)

// DateLayout is the wire and storage format of every calendar date in this package.
const DateLayout = "2006-01-02"

type Currency string

const (
	CurrencySGD Currency = "SGD"
	CurrencyTHB Currency = "THB"
	CurrencyVND Currency = "VND"
)

// Currencies lists the codes a loan may be issued in.
var Currencies = []Currency{CurrencySGD, CurrencyTHB, CurrencyVND}

type Status string

const (
	StatusDue    Status = "DUE"
	StatusRepaid Status = "REPAID"
)

type RepaymentStatus string

const (
	RepaymentDue     RepaymentStatus = "DUE"
	RepaymentPartial RepaymentStatus = "PARTIAL"
	RepaymentRepaid  RepaymentStatus = "REPAID"
)

// Open reports whether the installment still takes part in allocation.
func (s RepaymentStatus) Open() bool { return s == RepaymentDue || s == RepaymentPartial }

// Table: loans
type Loan struct {
	ID                uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID            string    `gorm:"column:loan_id;type:char(32);not null;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	UserID            string    `gorm:"column:user_id;type:char(32);not null;index:idx_loans_user" json:"user_id"`
	Amount            int64     `gorm:"column:amount;not null" json:"amount"`
	OutstandingAmount int64     `gorm:"column:outstanding_amount;not null" json:"outstanding_amount"`
	CurrencyCode      Currency  `gorm:"column:currency_code;type:enum('SGD','THB','VND');not null" json:"currency_code"`
	Terms             int       `gorm:"column:terms;not null" json:"terms"`
	ProcessedAt       time.Time `gorm:"column:processed_at;type:date;not null" json:"processed_at"`
	Status            Status    `gorm:"column:status;type:enum('DUE','REPAID');default:'DUE'" json:"status"`
	Version           int64     `gorm:"column:version;not null;default:1" json:"-"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	ScheduledRepayments []ScheduledRepayment `gorm:"foreignKey:LoanID;references:ID" json:"scheduled_repayments"`
}

func (Loan) TableName() string { return "loans" }

// Table: scheduled_repayments
type ScheduledRepayment struct {
	ID                uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID            uint64          `gorm:"column:loan_id;not null;index:idx_scheduled_loan_due,priority:1" json:"-"`
	Amount            int64           `gorm:"column:amount;not null" json:"amount"`
	OutstandingAmount int64           `gorm:"column:outstanding_amount;not null" json:"outstanding_amount"`
	CurrencyCode      Currency        `gorm:"column:currency_code;type:enum('SGD','THB','VND');not null" json:"currency_code"`
	DueDate           time.Time       `gorm:"column:due_date;type:date;not null;index:idx_scheduled_loan_due,priority:2" json:"due_date"`
	Status            RepaymentStatus `gorm:"column:status;type:enum('DUE','PARTIAL','REPAID');default:'DUE'" json:"status"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (ScheduledRepayment) TableName() string { return "scheduled_repayments" }

// Table: received_repayments. Rows are append-only.
type ReceivedRepayment struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	LoanID       uint64    `gorm:"column:loan_id;not null;index" json:"-"`
	Amount       int64     `gorm:"column:amount;not null" json:"amount"`
	CurrencyCode Currency  `gorm:"column:currency_code;type:enum('SGD','THB','VND');not null" json:"currency_code"`
	ReceivedAt   time.Time `gorm:"column:received_at;type:date;not null" json:"received_at"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (ReceivedRepayment) TableName() string { return "received_repayments" }

// StatusFor derives the loan status from its outstanding amount.
func StatusFor(outstanding int64) Status {
	if outstanding == 0 {
		return StatusRepaid
	}
	return StatusDue
}

// TotalOutstanding sums the outstanding amount of every installment, settled or not.
func TotalOutstanding(items []ScheduledRepayment) int64 {
	var sum int64
	for _, s := range items {
		sum += s.OutstandingAmount
	}
	return sum
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

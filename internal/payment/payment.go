package payment

import (
	"time"

	"github.com/agenticsoft/gescom/internal"
)

// Payment methods.
const (
	MethodCash     = "cash"
	MethodCheque   = "cheque"
	MethodTransfer = "transfer"
)

func ValidMethod(method string) bool {
	switch method {
	case MethodCash, MethodCheque, MethodTransfer:
		return true
	}
	return false
}

// Cash register movement directions.
const (
	MovementIn  = "in"
	MovementOut = "out"
)

// Payment records money received or paid against a document. DocumentID is
// nil for loose receipts.
type Payment struct {
	ID         int64   `gorm:"column:id;primaryKey" json:"id"`
	DocumentID *int64  `gorm:"column:document_id" json:"document_id,omitempty"`
	Method     string  `gorm:"column:method" json:"method"`
	Amount     float64 `gorm:"column:amount" json:"amount"`
	PaidAt     string  `gorm:"column:paid_at" json:"paid_at"`
}

func (Payment) TableName() string {
	return "payments"
}

type CashMovement struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Movement  string    `gorm:"column:movement" json:"movement"`
	Amount    float64   `gorm:"column:amount" json:"amount"`
	Label     string    `gorm:"column:label" json:"label"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CashMovement) TableName() string {
	return "cash_register"
}

// CashSummary aggregates the register: inflows, outflows and balance.
type CashSummary struct {
	TotalIn  float64 `db:"total_in" json:"total_in"`
	TotalOut float64 `db:"total_out" json:"total_out"`
	Balance  float64 `db:"balance" json:"balance"`
}

type PaymentDTO struct {
	DocumentID *int64  `json:"document_id,omitempty"`
	Method     string  `json:"method"`
	Amount     float64 `json:"amount"`
	PaidAt     string  `json:"paid_at"`
}

func (d *PaymentDTO) Validate() error {
	if d.Method == "" {
		d.Method = MethodCash
	}
	if !ValidMethod(d.Method) {
		return internal.NewValidationError("method must be cash, cheque or transfer", internal.ErrCodeValidationFailed)
	}
	if d.Amount <= 0 {
		return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if d.PaidAt == "" {
		d.PaidAt = time.Now().Format("2006-01-02")
	}
	return nil
}

type CashMovementDTO struct {
	Movement string  `json:"movement"`
	Amount   float64 `json:"amount"`
	Label    string  `json:"label"`
}

func (d CashMovementDTO) Validate() error {
	if d.Movement != MovementIn && d.Movement != MovementOut {
		return internal.NewValidationError("movement must be in or out", internal.ErrCodeValidationFailed)
	}
	if d.Amount <= 0 {
		return internal.NewValidationError("amount must be positive", internal.ErrCodeInvalidAmount)
	}
	return nil
}

type RepositoryAPI interface {
	CreatePayment(p *Payment) error
	ListPayments(limit, offset int) ([]*Payment, error)
	CreateMovement(m *CashMovement) error
	ListMovements(limit, offset int) ([]*CashMovement, error)
}

// SummaryAPI is the read model over the cash register.
type SummaryAPI interface {
	CashSummary() (CashSummary, error)
}

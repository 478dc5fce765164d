package sqlite

import (
	"github.com/agenticsoft/gescom/internal/payment"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

// PaymentRepository implements payment.RepositoryAPI using GORM.
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) payment.RepositoryAPI {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) CreatePayment(p *payment.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) ListPayments(limit, offset int) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, err
}

func (r *PaymentRepository) CreateMovement(m *payment.CashMovement) error {
	return r.db.Create(m).Error
}

func (r *PaymentRepository) ListMovements(limit, offset int) ([]*payment.CashMovement, error) {
	var movements []*payment.CashMovement
	err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&movements).Error
	return movements, err
}

// CashSummaryReader is the sqlx-based read model over the cash register.
type CashSummaryReader struct {
	db *sqlx.DB
}

func NewCashSummaryReader(db *sqlx.DB) payment.SummaryAPI {
	return &CashSummaryReader{db: db}
}

func (r *CashSummaryReader) CashSummary() (payment.CashSummary, error) {
	var summary payment.CashSummary
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN movement = 'in' THEN amount ELSE 0 END), 0) AS total_in,
			COALESCE(SUM(CASE WHEN movement = 'out' THEN amount ELSE 0 END), 0) AS total_out,
			COALESCE(SUM(CASE WHEN movement = 'in' THEN amount ELSE -amount END), 0) AS balance
		FROM cash_register`
	err := r.db.Get(&summary, query)
	return summary, err
}

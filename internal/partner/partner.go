package partner

import (
	"time"

	"github.com/agenticsoft/gescom/internal"
)

// Partner kinds.
const (
	KindCustomer = "customer"
	KindSupplier = "supplier"
)

func ValidKind(kind string) bool {
	return kind == KindCustomer || kind == KindSupplier
}

// Partner is a customer or supplier. Names are stored in both French and
// Arabic.
type Partner struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Kind      string    `gorm:"column:kind" json:"kind"`
	NameFR    string    `gorm:"column:name_fr" json:"name_fr"`
	NameAR    string    `gorm:"column:name_ar" json:"name_ar"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

func (Partner) TableName() string {
	return "partners"
}

type PartnerDTO struct {
	Kind   string `json:"kind"`
	NameFR string `json:"name_fr"`
	NameAR string `json:"name_ar"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

func (d PartnerDTO) Validate() error {
	if !ValidKind(d.Kind) {
		return internal.NewValidationError("kind must be customer or supplier", internal.ErrCodeValidationFailed)
	}
	if d.NameFR == "" {
		return internal.NewValidationError("name_fr is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type RepositoryAPI interface {
	Create(p *Partner) error
	GetByID(id int64) (*Partner, error)
	Search(kind, query string, limit, offset int) ([]*Partner, error)
	Update(p *Partner) error
	Delete(id int64) error
}

package product

import (
	"time"

	"github.com/agenticsoft/gescom/internal"
)

type Product struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	SKU       string    `gorm:"column:sku;uniqueIndex" json:"sku"`
	NameFR    string    `gorm:"column:name_fr" json:"name_fr"`
	NameAR    string    `gorm:"column:name_ar" json:"name_ar"`
	Unit      string    `gorm:"column:unit" json:"unit"`
	PriceHT   float64   `gorm:"column:price_ht" json:"price_ht"`
	CreatedAt time.Time `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// StockLevel is the current quantity on hand for one product.
type StockLevel struct {
	ProductID int64   `gorm:"column:product_id;primaryKey" json:"product_id"`
	Qty       float64 `gorm:"column:qty" json:"qty"`
}

func (StockLevel) TableName() string {
	return "stock"
}

// StockRow is the stock listing read model: product identity joined with
// its quantity, zero when no stock row exists yet.
type StockRow struct {
	ProductID int64   `json:"product_id"`
	SKU       string  `json:"sku"`
	NameFR    string  `json:"name_fr"`
	Qty       float64 `json:"qty"`
}

type ProductDTO struct {
	SKU     string  `json:"sku"`
	NameFR  string  `json:"name_fr"`
	NameAR  string  `json:"name_ar"`
	Unit    string  `json:"unit"`
	PriceHT float64 `json:"price_ht"`
}

func (d *ProductDTO) Validate() error {
	if d.SKU == "" {
		return internal.NewValidationError("sku is required", internal.ErrCodeValidationFailed)
	}
	if d.NameFR == "" {
		return internal.NewValidationError("name_fr is required", internal.ErrCodeValidationFailed)
	}
	if d.PriceHT < 0 {
		return internal.NewValidationError("price_ht must not be negative", internal.ErrCodeInvalidAmount)
	}
	if d.Unit == "" {
		d.Unit = "u"
	}
	return nil
}

type AdjustStockDTO struct {
	Delta float64 `json:"delta"`
}

type RepositoryAPI interface {
	Create(p *Product) error
	GetByID(id int64) (*Product, error)
	Search(query string, limit, offset int) ([]*Product, error)
	Update(p *Product) error
	Delete(id int64) error

	StockLevels(limit, offset int) ([]StockRow, error)
	AdjustStock(productID int64, delta float64) (float64, error)
}

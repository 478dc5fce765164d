package sqlite

import (
	"errors"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/product"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository implements product.RepositoryAPI using GORM.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) product.RepositoryAPI {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *product.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByID(id int64) (*product.Product, error) {
	var p product.Product
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Search(query string, limit, offset int) ([]*product.Product, error) {
	var products []*product.Product
	q := r.db.Order("id DESC").Limit(limit).Offset(offset)
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("sku LIKE ? OR name_fr LIKE ? OR name_ar LIKE ?", like, like, like)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *ProductRepository) Update(p *product.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&product.Product{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrProductNotFound
	}
	return nil
}

// StockLevels lists products with their quantity on hand, zero when no
// stock row exists yet.
func (r *ProductRepository) StockLevels(limit, offset int) ([]product.StockRow, error) {
	var rows []product.StockRow
	err := r.db.Table("products p").
		Select("p.id AS product_id, p.sku AS sku, p.name_fr AS name_fr, COALESCE(s.qty, 0) AS qty").
		Joins("LEFT JOIN stock s ON s.product_id = p.id").
		Order("p.id").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	return rows, err
}

// AdjustStock upserts the stock row and applies the delta atomically.
func (r *ProductRepository) AdjustStock(productID int64, delta float64) (float64, error) {
	var qty float64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"qty": gorm.Expr("stock.qty + ?", delta)}),
		}).Create(&product.StockLevel{ProductID: productID, Qty: delta}).Error; err != nil {
			return err
		}

		var level product.StockLevel
		if err := tx.Where("product_id = ?", productID).First(&level).Error; err != nil {
			return err
		}
		qty = level.Qty
		return nil
	})
	return qty, err
}

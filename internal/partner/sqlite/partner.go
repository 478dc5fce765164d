package sqlite

import (
	"errors"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/partner"
	"gorm.io/gorm"
)

// PartnerRepository implements partner.RepositoryAPI using GORM.
type PartnerRepository struct {
	db *gorm.DB
}

func NewPartnerRepository(db *gorm.DB) partner.RepositoryAPI {
	return &PartnerRepository{db: db}
}

func (r *PartnerRepository) Create(p *partner.Partner) error {
	return r.db.Create(p).Error
}

func (r *PartnerRepository) GetByID(id int64) (*partner.Partner, error) {
	var p partner.Partner
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrPartnerNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Search filters by kind and matches the query against both names, phone
// and email.
func (r *PartnerRepository) Search(kind, query string, limit, offset int) ([]*partner.Partner, error) {
	var partners []*partner.Partner
	q := r.db.Order("id DESC").Limit(limit).Offset(offset)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where("name_fr LIKE ? OR name_ar LIKE ? OR phone LIKE ? OR email LIKE ?", like, like, like, like)
	}
	err := q.Find(&partners).Error
	return partners, err
}

func (r *PartnerRepository) Update(p *partner.Partner) error {
	return r.db.Save(p).Error
}

func (r *PartnerRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&partner.Partner{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrPartnerNotFound
	}
	return nil
}

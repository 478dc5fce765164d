package sqlite

import (
	"errors"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/document"
	"gorm.io/gorm"
)

// DocumentRepository implements document.RepositoryAPI using GORM.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) document.RepositoryAPI {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Create(doc *document.Document) error {
	return r.db.Create(doc).Error
}

// LastNumber fetches the number of the most recently created document of
// the kind, by internal id descending.
func (r *DocumentRepository) LastNumber(kind document.Kind) (string, bool, error) {
	var doc document.Document
	err := r.db.Select("number").
		Where("kind = ?", kind).
		Order("id DESC").
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return doc.Number, true, nil
}

func (r *DocumentRepository) GetByID(id int64) (*document.Document, error) {
	var doc document.Document
	err := r.db.Preload("Lines").Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *DocumentRepository) List(kind document.Kind, limit, offset int) ([]*document.Document, error) {
	var docs []*document.Document
	q := r.db.Order("id DESC").Limit(limit).Offset(offset)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) UpdateStatus(id int64, status string) error {
	res := r.db.Model(&document.Document{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrDocumentNotFound
	}
	return nil
}

// Delete removes the document; its lines go with it through the foreign
// key cascade.
func (r *DocumentRepository) Delete(id int64) error {
	res := r.db.Where("id = ?", id).Delete(&document.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return internal.ErrDocumentNotFound
	}
	return nil
}

// AddLine inserts the line and recomputes the owning document's totals in
// one transaction.
func (r *DocumentRepository) AddLine(line *document.DocumentLine, vatRate float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(line).Error; err != nil {
			return err
		}
		return recomputeTotals(tx, line.DocumentID, vatRate)
	})
}

func (r *DocumentRepository) UpdateLine(line *document.DocumentLine, vatRate float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&document.DocumentLine{}).
			Where("id = ? AND document_id = ?", line.ID, line.DocumentID).
			Updates(map[string]interface{}{
				"description": line.Description,
				"qty":         line.Qty,
				"unit_price":  line.UnitPrice,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrLineNotFound
		}
		return recomputeTotals(tx, line.DocumentID, vatRate)
	})
}

func (r *DocumentRepository) DeleteLine(documentID, lineID int64, vatRate float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND document_id = ?", lineID, documentID).
			Delete(&document.DocumentLine{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return internal.ErrLineNotFound
		}
		return recomputeTotals(tx, documentID, vatRate)
	})
}

func (r *DocumentRepository) RecomputeTotals(documentID int64, vatRate float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return recomputeTotals(tx, documentID, vatRate)
	})
}

// recomputeTotals derives the totals from the document's current lines and
// writes them in the same transaction as the triggering mutation.
func recomputeTotals(tx *gorm.DB, documentID int64, vatRate float64) error {
	var lines []document.DocumentLine
	if err := tx.Where("document_id = ?", documentID).Find(&lines).Error; err != nil {
		return err
	}

	totals := document.ComputeTotals(lines, vatRate)

	return tx.Model(&document.Document{}).
		Where("id = ?", documentID).
		Updates(map[string]interface{}{
			"total_ht":  totals.HT,
			"total_tva": totals.TVA,
			"total_ttc": totals.TTC,
		}).Error
}

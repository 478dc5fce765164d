package document

import (
	"time"

	"github.com/agenticsoft/gescom/internal"
)

type CreateDocumentDTO struct {
	Kind      Kind   `json:"kind"`
	Date      string `json:"date"`
	PartnerID *int64 `json:"partner_id,omitempty"`
}

func (d *CreateDocumentDTO) Validate() error {
	if !d.Kind.Valid() {
		return internal.NewValidationError("kind must be one of invoice, quote, delivery, purchase", internal.ErrCodeInvalidKind)
	}
	if d.Date == "" {
		d.Date = time.Now().Format("2006-01-02")
	}
	return nil
}

type LineDTO struct {
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
}

func (d LineDTO) Validate() error {
	if d.Qty < 0 {
		return internal.NewValidationError("qty must not be negative", internal.ErrCodeInvalidAmount)
	}
	if d.UnitPrice < 0 {
		return internal.NewValidationError("unit_price must not be negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d UpdateStatusDTO) Validate() error {
	if !ValidStatus(d.Status) {
		return internal.NewValidationError("status must be one of draft, confirmed, cancelled", internal.ErrCodeInvalidStatus)
	}
	return nil
}

package document

import (
	"time"
)

// Kind determines a document's numbering prefix and business semantics.
type Kind string

const (
	KindInvoice  Kind = "invoice"
	KindQuote    Kind = "quote"
	KindDelivery Kind = "delivery"
	KindPurchase Kind = "purchase"
)

var kindPrefixes = map[Kind]string{
	KindInvoice:  "INV-",
	KindQuote:    "QTE-",
	KindDelivery: "BL-",
	KindPurchase: "PUR-",
}

func (k Kind) Valid() bool {
	_, ok := kindPrefixes[k]
	return ok
}

func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// Document statuses.
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Document struct {
	ID        int64          `gorm:"column:id;primaryKey" json:"id"`
	Kind      Kind           `gorm:"column:kind" json:"kind"`
	Number    string         `gorm:"column:number" json:"number"`
	Date      string         `gorm:"column:date" json:"date"`
	PartnerID *int64         `gorm:"column:partner_id" json:"partner_id,omitempty"`
	Status    string         `gorm:"column:status" json:"status"`
	TotalHT   float64        `gorm:"column:total_ht" json:"total_ht"`
	TotalTVA  float64        `gorm:"column:total_tva" json:"total_tva"`
	TotalTTC  float64        `gorm:"column:total_ttc" json:"total_ttc"`
	Lines     []DocumentLine `gorm:"foreignKey:DocumentID" json:"lines"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"-"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}

// DocumentLine is owned by exactly one document; deleting the document
// cascades to its lines.
type DocumentLine struct {
	ID          int64   `gorm:"column:id;primaryKey" json:"id"`
	DocumentID  int64   `gorm:"column:document_id" json:"document_id"`
	Description string  `gorm:"column:description" json:"description"`
	Qty         float64 `gorm:"column:qty" json:"qty"`
	UnitPrice   float64 `gorm:"column:unit_price" json:"unit_price"`
}

func (DocumentLine) TableName() string {
	return "document_lines"
}

// VATProvider supplies the VAT rate at computation time. The settings
// service satisfies this; no call site carries a literal rate.
type VATProvider interface {
	VATRate() float64
}

type RepositoryAPI interface {
	Create(doc *Document) error
	// LastNumber returns the number of the most recently created document
	// of the kind, by id descending. found is false when none exists.
	LastNumber(kind Kind) (number string, found bool, err error)
	GetByID(id int64) (*Document, error)
	List(kind Kind, limit, offset int) ([]*Document, error)
	UpdateStatus(id int64, status string) error
	Delete(id int64) error

	// Line mutations run in a single transaction together with the totals
	// recomputation, so readers never observe changed lines with stale
	// totals.
	AddLine(line *DocumentLine, vatRate float64) error
	UpdateLine(line *DocumentLine, vatRate float64) error
	DeleteLine(documentID, lineID int64, vatRate float64) error
	RecomputeTotals(documentID int64, vatRate float64) error
}

type ServiceAPI interface {
	Create(dto CreateDocumentDTO) (*Document, error)
	NextNumber(kind Kind) (string, error)
	GetByID(id int64) (*Document, error)
	List(kind Kind, limit, offset int) ([]*Document, error)
	UpdateStatus(id int64, status string) error
	Delete(id int64) error
	AddLine(documentID int64, dto LineDTO) (*Document, error)
	UpdateLine(documentID, lineID int64, dto LineDTO) (*Document, error)
	DeleteLine(documentID, lineID int64) (*Document, error)
}

package settings

// Persisted application settings. Values are plain strings; callers do
// their own coercion (see VATRate).

const (
	KeyVATRate         = "vat_rate"
	KeyCurrency        = "currency"
	KeyCompanyLogoPath = "company_logo_path"
)

// DefaultVATPercent is the VAT percentage used when the stored value is
// absent or unparsable.
const DefaultVATPercent = 20.0

// Defaults returns the settings seeded on first run. Existing values are
// never overwritten.
func Defaults() map[string]string {
	return map[string]string{
		KeyVATRate:         "20.0",
		KeyCurrency:        "EUR",
		KeyCompanyLogoPath: "",
	}
}

type Setting struct {
	Key   string `gorm:"column:key;primaryKey" json:"key"`
	Value string `gorm:"column:value" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}

type RepositoryAPI interface {
	InsertIfAbsent(key, value string) error
	Get(key string) (value string, found bool, err error)
	Upsert(key, value string) error
	All() ([]Setting, error)
}

type ServiceAPI interface {
	EnsureDefaults() error
	Get(key, fallback string) (string, error)
	Set(key, value string) error
	All() ([]Setting, error)
	VATRate() float64
}

package settings_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/agenticsoft/gescom/internal/settings"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSettingsService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Settings Service Suite")
}

// Mock repository for testing
type mockSettingsRepository struct {
	values      map[string]string
	returnError error
}

func newMockSettingsRepository() *mockSettingsRepository {
	return &mockSettingsRepository{values: map[string]string{}}
}

func (m *mockSettingsRepository) InsertIfAbsent(key, value string) error {
	if m.returnError != nil {
		return m.returnError
	}
	if _, exists := m.values[key]; !exists {
		m.values[key] = value
	}
	return nil
}

func (m *mockSettingsRepository) Get(key string) (string, bool, error) {
	if m.returnError != nil {
		return "", false, m.returnError
	}
	value, found := m.values[key]
	return value, found, nil
}

func (m *mockSettingsRepository) Upsert(key, value string) error {
	if m.returnError != nil {
		return m.returnError
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsRepository) All() ([]settings.Setting, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	all := make([]settings.Setting, 0, len(m.values))
	for k, v := range m.values {
		all = append(all, settings.Setting{Key: k, Value: v})
	}
	return all, nil
}

var _ = Describe("Settings Service", func() {
	var (
		service  *settings.Service
		mockRepo *mockSettingsRepository
	)

	BeforeEach(func() {
		mockRepo = newMockSettingsRepository()
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = settings.NewService(mockRepo, lg)
	})

	Describe("EnsureDefaults", func() {
		It("should seed every default key", func() {
			err := service.EnsureDefaults()
			Expect(err).NotTo(HaveOccurred())

			for key, want := range settings.Defaults() {
				Expect(mockRepo.values).To(HaveKeyWithValue(key, want))
			}
		})

		It("should keep values the user already changed", func() {
			Expect(service.Set(settings.KeyVATRate, "19.0")).To(Succeed())

			Expect(service.EnsureDefaults()).To(Succeed())
			Expect(service.EnsureDefaults()).To(Succeed())

			value, err := service.Get(settings.KeyVATRate, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("19.0"))
		})

		It("should propagate repository failures", func() {
			mockRepo.returnError = errors.New("disk full")

			err := service.EnsureDefaults()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Get", func() {
		It("should return the fallback for an absent key", func() {
			value, err := service.Get("nope", "fallback")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("fallback"))
		})

		It("should prefer the stored value over the fallback", func() {
			Expect(service.Set(settings.KeyCurrency, "MAD")).To(Succeed())

			value, err := service.Get(settings.KeyCurrency, "EUR")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("MAD"))
		})
	})

	Describe("VATRate", func() {
		It("should convert the stored percentage to a fraction", func() {
			Expect(service.Set(settings.KeyVATRate, "20.0")).To(Succeed())
			Expect(service.VATRate()).To(BeNumerically("~", 0.20, 1e-9))
		})

		It("should handle non-default rates", func() {
			Expect(service.Set(settings.KeyVATRate, "7.5")).To(Succeed())
			Expect(service.VATRate()).To(BeNumerically("~", 0.075, 1e-9))
		})

		It("should fall back to the default when the key is absent", func() {
			Expect(service.VATRate()).To(BeNumerically("~", settings.DefaultVATPercent/100, 1e-9))
		})

		It("should fall back to the default when the value does not parse", func() {
			Expect(service.Set(settings.KeyVATRate, "twenty")).To(Succeed())
			Expect(service.VATRate()).To(BeNumerically("~", settings.DefaultVATPercent/100, 1e-9))
		})

		It("should fall back to the default when the repository fails", func() {
			mockRepo.returnError = errors.New("db gone")
			Expect(service.VATRate()).To(BeNumerically("~", settings.DefaultVATPercent/100, 1e-9))
		})
	})
})

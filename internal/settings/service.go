package settings

import (
	"log/slog"
	"strconv"
)

// Service wraps the settings repository with first-run defaults and the
// numeric coercions the rest of the application needs.
type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// EnsureDefaults inserts each default key only when absent. Values already
// present are left untouched, so re-running is harmless.
func (s *Service) EnsureDefaults() error {
	for key, value := range Defaults() {
		if err := s.repo.InsertIfAbsent(key, value); err != nil {
			s.logger.Error("failed to seed default setting", "key", key, "error", err)
			return err
		}
	}
	return nil
}

// Get returns the stored value, or fallback when the key is absent.
func (s *Service) Get(key, fallback string) (string, error) {
	value, found, err := s.repo.Get(key)
	if err != nil {
		s.logger.Error("failed to read setting", "key", key, "error", err)
		return "", err
	}
	if !found {
		return fallback, nil
	}
	return value, nil
}

// Set upserts the value for key.
func (s *Service) Set(key, value string) error {
	if err := s.repo.Upsert(key, value); err != nil {
		s.logger.Error("failed to write setting", "key", key, "error", err)
		return err
	}
	return nil
}

func (s *Service) All() ([]Setting, error) {
	return s.repo.All()
}

// VATRate returns the configured VAT rate as a fraction (0.20 for "20.0").
// Unreadable or unparsable values fall back to the default percentage.
func (s *Service) VATRate() float64 {
	raw, err := s.Get(KeyVATRate, "")
	if err != nil || raw == "" {
		return DefaultVATPercent / 100
	}
	percent, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.logger.Warn("unparsable vat_rate setting, using default", "value", raw)
		return DefaultVATPercent / 100
	}
	return percent / 100
}

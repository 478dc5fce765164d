package product

import (
	"log/slog"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(dto ProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Product{
		SKU:     dto.SKU,
		NameFR:  dto.NameFR,
		NameAR:  dto.NameAR,
		Unit:    dto.Unit,
		PriceHT: dto.PriceHT,
	}
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create product", "sku", dto.SKU, "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(id int64) (*Product, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Search(query string, limit, offset int) ([]*Product, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Search(query, limit, offset)
}

func (s *Service) Update(id int64, dto ProductDTO) (*Product, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.SKU = dto.SKU
	p.NameFR = dto.NameFR
	p.NameAR = dto.NameAR
	p.Unit = dto.Unit
	p.PriceHT = dto.PriceHT
	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update product", "id", id, "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *Service) StockLevels(limit, offset int) ([]StockRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.StockLevels(limit, offset)
}

// AdjustStock applies a signed delta to a product's quantity on hand and
// returns the new level.
func (s *Service) AdjustStock(productID int64, delta float64) (float64, error) {
	if _, err := s.repo.GetByID(productID); err != nil {
		return 0, err
	}

	qty, err := s.repo.AdjustStock(productID, delta)
	if err != nil {
		s.logger.Error("failed to adjust stock", "product_id", productID, "delta", delta, "error", err)
		return 0, err
	}

	s.logger.Info("stock adjusted", "product_id", productID, "delta", delta, "qty", qty)
	return qty, nil
}

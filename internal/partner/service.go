package partner

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

func (s *Service) Create(dto PartnerDTO) (*Partner, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Partner{
		Kind:   dto.Kind,
		NameFR: dto.NameFR,
		NameAR: dto.NameAR,
		Phone:  dto.Phone,
		Email:  dto.Email,
	}
	if err := s.repo.Create(p); err != nil {
		s.logger.Error("failed to create partner", "kind", dto.Kind, "error", err)
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(id int64) (*Partner, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Search(kind, query string, limit, offset int) ([]*Partner, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Search(kind, query, limit, offset)
}

func (s *Service) Update(id int64, dto PartnerDTO) (*Partner, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	p.Kind = dto.Kind
	p.NameFR = dto.NameFR
	p.NameAR = dto.NameAR
	p.Phone = dto.Phone
	p.Email = dto.Email
	if err := s.repo.Update(p); err != nil {
		s.logger.Error("failed to update partner", "id", id, "error", err)
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

package payment

import (
	"log/slog"
	"math"
)

type Service struct {
	repo    RepositoryAPI
	summary SummaryAPI
	logger  *slog.Logger
}

func NewService(repo RepositoryAPI, summary SummaryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		summary: summary,
		logger:  logger,
	}
}

func (s *Service) RecordPayment(dto PaymentDTO) (*Payment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	p := &Payment{
		DocumentID: dto.DocumentID,
		Method:     dto.Method,
		Amount:     dto.Amount,
		PaidAt:     dto.PaidAt,
	}
	if err := s.repo.CreatePayment(p); err != nil {
		s.logger.Error("failed to record payment", "error", err)
		return nil, err
	}

	s.logger.Info("payment recorded", "id", p.ID, "method", p.Method, "amount", p.Amount)
	return p, nil
}

func (s *Service) ListPayments(limit, offset int) ([]*Payment, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListPayments(limit, offset)
}

// RecordMovement stores a cash register movement; amounts are stored as
// absolute values, the direction lives in the movement column.
func (s *Service) RecordMovement(dto CashMovementDTO) (*CashMovement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	m := &CashMovement{
		Movement: dto.Movement,
		Amount:   math.Abs(dto.Amount),
		Label:    dto.Label,
	}
	if err := s.repo.CreateMovement(m); err != nil {
		s.logger.Error("failed to record cash movement", "error", err)
		return nil, err
	}

	s.logger.Info("cash movement recorded", "id", m.ID, "movement", m.Movement, "amount", m.Amount)
	return m, nil
}

func (s *Service) ListMovements(limit, offset int) ([]*CashMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListMovements(limit, offset)
}

func (s *Service) CashSummary() (CashSummary, error) {
	return s.summary.CashSummary()
}

package document

import (
	"log/slog"
)

// Service owns document numbering, totals recomputation and the document
// lifecycle.
type Service struct {
	repo   RepositoryAPI
	vat    VATProvider
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, vat VATProvider, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		vat:    vat,
		logger: logger,
	}
}

// NextNumber allocates the next number for the kind: numeric suffix of the
// most recently created document plus one, or 1 when none exists or the
// previous suffix does not parse.
func (s *Service) NextNumber(kind Kind) (string, error) {
	last, found, err := s.repo.LastNumber(kind)
	if err != nil {
		s.logger.Error("failed to fetch last document number", "kind", kind, "error", err)
		return "", err
	}

	suffix := 1
	if found {
		suffix = NextSuffix(last)
		if suffix == 1 && last != "" {
			s.logger.Warn("previous document number has no numeric suffix, restarting sequence",
				"kind", kind,
				"previous", last)
		}
	}
	return FormatNumber(kind, suffix), nil
}

// Create allocates a number and inserts the document in draft status with
// no lines.
func (s *Service) Create(dto CreateDocumentDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	number, err := s.NextNumber(dto.Kind)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Kind:      dto.Kind,
		Number:    number,
		Date:      dto.Date,
		PartnerID: dto.PartnerID,
		Status:    StatusDraft,
	}
	if err := s.repo.Create(doc); err != nil {
		s.logger.Error("failed to create document", "kind", dto.Kind, "number", number, "error", err)
		return nil, err
	}

	s.logger.Info("document created", "id", doc.ID, "kind", doc.Kind, "number", doc.Number)
	return doc, nil
}

func (s *Service) GetByID(id int64) (*Document, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List(kind Kind, limit, offset int) ([]*Document, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(kind, limit, offset)
}

func (s *Service) UpdateStatus(id int64, status string) error {
	if err := (UpdateStatusDTO{Status: status}).Validate(); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.UpdateStatus(id, status)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// AddLine appends a line and recomputes the document totals in the same
// transaction, using the VAT rate configured at this moment.
func (s *Service) AddLine(documentID int64, dto LineDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(documentID); err != nil {
		return nil, err
	}

	line := &DocumentLine{
		DocumentID:  documentID,
		Description: dto.Description,
		Qty:         dto.Qty,
		UnitPrice:   dto.UnitPrice,
	}
	if err := s.repo.AddLine(line, s.vat.VATRate()); err != nil {
		s.logger.Error("failed to add document line", "document_id", documentID, "error", err)
		return nil, err
	}

	return s.repo.GetByID(documentID)
}

func (s *Service) UpdateLine(documentID, lineID int64, dto LineDTO) (*Document, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(documentID); err != nil {
		return nil, err
	}

	line := &DocumentLine{
		ID:          lineID,
		DocumentID:  documentID,
		Description: dto.Description,
		Qty:         dto.Qty,
		UnitPrice:   dto.UnitPrice,
	}
	if err := s.repo.UpdateLine(line, s.vat.VATRate()); err != nil {
		s.logger.Error("failed to update document line", "document_id", documentID, "line_id", lineID, "error", err)
		return nil, err
	}

	return s.repo.GetByID(documentID)
}

func (s *Service) DeleteLine(documentID, lineID int64) (*Document, error) {
	if _, err := s.repo.GetByID(documentID); err != nil {
		return nil, err
	}

	if err := s.repo.DeleteLine(documentID, lineID, s.vat.VATRate()); err != nil {
		s.logger.Error("failed to delete document line", "document_id", documentID, "line_id", lineID, "error", err)
		return nil, err
	}

	return s.repo.GetByID(documentID)
}

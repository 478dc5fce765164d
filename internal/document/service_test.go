package document_test

import (
	"errors"
	"io"
	"log/slog"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/document"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Mock repository for testing
type mockDocumentRepository struct {
	docs        map[int64]*document.Document
	lines       map[int64][]document.DocumentLine
	nextDocID   int64
	nextLineID  int64
	lastVATRate float64
	returnError error
}

func newMockDocumentRepository() *mockDocumentRepository {
	return &mockDocumentRepository{
		docs:       map[int64]*document.Document{},
		lines:      map[int64][]document.DocumentLine{},
		nextDocID:  1,
		nextLineID: 1,
	}
}

func (m *mockDocumentRepository) Create(doc *document.Document) error {
	if m.returnError != nil {
		return m.returnError
	}
	doc.ID = m.nextDocID
	m.nextDocID++
	m.docs[doc.ID] = doc
	return nil
}

func (m *mockDocumentRepository) LastNumber(kind document.Kind) (string, bool, error) {
	if m.returnError != nil {
		return "", false, m.returnError
	}
	var last *document.Document
	for _, doc := range m.docs {
		if doc.Kind != kind {
			continue
		}
		if last == nil || doc.ID > last.ID {
			last = doc
		}
	}
	if last == nil {
		return "", false, nil
	}
	return last.Number, true, nil
}

func (m *mockDocumentRepository) GetByID(id int64) (*document.Document, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	doc, ok := m.docs[id]
	if !ok {
		return nil, internal.ErrDocumentNotFound
	}
	copied := *doc
	copied.Lines = m.lines[id]
	return &copied, nil
}

func (m *mockDocumentRepository) List(kind document.Kind, limit, offset int) ([]*document.Document, error) {
	var out []*document.Document
	for _, doc := range m.docs {
		if kind == "" || doc.Kind == kind {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *mockDocumentRepository) UpdateStatus(id int64, status string) error {
	doc, ok := m.docs[id]
	if !ok {
		return internal.ErrDocumentNotFound
	}
	doc.Status = status
	return nil
}

func (m *mockDocumentRepository) Delete(id int64) error {
	if _, ok := m.docs[id]; !ok {
		return internal.ErrDocumentNotFound
	}
	delete(m.docs, id)
	delete(m.lines, id)
	return nil
}

func (m *mockDocumentRepository) AddLine(line *document.DocumentLine, vatRate float64) error {
	if m.returnError != nil {
		return m.returnError
	}
	line.ID = m.nextLineID
	m.nextLineID++
	m.lines[line.DocumentID] = append(m.lines[line.DocumentID], *line)
	return m.RecomputeTotals(line.DocumentID, vatRate)
}

func (m *mockDocumentRepository) UpdateLine(line *document.DocumentLine, vatRate float64) error {
	lines := m.lines[line.DocumentID]
	for i := range lines {
		if lines[i].ID == line.ID {
			lines[i] = *line
			return m.RecomputeTotals(line.DocumentID, vatRate)
		}
	}
	return internal.ErrLineNotFound
}

func (m *mockDocumentRepository) DeleteLine(documentID, lineID int64, vatRate float64) error {
	lines := m.lines[documentID]
	for i := range lines {
		if lines[i].ID == lineID {
			m.lines[documentID] = append(lines[:i], lines[i+1:]...)
			return m.RecomputeTotals(documentID, vatRate)
		}
	}
	return internal.ErrLineNotFound
}

func (m *mockDocumentRepository) RecomputeTotals(documentID int64, vatRate float64) error {
	m.lastVATRate = vatRate
	doc, ok := m.docs[documentID]
	if !ok {
		return internal.ErrDocumentNotFound
	}
	totals := document.ComputeTotals(m.lines[documentID], vatRate)
	doc.TotalHT = totals.HT
	doc.TotalTVA = totals.TVA
	doc.TotalTTC = totals.TTC
	return nil
}

// fixedVAT satisfies document.VATProvider with a constant rate.
type fixedVAT struct{ rate float64 }

func (f fixedVAT) VATRate() float64 { return f.rate }

var _ = Describe("Document Service", func() {
	var (
		service  *document.Service
		mockRepo *mockDocumentRepository
		vat      *fixedVAT
	)

	BeforeEach(func() {
		mockRepo = newMockDocumentRepository()
		vat = &fixedVAT{rate: 0.20}
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = document.NewService(mockRepo, vat, lg)
	})

	Describe("NextNumber", func() {
		It("should start each kind at 1", func() {
			number, err := service.NextNumber(document.KindInvoice)
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal("INV-000001"))
		})

		It("should increment from the latest document of the kind", func() {
			_, err := service.Create(document.CreateDocumentDTO{Kind: document.KindInvoice})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Create(document.CreateDocumentDTO{Kind: document.KindInvoice})
			Expect(err).NotTo(HaveOccurred())

			number, err := service.NextNumber(document.KindInvoice)
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal("INV-000003"))
		})

		It("should keep sequences independent per kind", func() {
			_, err := service.Create(document.CreateDocumentDTO{Kind: document.KindInvoice})
			Expect(err).NotTo(HaveOccurred())

			quote, err := service.Create(document.CreateDocumentDTO{Kind: document.KindQuote})
			Expect(err).NotTo(HaveOccurred())
			Expect(quote.Number).To(Equal("QTE-000001"))
		})

		It("should restart at 1 when the previous number has no numeric suffix", func() {
			doc := &document.Document{Kind: document.KindInvoice, Number: "INV-ABCXYZ", Status: document.StatusDraft}
			Expect(mockRepo.Create(doc)).To(Succeed())

			number, err := service.NextNumber(document.KindInvoice)
			Expect(err).NotTo(HaveOccurred())
			Expect(number).To(Equal("INV-000001"))
		})

		It("should propagate repository failures", func() {
			mockRepo.returnError = errors.New("db down")

			_, err := service.NextNumber(document.KindInvoice)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Create", func() {
		It("should reject an unknown kind", func() {
			_, err := service.Create(document.CreateDocumentDTO{Kind: "receipt"})
			Expect(err).To(HaveOccurred())
			_, isAppErr := internal.IsAppError(err)
			Expect(isAppErr).To(BeTrue())
		})

		It("should create a draft with a generated number and zero totals", func() {
			doc, err := service.Create(document.CreateDocumentDTO{Kind: document.KindDelivery})
			Expect(err).NotTo(HaveOccurred())
			Expect(doc.Number).To(Equal("BL-000001"))
			Expect(doc.Status).To(Equal(document.StatusDraft))
			Expect(doc.TotalHT).To(BeZero())
			Expect(doc.Date).NotTo(BeEmpty())
		})
	})

	Describe("UpdateStatus", func() {
		It("should reject an unknown status", func() {
			doc, err := service.Create(document.CreateDocumentDTO{Kind: document.KindInvoice})
			Expect(err).NotTo(HaveOccurred())

			err = service.UpdateStatus(doc.ID, "archived")
			Expect(err).To(HaveOccurred())
			_, isAppErr := internal.IsAppError(err)
			Expect(isAppErr).To(BeTrue())
		})

		It("should fail for a missing document", func() {
			err := service.UpdateStatus(999, document.StatusConfirmed)
			Expect(err).To(Equal(internal.ErrDocumentNotFound))
		})

		It("should move a draft to confirmed", func() {
			doc, err := service.Create(document.CreateDocumentDTO{Kind: document.KindInvoice})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.UpdateStatus(doc.ID, document.StatusConfirmed)).To(Succeed())

			fetched, err := service.GetByID(doc.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(fetched.Status).To(Equal(document.StatusConfirmed))
		})
	})

	Describe("Line mutations", func() {
		var doc *document.Document

		BeforeEach(func() {
			var err error
			doc, err = service.Create(document.CreateDocumentDTO{Kind: document.KindInvoice})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should add a line and refresh the totals", func() {
			updated, err := service.AddLine(doc.ID, document.LineDTO{Description: "Ciment", Qty: 2, UnitPrice: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Lines).To(HaveLen(1))
			Expect(updated.TotalHT).To(BeNumerically("~", 100, 1e-9))
			Expect(updated.TotalTVA).To(BeNumerically("~", 20, 1e-9))
			Expect(updated.TotalTTC).To(BeNumerically("~", 120, 1e-9))
		})

		It("should pass the configured VAT rate to the repository", func() {
			vat.rate = 0.07

			_, err := service.AddLine(doc.ID, document.LineDTO{Qty: 1, UnitPrice: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(mockRepo.lastVATRate).To(BeNumerically("~", 0.07, 1e-9))
		})

		It("should reject negative quantities", func() {
			_, err := service.AddLine(doc.ID, document.LineDTO{Qty: -1, UnitPrice: 10})
			Expect(err).To(HaveOccurred())
			_, isAppErr := internal.IsAppError(err)
			Expect(isAppErr).To(BeTrue())
		})

		It("should fail to add a line to a missing document", func() {
			_, err := service.AddLine(999, document.LineDTO{Qty: 1, UnitPrice: 10})
			Expect(err).To(Equal(internal.ErrDocumentNotFound))
		})

		It("should update a line and refresh the totals", func() {
			updated, err := service.AddLine(doc.ID, document.LineDTO{Qty: 2, UnitPrice: 50})
			Expect(err).NotTo(HaveOccurred())
			lineID := updated.Lines[0].ID

			updated, err = service.UpdateLine(doc.ID, lineID, document.LineDTO{Qty: 3, UnitPrice: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.TotalHT).To(BeNumerically("~", 150, 1e-9))
			Expect(updated.TotalTTC).To(BeNumerically("~", 180, 1e-9))
		})

		It("should fail to update a missing line", func() {
			_, err := service.UpdateLine(doc.ID, 999, document.LineDTO{Qty: 1, UnitPrice: 10})
			Expect(err).To(Equal(internal.ErrLineNotFound))
		})

		It("should delete a line and refresh the totals", func() {
			updated, err := service.AddLine(doc.ID, document.LineDTO{Qty: 2, UnitPrice: 50})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.AddLine(doc.ID, document.LineDTO{Qty: 1, UnitPrice: 30})
			Expect(err).NotTo(HaveOccurred())

			updated, err = service.DeleteLine(doc.ID, updated.Lines[0].ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Lines).To(HaveLen(1))
			Expect(updated.TotalHT).To(BeNumerically("~", 30, 1e-9))
		})

		It("should fail to delete a missing line", func() {
			_, err := service.DeleteLine(doc.ID, 999)
			Expect(err).To(Equal(internal.ErrLineNotFound))
		})
	})
})

package document_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/agenticsoft/gescom/internal/document"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Document Handler", func() {
	var (
		handler *document.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		mockRepo := newMockDocumentRepository()
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		service := document.NewService(mockRepo, fixedVAT{rate: 0.20}, lg)
		handler = document.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/documents", handler.Create)
		router.Get("/documents/{id}", handler.Get)
		router.Post("/documents/{id}/lines", handler.AddLine)
	})

	It("should create a draft and return it with its number", func() {
		body := strings.NewReader(`{"kind": "invoice"}`)
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var doc document.Document
		Expect(json.NewDecoder(w.Body).Decode(&doc)).To(Succeed())
		Expect(doc.Number).To(Equal("INV-000001"))
		Expect(doc.Status).To(Equal(document.StatusDraft))
	})

	It("should reject an unknown kind with 400", func() {
		body := strings.NewReader(`{"kind": "receipt"}`)
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should reject a malformed body with 400", func() {
		req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader("{"))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 404 for a missing document", func() {
		req := httptest.NewRequest(http.MethodGet, "/documents/999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should add a line and return the refreshed totals", func() {
		createReq := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(`{"kind": "invoice"}`))
		createW := httptest.NewRecorder()
		router.ServeHTTP(createW, createReq)
		Expect(createW.Code).To(Equal(http.StatusCreated))

		lineBody := strings.NewReader(`{"description": "Ciment", "qty": 2, "unit_price": 50}`)
		req := httptest.NewRequest(http.MethodPost, "/documents/1/lines", lineBody)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))

		var doc document.Document
		Expect(json.NewDecoder(w.Body).Decode(&doc)).To(Succeed())
		Expect(doc.TotalHT).To(BeNumerically("~", 100, 1e-9))
		Expect(doc.TotalTVA).To(BeNumerically("~", 20, 1e-9))
		Expect(doc.TotalTTC).To(BeNumerically("~", 120, 1e-9))
	})
})

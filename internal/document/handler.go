package document

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/transport"
	"github.com/agenticsoft/gescom/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateDocumentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Service.Create(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	kind := Kind(r.URL.Query().Get("kind"))
	if kind != "" && !kind.Valid() {
		h.WriteError(w, http.StatusBadRequest, "invalid document kind")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	docs, err := h.Service.List(kind, limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, docs)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	doc, err := h.Service.GetByID(id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var dto UpdateStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateStatus(id, dto.Status); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var dto LineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Service.AddLine(id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, doc)
}

func (h *Handler) UpdateLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	lineID, ok := h.pathID(w, r, "lineID")
	if !ok {
		return
	}

	var dto LineDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	doc, err := h.Service.UpdateLine(id, lineID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) DeleteLine(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	lineID, ok := h.pathID(w, r, "lineID")
	if !ok {
		return
	}

	doc, err := h.Service.DeleteLine(id, lineID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error("document operation failed", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

package payment

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/transport"
	"github.com/agenticsoft/gescom/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var dto PaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.RecordPayment(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	payments, err := h.Service.ListPayments(limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payments)
}

func (h *Handler) RecordMovement(w http.ResponseWriter, r *http.Request) {
	var dto CashMovementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.Service.RecordMovement(dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	movements, err := h.Service.ListMovements(limit, offset)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, movements)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.CashSummary()
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		h.WriteError(w, appErr.StatusCode, appErr.Message)
		return
	}
	h.Logger.Error("payment operation failed", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}

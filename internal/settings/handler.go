package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.All()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to read settings")
		return
	}
	h.WriteJSON(w, http.StatusOK, all)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		h.WriteError(w, http.StatusBadRequest, "missing setting key")
		return
	}

	value, err := h.Service.Get(key, "")
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to read setting")
		return
	}

	h.WriteJSON(w, http.StatusOK, Setting{Key: key, Value: value})
}

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		h.WriteError(w, http.StatusBadRequest, "missing setting key")
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Set(key, body.Value); err != nil {
		h.WriteError(w, http.StatusInternalServerError, "failed to write setting")
		return
	}

	h.WriteJSON(w, http.StatusOK, Setting{Key: key, Value: body.Value})
}

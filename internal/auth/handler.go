package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/agenticsoft/gescom/internal"
	"github.com/agenticsoft/gescom/internal/transport"
	"github.com/agenticsoft/gescom/pkg/logger"
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Warn("login failed", "error", err)

		switch {
		case errors.Is(err, internal.ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		default:
			var vErr ValidationError
			if errors.As(err, &vErr) {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, session)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Warn("token refresh failed", "error", err)
		h.WriteError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token := h.ExtractTokenFromHeader(r)
	if token == "" {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "invalid token")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":       claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}

// AuthMiddleware guards document and settings routes: it validates the
// bearer token and stores the user id in the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := internal.ContextWithUserID(r.Context(), claims.UserID)
		ctx = logger.With(ctx, "userID", claims.UserID, "role", claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

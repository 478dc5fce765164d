package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/agenticsoft/gescom/internal/auth"
	"github.com/agenticsoft/gescom/internal/document"
	"github.com/agenticsoft/gescom/internal/partner"
	"github.com/agenticsoft/gescom/internal/payment"
	"github.com/agenticsoft/gescom/internal/product"
	"github.com/agenticsoft/gescom/internal/settings"
	"github.com/agenticsoft/gescom/internal/transport/middleware"
	"github.com/agenticsoft/gescom/internal/transport/swagger"
	"github.com/go-chi/chi"
)

type Handlers struct {
	Auth     *auth.Handler
	Settings *settings.Handler
	Document *document.Handler
	Partner  *partner.Handler
	Product  *product.Handler
	Payment  *payment.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		if h.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", h.Auth.Login)
				sr.Post("/refresh", h.Auth.RefreshToken)
			})
		}

		if h.Auth != nil {
			// Protected routes that require authentication
			r.Group(func(pr chi.Router) {
				pr.Use(h.Auth.AuthMiddleware)

				// Current user
				pr.Get("/auth/me", h.Auth.Me)

				// Settings routes
				if h.Settings != nil {
					pr.Route("/settings", func(sr chi.Router) {
						sr.Get("/", h.Settings.List)
						sr.Get("/{key}", h.Settings.Get)
						sr.Put("/{key}", h.Settings.Set)
					})
				}

				// Document routes
				if h.Document != nil {
					pr.Route("/documents", func(dr chi.Router) {
						dr.Post("/", h.Document.Create)
						dr.Get("/", h.Document.List)
						dr.Get("/{id}", h.Document.Get)
						dr.Patch("/{id}/status", h.Document.UpdateStatus)
						dr.Delete("/{id}", h.Document.Delete)

						dr.Post("/{id}/lines", h.Document.AddLine)
						dr.Put("/{id}/lines/{lineID}", h.Document.UpdateLine)
						dr.Delete("/{id}/lines/{lineID}", h.Document.DeleteLine)
					})
				}

				// Partner routes
				if h.Partner != nil {
					pr.Route("/partners", func(par chi.Router) {
						par.Post("/", h.Partner.Create)
						par.Get("/", h.Partner.List)
						par.Get("/{id}", h.Partner.Get)
						par.Put("/{id}", h.Partner.Update)
						par.Delete("/{id}", h.Partner.Delete)
					})
				}

				// Product and stock routes
				if h.Product != nil {
					pr.Route("/products", func(prr chi.Router) {
						prr.Post("/", h.Product.Create)
						prr.Get("/", h.Product.List)
						prr.Get("/{id}", h.Product.Get)
						prr.Put("/{id}", h.Product.Update)
						prr.Delete("/{id}", h.Product.Delete)
						prr.Post("/{id}/stock", h.Product.AdjustStock)
					})
					pr.Get("/stock", h.Product.StockLevels)
				}

				// Payment and cash register routes
				if h.Payment != nil {
					pr.Route("/payments", func(pyr chi.Router) {
						pyr.Post("/", h.Payment.RecordPayment)
						pyr.Get("/", h.Payment.ListPayments)
					})
					pr.Route("/cash", func(cr chi.Router) {
						cr.Post("/movements", h.Payment.RecordMovement)
						cr.Get("/movements", h.Payment.ListMovements)
						cr.Get("/summary", h.Payment.Summary)
					})
				}
			})
		}
	})
}

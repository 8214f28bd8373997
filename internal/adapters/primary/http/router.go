package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	mw "github.com/lorrc/supporthub-backend/internal/adapters/primary/http/middleware"
	"github.com/lorrc/supporthub-backend/internal/adapters/primary/validation"
	"github.com/lorrc/supporthub-backend/internal/core/ports"
)

// RouterConfig lists everything the HTTP surface needs.
type RouterConfig struct {
	Logger         *slog.Logger
	Customers      ports.CustomerService
	Agents         ports.AgentService
	Tickets        ports.TicketService
	Comments       ports.CommentService
	Store          HealthChecker
	StoreDriver    string
	Version        string
	AllowedOrigins []string
	RateLimiter    *mw.RateLimiter // nil disables rate limiting
}

// NewRouter builds the chi router: health probes at the root and the REST
// resources under /api/v1.
func NewRouter(cfg RouterConfig) http.Handler {
	errorHandler := NewErrorHandler(cfg.Logger)
	validator := validation.New()

	ticketHandler := NewTicketHandler(cfg.Tickets, cfg.Comments, validator, errorHandler)
	commentHandler := NewCommentHandler(cfg.Comments, validator, errorHandler)
	customerHandler := NewCustomerHandler(cfg.Customers, validator, errorHandler)
	agentHandler := NewAgentHandler(cfg.Agents, validator, errorHandler)
	healthHandler := NewHealthHandler(cfg.Store, cfg.StoreDriver, cfg.Version)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(cfg.Logger))
	r.Use(mw.RecoveryLogger(cfg.Logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", mw.RequestIDHeader},
			ExposedHeaders:   []string{mw.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	healthHandler.RegisterRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/tickets", ticketHandler.RegisterRoutes)
		r.Route("/comments", commentHandler.RegisterRoutes)
		r.Route("/customers", customerHandler.RegisterRoutes)
		r.Route("/agents", agentHandler.RegisterRoutes)
	})

	return r
}

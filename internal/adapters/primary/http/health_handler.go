package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const storePingTimeout = 3 * time.Second

// HealthChecker is satisfied by both the pgx pool and the SQLite store.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	store   HealthChecker
	driver  string
	version string
}

func NewHealthHandler(store HealthChecker, driver, version string) *HealthHandler {
	return &HealthHandler{store: store, driver: driver, version: version}
}

// HealthResponse is the body of every health route.
type HealthResponse struct {
	Status  string       `json:"status"`
	Version string       `json:"version,omitempty"`
	Store   *StoreHealth `json:"store,omitempty"`
}

// StoreHealth is the outcome of pinging the ticket store.
type StoreHealth struct {
	Driver  string `json:"driver,omitempty"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
	Latency string `json:"latency"`
}

// HandleLiveness answers 200 while the process serves requests.
func (h *HealthHandler) HandleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Version: h.version})
}

// HandleReadiness answers 503 while the store does not respond.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	store := h.pingStore(r.Context())

	resp := HealthResponse{Status: "healthy", Version: h.version, Store: &store}
	status := http.StatusOK
	if !store.Healthy {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (h *HealthHandler) pingStore(ctx context.Context) StoreHealth {
	if h.store == nil {
		return StoreHealth{Driver: h.driver, Error: "store not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	sh := StoreHealth{
		Driver:  h.driver,
		Healthy: err == nil,
		Latency: time.Since(start).Round(time.Microsecond).String(),
	}
	if err != nil {
		sh.Error = err.Error()
	}
	return sh
}

// RegisterRoutes mounts the probes; /health is an alias of /health/ready.
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HandleReadiness)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

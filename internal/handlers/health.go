package handlers

import (
	"context"
	"net/http"
	"time"

	"accounts-service/internal/dto"
	"accounts-service/internal/utils"
)

// Pinger is the connectivity check the health endpoint runs against the
// database. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the unauthenticated service endpoints
type HealthHandler struct {
	db    Pinger
	start time.Time
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, start: time.Now()}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Hello from the accounts service!"))
}

// Health handles the health check, including database connectivity
// @Summary Health check
// @Description Report service status, uptime and database connectivity
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service is healthy"
// @Failure 503 {object} dto.HealthResponse "Database is unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		utils.WriteJSONResponse(w, http.StatusServiceUnavailable, dto.HealthResponse{
			Status:    "degraded",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Uptime:    time.Since(h.start).Seconds(),
			Details:   map[string]any{"db": err.Error()},
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.start).Seconds(),
		Details:   map[string]any{"db": "ok"},
	})
}

// APIRoot handles GET /api
func (h *HealthHandler) APIRoot(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "the API is running"})
}

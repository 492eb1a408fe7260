// internal/handler/health_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler holds the dependencies probed by the health endpoints
type HealthHandler struct {
	DB     Pinger
	Logger *zap.Logger
}

// NewHealthHandler creates a HealthHandler for the given database
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{DB: db, Logger: logger}
}

// RootHandler answers GET / so load balancers and humans can see the API is up
func (h *HealthHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "CRM Backend is running"})
}

// HealthzHandler reports whether the database is reachable
func (h *HealthHandler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.PingContext(ctx); err != nil {
			h.Logger.Warn("health check failed", zap.Error(err))
			status = map[string]string{"status": "degraded", "database": "unreachable"}
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(status)
}

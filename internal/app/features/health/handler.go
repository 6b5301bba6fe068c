package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/longrichadmin/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Pinger is the reachability probe for the backend API.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Backend Pinger
	Log     *zap.Logger
}

// NewHandler constructs a health Handler around the backend probe.
func NewHandler(backend Pinger, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: backend,
		Log:     logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "backend":"reachable" }
//
// When the backend API cannot be reached: 503 and
//
//	{ "status":"error", "backend":"unreachable", "message":"Backend unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:  "ok",
		Backend: "reachable",
	}

	if err := h.Backend.Ping(ctx); err != nil {
		h.Log.Error("health-check: backend ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Backend = "unreachable"
		resp.Message = "Backend unavailable"
		resp.Error = err.Error()
	}

	_ = json.NewEncoder(w).Encode(resp)
}

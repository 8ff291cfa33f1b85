package handlers

import (
	"net/http"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/coordinator"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/interfaces/rest"
)

type HealthResponse struct {
	Status  string `json:"status"`
	State   string `json:"state"`
	Storage string `json:"storage"`
}

// GetStatus returns the process status unwrapped; it is polled by scripts.
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	rest.WriteRaw(w, http.StatusOK, h.process.Status())
}

// GetHealth is 200 once bootstrap has completed, the process has not stopped
// and the storage answers; 503 otherwise.
func (h *Handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	status := h.process.Status()

	resp := HealthResponse{Status: "ok", State: status.State, Storage: "ok"}
	healthy := status.Bootstrapped && status.State != coordinator.StateStopped.String()

	if h.storage != nil {
		if err := h.storage.Ping(r.Context()); err != nil {
			h.logger.Warn("storage health check failed", "error", err)
			resp.Storage = "unavailable"
			healthy = false
		}
	}

	code := http.StatusOK
	if !healthy {
		resp.Status = "unavailable"
		code = http.StatusServiceUnavailable
	}
	rest.WriteRaw(w, code, resp)
}

func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	if h.metrics == nil {
		rest.WriteJSON(w, http.StatusOK, struct{}{})
		return
	}
	rest.WriteJSON(w, http.StatusOK, h.metrics.GetSnapshot())
}

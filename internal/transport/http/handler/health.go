package handler

import "net/http"

// HealthHandler handles the liveness probe. No dependencies, no failure modes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Status(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthEnvelope{Status: "ok"})
}

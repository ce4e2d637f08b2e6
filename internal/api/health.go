package api

import (
	"net/http"

	"menutree/internal/wire"

	"go.uber.org/zap"
)

type healthHandler struct {
	svc MenuService
	responder
}

// Live always reports healthy once the process serves requests.
func (h *healthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, wire.Status{Status: "healthy"})
}

// Ready reports whether the store answers.
func (h *healthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		h.respondStatus(w, r, http.StatusServiceUnavailable, "store not reachable")
		return
	}
	h.respondJSON(w, http.StatusOK, wire.Status{Status: "ready"})
}

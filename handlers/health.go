// ABOUTME: Health endpoint for load balancers and deploys
// ABOUTME: Reports gateway liveness and whether the upstream answers at all

package handlers

import (
	"net/http"
)

// Health reports liveness. No upstream call is made here so a slow upstream
// cannot fail the liveness check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"upstream": h.cfg.QuizAPIURL,
	})
}

package handler

import (
	"net/http"

	"stash/internal/httputil"
)

// Health answers liveness probes
// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

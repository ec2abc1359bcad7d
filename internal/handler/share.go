package handler

import (
	"log/slog"
	"net/http"

	"stash/internal/domain/services"
	"stash/internal/httputil"
	"stash/internal/middleware"
)

// ShareHandler issues and redeems share links
type ShareHandler struct {
	shareService services.ShareService
	logger       *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService services.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// Issue mints a share link for the requesting user
// POST /api/shares
func (h *ShareHandler) Issue(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	share, err := h.shareService.Issue(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, share)
}

// Redeem validates the token in the path, plants the share cookie, and
// sends the browser to the shared root listing. The cookie expires with
// the token, so a stale link dies in the middleware, not here.
// GET /share/{token}
func (h *ShareHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		httputil.RespondError(w, http.StatusBadRequest, "share token is required")
		return
	}

	if _, err := h.shareService.Resolve(r.Context(), token); err != nil {
		handleError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.ShareCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/api/browse/", http.StatusFound)
}

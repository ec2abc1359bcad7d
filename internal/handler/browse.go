package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"stash/internal/domain/models"
	"stash/internal/domain/services"
	"stash/internal/httputil"
)

// BrowseHandler serves the path-addressed read side: a folder path maps to
// its listing in one lookup.
type BrowseHandler struct {
	resolver      services.PathResolver
	folderService services.FolderService
	authorizer    services.ResourceAuthorizer
	logger        *slog.Logger
}

// NewBrowseHandler creates a new browse handler
func NewBrowseHandler(
	resolver services.PathResolver,
	folderService services.FolderService,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) *BrowseHandler {
	return &BrowseHandler{
		resolver:      resolver,
		folderService: folderService,
		authorizer:    authorizer,
		logger:        logger,
	}
}

// Browse resolves a folder path and lists its contents. The empty path is
// the caller's root listing.
// GET /api/browse/{path...}
func (h *BrowseHandler) Browse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	// ServeMux percent-decodes the wildcard remainder already
	path := strings.Trim(r.PathValue("path"), "/")

	if path == "" {
		roots, err := h.folderService.ListRoots(r.Context(), userID)
		if err != nil {
			handleError(w, err)
			return
		}
		httputil.RespondJSON(w, http.StatusOK, services.FolderContents{
			Folders: roots,
			Files:   []models.File{},
		})
		return
	}

	folder, err := h.resolver.ResolveFolderPath(r.Context(), path)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.authorizer.CanAccessFolder(r.Context(), userID, folder.ID); err != nil {
		handleError(w, err)
		return
	}

	contents, err := h.folderService.ListChildren(r.Context(), folder.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, contents)
}

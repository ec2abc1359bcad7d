package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/services"
	"stash/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateFolder creates a new folder
// POST /api/folders
// Returns 201 if created, 409 carrying the conflicting slug if duplicate
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = userID

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

type deleteFolderRequest struct {
	FolderID string `json:"folder_id"`
}

// DeleteFolder deletes a folder owned by the requesting user
// POST /api/folders/delete
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req deleteFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FolderID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "folder_id is required")
		return
	}

	if err := h.folderService.DeleteFolder(r.Context(), req.FolderID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Match the create-side shape: deleting what was never there
			// is reported, not silently absorbed
			httputil.RespondError(w, http.StatusNotFound, "folder not found")
			return
		}
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type rootListing struct {
	Folders []models.Folder `json:"folders"`
}

// ListRoots lists the requesting user's root folders
// GET /api/folders
func (h *FolderHandler) ListRoots(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	roots, err := h.folderService.ListRoots(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, rootListing{Folders: roots})
}

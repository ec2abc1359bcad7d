package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"stash/internal/config"
	"stash/internal/domain/services"
	"stash/internal/httputil"
)

// FileHandler handles file HTTP requests. Every operation resolves the
// owning folder and runs the ownership check before touching the file
// service, which is itself ownership-free.
type FileHandler struct {
	fileService services.FileService
	resolver    services.PathResolver
	authorizer  services.ResourceAuthorizer
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(
	fileService services.FileService,
	resolver services.PathResolver,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		resolver:    resolver,
		authorizer:  authorizer,
		logger:      logger,
	}
}

// Upload stores a multipart upload into the folder the path names
// POST /api/upload/{path...}
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	folderPath := strings.Trim(r.PathValue("path"), "/")
	folder, err := h.resolver.ResolveFolderPath(r.Context(), folderPath)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := h.authorizer.CanAccessFolder(r.Context(), userID, folder.ID); err != nil {
		handleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
	part, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer part.Close()

	file, err := h.fileService.Upload(r.Context(), folder.ID, header.Filename, part)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

type createFileRequest struct {
	FolderPath  string `json:"folder_path"`
	Name        string `json:"name"`
	PhysicalRef string `json:"physical_ref"`
}

// CreateFile records a file whose bytes already live elsewhere
// POST /api/files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req createFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.resolver.ResolveFolderPath(r.Context(), req.FolderPath)
	if err != nil {
		handleError(w, err)
		return
	}
	if err := h.authorizer.CanAccessFolder(r.Context(), userID, folder.ID); err != nil {
		handleError(w, err)
		return
	}

	file, err := h.fileService.CreateFile(r.Context(), &services.CreateFileRequest{
		FolderID:    folder.ID,
		Name:        req.Name,
		PhysicalRef: req.PhysicalRef,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, file)
}

type deleteFileRequest struct {
	FileID     string `json:"file_id,omitempty"`
	FolderPath string `json:"folder_path,omitempty"`
	FileName   string `json:"file_name,omitempty"`
}

// DeleteFile removes a file record, addressed by id or by path
// POST /api/files/delete
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req deleteFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fileID := req.FileID
	if fileID == "" {
		if req.FolderPath == "" || req.FileName == "" {
			httputil.RespondError(w, http.StatusBadRequest, "file_id or folder_path + file_name is required")
			return
		}
		file, err := h.resolver.ResolveFilePath(r.Context(), req.FolderPath, req.FileName)
		if err != nil {
			handleError(w, err)
			return
		}
		fileID = file.ID
	}

	if err := h.authorizer.CanAccessFile(r.Context(), userID, fileID); err != nil {
		handleError(w, err)
		return
	}

	if err := h.fileService.DeleteFile(r.Context(), fileID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Download redirects to the file's physical location
// GET /api/files/{id}/download
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	fileID := r.PathValue("id")
	if fileID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "file ID is required")
		return
	}

	if err := h.authorizer.CanAccessFile(r.Context(), userID, fileID); err != nil {
		handleError(w, err)
		return
	}

	file, err := h.fileService.GetFile(r.Context(), fileID)
	if err != nil {
		handleError(w, err)
		return
	}

	http.Redirect(w, r, file.PhysicalRef, http.StatusFound)
}

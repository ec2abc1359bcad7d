package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/services"
	"stash/internal/httputil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authedRequest builds a request carrying the user ID the middleware
// would have resolved.
func authedRequest(method, target, userID string, body io.Reader) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if userID != "" {
		r = httputil.WithUserID(r, userID)
	}
	return r
}

func newConflict(resourceType, resourceID, slug string) *domain.ConflictError {
	return &domain.ConflictError{
		Message:      fmt.Sprintf("a %s with slug %q already exists", resourceType, slug),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Slug:         slug,
	}
}

// fakeTree is a canned two-level folder tree shared by the service fakes:
// "Reports" (owned by u1) containing "2024", plus one file in "2024".
type fakeTree struct {
	root   models.Folder
	child  models.Folder
	file   models.File
	shares map[string]models.User
}

func newFakeTree() *fakeTree {
	root := models.Folder{ID: "f-root", UserID: "u1", Name: "Reports", Slug: "reports", Path: "Reports"}
	child := models.Folder{ID: "f-child", UserID: "u1", ParentID: &root.ID, Name: "2024", Slug: "2024", Path: "Reports/2024"}
	file := models.File{ID: "d-1", FolderID: child.ID, Name: "q1.pdf", Slug: "q1.pdf", Path: "Reports/2024/q1.pdf", PhysicalRef: "https://blob.example/q1.pdf"}
	return &fakeTree{
		root:   root,
		child:  child,
		file:   file,
		shares: map[string]models.User{"good-token": {ID: "u1", Username: "alice"}},
	}
}

func (t *fakeTree) folderByID(id string) (*models.Folder, error) {
	switch id {
	case t.root.ID:
		f := t.root
		return &f, nil
	case t.child.ID:
		f := t.child
		return &f, nil
	}
	return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
}

type fakeResolver struct{ tree *fakeTree }

func (r *fakeResolver) ResolveFolderPath(_ context.Context, path string) (*models.Folder, error) {
	path = strings.Trim(path, "/")
	switch path {
	case "":
		return nil, fmt.Errorf("%w: empty folder path", domain.ErrValidation)
	case r.tree.root.Path:
		f := r.tree.root
		return &f, nil
	case r.tree.child.Path:
		f := r.tree.child
		return &f, nil
	}
	return nil, fmt.Errorf("path %q: %w", path, domain.ErrNotFound)
}

func (r *fakeResolver) ResolveFilePath(_ context.Context, folderPath, fileName string) (*models.File, error) {
	if strings.Trim(folderPath, "/")+"/"+fileName == r.tree.file.Path {
		f := r.tree.file
		return &f, nil
	}
	return nil, fmt.Errorf("file path: %w", domain.ErrNotFound)
}

type fakeFolderService struct {
	tree      *fakeTree
	createErr error
	deleted   []string
}

func (s *fakeFolderService) CreateFolder(_ context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &models.Folder{ID: "f-new", UserID: req.UserID, Name: req.Name, Slug: strings.ToLower(req.Name), Path: req.Name}, nil
}

func (s *fakeFolderService) DeleteFolder(_ context.Context, folderID, requestingUserID string) error {
	folder, err := s.tree.folderByID(folderID)
	if err != nil {
		return err
	}
	if folder.UserID != requestingUserID {
		return fmt.Errorf("not the owner: %w", domain.ErrForbidden)
	}
	s.deleted = append(s.deleted, folderID)
	return nil
}

func (s *fakeFolderService) ListChildren(_ context.Context, folderID string) (*services.FolderContents, error) {
	folder, err := s.tree.folderByID(folderID)
	if err != nil {
		return nil, err
	}
	contents := &services.FolderContents{Folder: folder, Folders: []models.Folder{}, Files: []models.File{}}
	if folderID == s.tree.root.ID {
		contents.Folders = []models.Folder{s.tree.child}
	}
	if folderID == s.tree.child.ID {
		contents.Files = []models.File{s.tree.file}
	}
	return contents, nil
}

func (s *fakeFolderService) ListRoots(_ context.Context, userID string) ([]models.Folder, error) {
	if userID == s.tree.root.UserID {
		return []models.Folder{s.tree.root}, nil
	}
	return []models.Folder{}, nil
}

type fakeFileService struct {
	tree    *fakeTree
	deleted []string
}

func (s *fakeFileService) CreateFile(_ context.Context, req *services.CreateFileRequest) (*models.File, error) {
	if _, err := s.tree.folderByID(req.FolderID); err != nil {
		return nil, err
	}
	return &models.File{ID: "d-new", FolderID: req.FolderID, Name: req.Name, PhysicalRef: req.PhysicalRef}, nil
}

func (s *fakeFileService) Upload(_ context.Context, folderID, name string, r io.Reader) (*models.File, error) {
	folder, err := s.tree.folderByID(folderID)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return nil, err
	}
	return &models.File{
		ID:          "d-up",
		FolderID:    folderID,
		Name:        name,
		Path:        folder.Path + "/" + name,
		PhysicalRef: "https://blob.example/" + folder.Path + "/" + name,
	}, nil
}

func (s *fakeFileService) GetFile(_ context.Context, fileID string) (*models.File, error) {
	if fileID == s.tree.file.ID {
		f := s.tree.file
		return &f, nil
	}
	return nil, fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
}

func (s *fakeFileService) DeleteFile(_ context.Context, fileID string) error {
	if fileID != s.tree.file.ID {
		return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	s.deleted = append(s.deleted, fileID)
	return nil
}

type fakeAuthorizer struct{ tree *fakeTree }

func (a *fakeAuthorizer) CanAccessFolder(_ context.Context, userID, folderID string) error {
	folder, err := a.tree.folderByID(folderID)
	if err != nil {
		return err
	}
	if folder.UserID != userID {
		return fmt.Errorf("access denied: %w", domain.ErrForbidden)
	}
	return nil
}

func (a *fakeAuthorizer) CanAccessFile(_ context.Context, userID, fileID string) error {
	if fileID != a.tree.file.ID {
		return fmt.Errorf("file %s: %w", fileID, domain.ErrNotFound)
	}
	return a.CanAccessFolder(context.Background(), userID, a.tree.file.FolderID)
}

type fakeShareService struct{ tree *fakeTree }

func (s *fakeShareService) Issue(_ context.Context, userID string) (*services.IssuedShare, error) {
	if userID != "u1" {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return &services.IssuedShare{
		Token: "good-token",
		URL:   "http://localhost:8080/share/good-token",
	}, nil
}

func (s *fakeShareService) Resolve(_ context.Context, token string) (*models.User, error) {
	user, ok := s.tree.shares[token]
	if !ok {
		return nil, domain.ErrInvalidShare
	}
	return &user, nil
}

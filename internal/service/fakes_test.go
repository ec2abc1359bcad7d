package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stash/internal/domain"
	"stash/internal/domain/models"
	"stash/internal/domain/repositories"
)

// fakeStore is an in-memory stand-in for the persistent store. Like the
// real database it enforces the global slug/path unique constraints under
// a lock, so the concurrency behavior of the services can be exercised:
// two creators may both pass the advisory pre-check, but only one insert
// wins.
type fakeStore struct {
	mu      sync.Mutex
	folders map[string]*models.Folder
	files   map[string]*models.File
	tokens  map[string]*models.ShareToken
	users   map[string]*models.User
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		folders: make(map[string]*models.Folder),
		files:   make(map[string]*models.File),
		tokens:  make(map[string]*models.ShareToken),
		users:   make(map[string]*models.User),
	}
}

type fakeFolderRepo struct{ store *fakeStore }
type fakeFileRepo struct{ store *fakeStore }
type fakeShareRepo struct{ store *fakeStore }
type fakeUserRepo struct{ store *fakeStore }

// fakeTxManager runs the function directly; the fake store is already
// linearized by its mutex.
type fakeTxManager struct{}

func (fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error { return fn(ctx) }

func (r *fakeFolderRepo) Create(_ context.Context, folder *models.Folder) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.folders {
		if f.Slug == folder.Slug || f.Path == folder.Path {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a folder named %q already exists", folder.Name),
				ResourceType: "folder",
				ResourceID:   f.ID,
				Slug:         folder.Slug,
			}
		}
	}

	cp := *folder
	r.store.folders[folder.ID] = &cp
	return nil
}

func (r *fakeFolderRepo) GetByID(_ context.Context, id string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, ok := r.store.folders[id]
	if !ok {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFolderRepo) GetByPath(_ context.Context, path string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.folders {
		if f.Path == path {
			cp := *f
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("folder at path %q: %w", path, domain.ErrNotFound)
}

func (r *fakeFolderRepo) GetBySlug(_ context.Context, slug string) (*models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.folders {
		if f.Slug == slug {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFolderRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.folders[id]; !ok {
		return fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.folders, id)
	return nil
}

func (r *fakeFolderRepo) ListChildren(_ context.Context, parentID string) ([]models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.Folder
	for _, f := range r.store.folders {
		if f.ParentID != nil && *f.ParentID == parentID {
			out = append(out, *f)
		}
	}
	sortFoldersByCreation(out)
	return out, nil
}

func (r *fakeFolderRepo) ListRoots(_ context.Context, userID string) ([]models.Folder, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.Folder
	for _, f := range r.store.folders {
		if f.UserID == userID && f.ParentID == nil {
			out = append(out, *f)
		}
	}
	sortFoldersByCreation(out)
	return out, nil
}

func (r *fakeFileRepo) Create(_ context.Context, file *models.File) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.files {
		if f.Slug == file.Slug || f.Path == file.Path {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("a file named %q already exists", file.Name),
				ResourceType: "file",
				ResourceID:   f.ID,
				Slug:         file.Slug,
			}
		}
	}

	cp := *file
	r.store.files[file.ID] = &cp
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	f, ok := r.store.files[id]
	if !ok {
		return nil, fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) GetByPath(_ context.Context, path string) (*models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.files {
		if f.Path == path {
			cp := *f
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("file at path %q: %w", path, domain.ErrNotFound)
}

func (r *fakeFileRepo) GetBySlug(_ context.Context, slug string) (*models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, f := range r.store.files {
		if f.Slug == slug {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeFileRepo) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.files[id]; !ok {
		return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
	}
	delete(r.store.files, id)
	return nil
}

func (r *fakeFileRepo) ListByFolder(_ context.Context, folderID string) ([]models.File, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []models.File
	for _, f := range r.store.files {
		if f.FolderID == folderID {
			out = append(out, *f)
		}
	}
	sortFilesByCreation(out)
	return out, nil
}

func (r *fakeShareRepo) Create(_ context.Context, token *models.ShareToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	cp := *token
	r.store.tokens[token.Token] = &cp
	return nil
}

func (r *fakeShareRepo) GetByToken(_ context.Context, token string) (*models.ShareToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.tokens[token]
	if !ok {
		return nil, fmt.Errorf("share token: %w", domain.ErrNotFound)
	}
	cp := *t
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == user.Username {
			return fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
		}
	}

	cp := *user
	r.store.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, u := range r.store.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

func sortFoldersByCreation(folders []models.Folder) {
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].CreatedAt.Before(folders[j].CreatedAt)
	})
}

func sortFilesByCreation(files []models.File) {
	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.Before(files[j].CreatedAt)
	})
}

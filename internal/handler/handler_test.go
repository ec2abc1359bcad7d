package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stash/internal/domain/services"
	"stash/internal/middleware"
)

func TestBrowseRootListing(t *testing.T) {
	tree := newFakeTree()
	h := NewBrowseHandler(&fakeResolver{tree: tree}, &fakeFolderService{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

	r := authedRequest(http.MethodGet, "/api/browse/", "u1", nil)
	r.SetPathValue("path", "")
	w := httptest.NewRecorder()
	h.Browse(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body)
	}

	var contents services.FolderContents
	if err := json.Unmarshal(w.Body.Bytes(), &contents); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if contents.Folder != nil {
		t.Errorf("root listing Folder = %+v, want nil", contents.Folder)
	}
	if len(contents.Folders) != 1 || contents.Folders[0].Name != "Reports" {
		t.Errorf("root listing folders = %+v, want [Reports]", contents.Folders)
	}
}

func TestBrowsePath(t *testing.T) {
	tree := newFakeTree()
	h := NewBrowseHandler(&fakeResolver{tree: tree}, &fakeFolderService{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

	tests := []struct {
		name       string
		path       string
		userID     string
		wantStatus int
	}{
		{name: "nested folder", path: "Reports/2024", userID: "u1", wantStatus: http.StatusOK},
		{name: "unknown path", path: "Reports/2025", userID: "u1", wantStatus: http.StatusNotFound},
		{name: "someone else's folder", path: "Reports/2024", userID: "u2", wantStatus: http.StatusForbidden},
		{name: "unauthenticated", path: "Reports/2024", userID: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := authedRequest(http.MethodGet, "/api/browse/"+tt.path, tt.userID, nil)
			r.SetPathValue("path", tt.path)
			w := httptest.NewRecorder()
			h.Browse(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body)
			}
			if tt.wantStatus != http.StatusOK && w.Header().Get("Content-Type") != "application/problem+json" {
				t.Errorf("error Content-Type = %q, want problem+json", w.Header().Get("Content-Type"))
			}
		})
	}

	t.Run("contents include the file", func(t *testing.T) {
		r := authedRequest(http.MethodGet, "/api/browse/Reports/2024", "u1", nil)
		r.SetPathValue("path", "Reports/2024")
		w := httptest.NewRecorder()
		h.Browse(w, r)

		var contents services.FolderContents
		if err := json.Unmarshal(w.Body.Bytes(), &contents); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(contents.Files) != 1 || contents.Files[0].Name != "q1.pdf" {
			t.Errorf("files = %+v, want [q1.pdf]", contents.Files)
		}
	})
}

func TestCreateFolderHandler(t *testing.T) {
	tree := newFakeTree()

	t.Run("created", func(t *testing.T) {
		h := NewFolderHandler(&fakeFolderService{tree: tree}, testLogger())
		body := strings.NewReader(`{"name":"Photos"}`)
		w := httptest.NewRecorder()
		h.CreateFolder(w, authedRequest(http.MethodPost, "/api/folders", "u1", body))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body)
		}
	})

	t.Run("duplicate reports the existing slug", func(t *testing.T) {
		h := NewFolderHandler(&fakeFolderService{
			tree:      tree,
			createErr: newConflict("folder", "f-root", "reports"),
		}, testLogger())
		body := strings.NewReader(`{"name":"Reports"}`)
		w := httptest.NewRecorder()
		h.CreateFolder(w, authedRequest(http.MethodPost, "/api/folders", "u1", body))

		if w.Code != http.StatusConflict {
			t.Fatalf("status = %d, want 409; body %s", w.Code, w.Body)
		}
		var problem map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if problem["slug"] != "reports" || problem["resource_id"] != "f-root" {
			t.Errorf("conflict extras = %v, want slug/resource_id of the winner", problem)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewFolderHandler(&fakeFolderService{tree: tree}, testLogger())
		w := httptest.NewRecorder()
		h.CreateFolder(w, authedRequest(http.MethodPost, "/api/folders", "u1", strings.NewReader("{")))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestDeleteFolderHandler(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		body       string
		wantStatus int
	}{
		{name: "owner deletes", userID: "u1", body: `{"folder_id":"f-root"}`, wantStatus: http.StatusNoContent},
		{name: "non-owner forbidden", userID: "u2", body: `{"folder_id":"f-root"}`, wantStatus: http.StatusForbidden},
		{name: "unknown folder", userID: "u1", body: `{"folder_id":"f-missing"}`, wantStatus: http.StatusNotFound},
		{name: "missing folder_id", userID: "u1", body: `{}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeFolderService{tree: newFakeTree()}
			h := NewFolderHandler(svc, testLogger())
			w := httptest.NewRecorder()
			h.DeleteFolder(w, authedRequest(http.MethodPost, "/api/folders/delete", tt.userID, strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body %s", w.Code, tt.wantStatus, w.Body)
			}
			if tt.wantStatus != http.StatusNoContent && len(svc.deleted) != 0 {
				t.Errorf("folder deleted despite %d response", tt.wantStatus)
			}
		})
	}
}

func TestUploadHandler(t *testing.T) {
	tree := newFakeTree()
	h := NewFileHandler(&fakeFileService{tree: tree}, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

	t.Run("multipart upload", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "memo.txt")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write([]byte("hello"))
		mw.Close()

		r := authedRequest(http.MethodPost, "/api/upload/Reports/2024", "u1", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		r.SetPathValue("path", "Reports/2024")
		w := httptest.NewRecorder()
		h.Upload(w, r)

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body)
		}
		if !strings.Contains(w.Body.String(), "memo.txt") {
			t.Errorf("body %s missing uploaded file name", w.Body)
		}
	})

	t.Run("missing file field", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		mw.WriteField("note", "no file here")
		mw.Close()

		r := authedRequest(http.MethodPost, "/api/upload/Reports/2024", "u1", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		r.SetPathValue("path", "Reports/2024")
		w := httptest.NewRecorder()
		h.Upload(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("unknown folder path", func(t *testing.T) {
		r := authedRequest(http.MethodPost, "/api/upload/Nope", "u1", strings.NewReader(""))
		r.SetPathValue("path", "Nope")
		w := httptest.NewRecorder()
		h.Upload(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})
}

func TestCreateFileHandler(t *testing.T) {
	tree := newFakeTree()
	h := NewFileHandler(&fakeFileService{tree: tree}, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

	body := strings.NewReader(`{"folder_path":"Reports/2024","name":"ext.pdf","physical_ref":"https://elsewhere.example/ext.pdf"}`)
	w := httptest.NewRecorder()
	h.CreateFile(w, authedRequest(http.MethodPost, "/api/files", "u1", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body)
	}
	if !strings.Contains(w.Body.String(), "ext.pdf") {
		t.Errorf("body %s missing created file", w.Body)
	}
}

func TestDeleteFileHandler(t *testing.T) {
	t.Run("by id", func(t *testing.T) {
		tree := newFakeTree()
		svc := &fakeFileService{tree: tree}
		h := NewFileHandler(svc, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

		w := httptest.NewRecorder()
		h.DeleteFile(w, authedRequest(http.MethodPost, "/api/files/delete", "u1", strings.NewReader(`{"file_id":"d-1"}`)))

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204; body %s", w.Code, w.Body)
		}
		if len(svc.deleted) != 1 {
			t.Error("file service never saw the delete")
		}
	})

	t.Run("by path", func(t *testing.T) {
		tree := newFakeTree()
		svc := &fakeFileService{tree: tree}
		h := NewFileHandler(svc, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

		body := strings.NewReader(`{"folder_path":"Reports/2024","file_name":"q1.pdf"}`)
		w := httptest.NewRecorder()
		h.DeleteFile(w, authedRequest(http.MethodPost, "/api/files/delete", "u1", body))

		if w.Code != http.StatusNoContent {
			t.Fatalf("status = %d, want 204; body %s", w.Code, w.Body)
		}
	})

	t.Run("neither id nor path", func(t *testing.T) {
		tree := newFakeTree()
		h := NewFileHandler(&fakeFileService{tree: tree}, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

		w := httptest.NewRecorder()
		h.DeleteFile(w, authedRequest(http.MethodPost, "/api/files/delete", "u1", strings.NewReader(`{}`)))

		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("other user forbidden", func(t *testing.T) {
		tree := newFakeTree()
		h := NewFileHandler(&fakeFileService{tree: tree}, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

		w := httptest.NewRecorder()
		h.DeleteFile(w, authedRequest(http.MethodPost, "/api/files/delete", "u2", strings.NewReader(`{"file_id":"d-1"}`)))

		if w.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", w.Code)
		}
	})
}

func TestDownloadHandler(t *testing.T) {
	tree := newFakeTree()
	h := NewFileHandler(&fakeFileService{tree: tree}, &fakeResolver{tree: tree}, &fakeAuthorizer{tree: tree}, testLogger())

	r := authedRequest(http.MethodGet, "/api/files/d-1/download", "u1", nil)
	r.SetPathValue("id", "d-1")
	w := httptest.NewRecorder()
	h.Download(w, r)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302; body %s", w.Code, w.Body)
	}
	if loc := w.Header().Get("Location"); loc != "https://blob.example/q1.pdf" {
		t.Errorf("Location = %q, want the physical ref", loc)
	}
}

func TestShareHandlers(t *testing.T) {
	tree := newFakeTree()
	h := NewShareHandler(&fakeShareService{tree: tree}, testLogger())

	t.Run("issue", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Issue(w, authedRequest(http.MethodPost, "/api/shares", "u1", nil))

		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201; body %s", w.Code, w.Body)
		}
		if !strings.Contains(w.Body.String(), "good-token") {
			t.Errorf("body %s missing issued token", w.Body)
		}
	})

	t.Run("redeem plants cookie and redirects", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/share/good-token", nil)
		r.SetPathValue("token", "good-token")
		w := httptest.NewRecorder()
		h.Redeem(w, r)

		if w.Code != http.StatusFound {
			t.Fatalf("status = %d, want 302; body %s", w.Code, w.Body)
		}
		if loc := w.Header().Get("Location"); loc != "/api/browse/" {
			t.Errorf("Location = %q, want /api/browse/", loc)
		}

		var cookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			if c.Name == middleware.ShareCookieName {
				cookie = c
			}
		}
		if cookie == nil || cookie.Value != "good-token" {
			t.Fatalf("share cookie = %+v, want value good-token", cookie)
		}
		if !cookie.HttpOnly {
			t.Error("share cookie must be HttpOnly")
		}
	})

	t.Run("redeem rejects bad token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/share/bogus", nil)
		r.SetPathValue("token", "bogus")
		w := httptest.NewRecorder()
		h.Redeem(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401; body %s", w.Code, w.Body)
		}
	})
}

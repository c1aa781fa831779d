package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/quirelabs/quire/internal/api"
	"github.com/quirelabs/quire/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := api.NewService(testutil.TestManager(t))
	srv := httptest.NewServer(api.NewRouter(svc, false, ""))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestCreateAndGetNote(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{
		Title:   "First",
		Content: "hello world",
		Tags:    []string{"greeting"},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decode[api.NoteDetail](t, resp)
	if created.ID != 1 || created.WordCount != 2 {
		t.Errorf("created = %+v", created)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "greeting" {
		t.Errorf("tags = %v", created.Tags)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d", resp.StatusCode)
	}
	got := decode[api.NoteDetail](t, resp)
	if got.Content != "hello world" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestUpdateNoteRecordsVersion(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{Title: "n", Content: "v0"})

	resp := doJSON(t, http.MethodPut, srv.URL+"/notes/1", api.UpdateNoteRequest{Content: "v1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d", resp.StatusCode)
	}
	updated := decode[api.NoteDetail](t, resp)
	if updated.Content != "v1" || updated.VersionCount != 1 {
		t.Errorf("updated = %+v", updated)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1/versions", nil)
	versions := decode[[]api.VersionInfo](t, resp)
	if len(versions) != 1 || versions[0].Content != "v0" {
		t.Errorf("versions = %+v", versions)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/notes/1/revert", map[string]int{"index": 0})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("revert status = %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1", nil)
	if got := decode[api.NoteDetail](t, resp); got.Content != "v0" || got.VersionCount != 2 {
		t.Errorf("after revert = %+v", got)
	}
}

func TestFolderListing(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/folders", api.CreateFolderRequest{Name: "work"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create folder status = %d", resp.StatusCode)
	}
	created := decode[api.FolderSummary](t, resp)
	doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{FolderID: created.ID, Title: "inside"})

	resp = doJSON(t, http.MethodGet, srv.URL+"/folders/1", nil)
	root := decode[api.FolderListing](t, resp)
	if root.Path != "/" || len(root.Folders) != 1 || root.Folders[0].Name != "work" {
		t.Errorf("root listing = %+v", root)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/folders/"+strconv.Itoa(created.ID), nil)
	work := decode[api.FolderListing](t, resp)
	if work.Path != "/work" || len(work.Notes) != 1 || work.Notes[0].Title != "inside" {
		t.Errorf("work listing = %+v", work)
	}
}

func TestTrashRestoreFlow(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{Title: "doomed"})

	resp := doJSON(t, http.MethodDelete, srv.URL+"/notes/1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/trash", nil)
	trash := decode[api.TrashListing](t, resp)
	if len(trash.Notes) != 1 || !trash.Notes[0].Trashed {
		t.Fatalf("trash listing = %+v", trash)
	}

	resp = doJSON(t, http.MethodPost, srv.URL+"/trash/restore", map[string]any{"id": 1, "kind": "note"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("restore status = %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1", nil)
	if got := decode[api.NoteDetail](t, resp); got.Trashed {
		t.Error("note still marked trashed after restore")
	}

	doJSON(t, http.MethodDelete, srv.URL+"/notes/1", nil)
	resp = doJSON(t, http.MethodDelete, srv.URL+"/trash", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("empty trash status = %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("purged note status = %d", resp.StatusCode)
	}
}

func TestSearchEndpoint(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{Title: "a", Content: "alpha text", Tags: []string{"x"}})
	doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{Title: "b", Content: "beta text", Tags: []string{"x", "y"}})

	resp := doJSON(t, http.MethodGet, srv.URL+"/search?q=alpha", nil)
	hits := decode[[]api.NoteSummary](t, resp)
	if len(hits) != 1 || hits[0].Title != "a" {
		t.Errorf("keyword hits = %+v", hits)
	}

	// Keyword match is case-sensitive.
	resp = doJSON(t, http.MethodGet, srv.URL+"/search?q=Alpha", nil)
	if hits = decode[[]api.NoteSummary](t, resp); len(hits) != 0 {
		t.Errorf("case-insensitive match leaked: %+v", hits)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/search?tag=x&tag=y", nil)
	if hits = decode[[]api.NoteSummary](t, resp); len(hits) != 1 || hits[0].Title != "b" {
		t.Errorf("tag hits = %+v", hits)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/search?from=not-a-date", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date status = %d", resp.StatusCode)
	}
}

func TestErrorStatusMapping(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/folders", api.CreateFolderRequest{Name: "dup"})

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing note", http.MethodGet, "/notes/99", nil, http.StatusNotFound},
		{"duplicate folder", http.MethodPost, "/folders", api.CreateFolderRequest{Name: "dup"}, http.StatusConflict},
		{"cycle move", http.MethodPost, "/folders/3/move", map[string]int{"parent_id": 3}, http.StatusConflict},
		{"bad id", http.MethodGet, "/notes/abc", nil, http.StatusBadRequest},
		{"missing title", http.MethodPost, "/notes", api.CreateNoteRequest{}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, tc.method, srv.URL+tc.path, tc.body)
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	svc := api.NewService(testutil.TestManager(t))
	srv := httptest.NewServer(api.NewRouter(svc, true, "s3cret"))
	defer srv.Close()

	resp := doJSON(t, http.MethodGet, srv.URL+"/tags", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no token status = %d", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/tags", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d", resp.StatusCode)
	}

	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/tags", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid token status = %d", resp.StatusCode)
	}
}

func TestExportFormats(t *testing.T) {
	srv := newTestServer(t)
	doJSON(t, http.MethodPost, srv.URL+"/notes", api.CreateNoteRequest{Title: "Exported", Content: "body"})

	resp := doJSON(t, http.MethodGet, srv.URL+"/notes/1/export", nil)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("default content type = %q", ct)
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1/export?format=json", nil)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("json content type = %q", ct)
	}
	exported := decode[map[string]any](t, resp)
	if exported["title"] != "Exported" {
		t.Errorf("exported title = %v", exported["title"])
	}

	resp = doJSON(t, http.MethodGet, srv.URL+"/notes/1/export?format=html", nil)
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("html content type = %q", ct)
	}
}

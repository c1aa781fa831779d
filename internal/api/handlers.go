package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/quirelabs/quire/internal/apperr"
	"github.com/quirelabs/quire/internal/notes"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// idParam extracts the {id} URL parameter as an int.
func idParam(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

// writeDomainErr maps domain errors to HTTP status codes.
func writeDomainErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	case errors.Is(err, apperr.ErrDuplicateName):
		writeJSON(w, http.StatusConflict, errorBody("name already in use"))
	case errors.Is(err, apperr.ErrCycle):
		writeJSON(w, http.StatusConflict, errorBody("move would create a cycle"))
	case errors.Is(err, apperr.ErrOriginalParentGone):
		writeJSON(w, http.StatusConflict, errorBody("original parent is gone"))
	case errors.Is(err, apperr.ErrVersionOutOfRange):
		writeJSON(w, http.StatusBadRequest, errorBody("version index out of range"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// CreateFolder handles POST /api/folders.
//
//	@Summary	Create a folder
//	@Tags		folders
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateFolderRequest	true	"Folder to create"
//	@Success	201		{object}	FolderSummary
//	@Failure	409		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/folders [post]
func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if req.ParentID == 0 {
		req.ParentID = h.svc.ActiveRoot()
	}
	id, err := h.svc.CreateFolder(req.ParentID, req.Name)
	if err != nil {
		writeDomainErr(w, "create folder", err)
		return
	}
	writeJSON(w, http.StatusCreated, FolderSummary{ID: id, Name: req.Name})
}

// GetFolder handles GET /api/folders/{id}.
//
//	@Summary	List a folder's direct contents
//	@Tags		folders
//	@Produce	json
//	@Param		id	path		int	true	"Folder id"
//	@Success	200	{object}	FolderListing
//	@Failure	404	{object}	errResponse
//	@Security	BearerAuth
//	@Router		/folders/{id} [get]
func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid folder id"))
		return
	}
	listing, err := h.svc.ListFolder(id)
	if err != nil {
		writeDomainErr(w, "get folder", err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

// MoveFolder handles POST /api/folders/{id}/move.
//
//	@Summary	Move a folder under a new parent
//	@Tags		folders
//	@Accept		json
//	@Param		id		path	int	true	"Folder id"
//	@Success	204		"Folder moved"
//	@Failure	409		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/folders/{id}/move [post]
func (h *Handler) MoveFolder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid folder id"))
		return
	}
	var req struct {
		ParentID int `json:"parent_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.MoveFolder(id, req.ParentID); err != nil {
		writeDomainErr(w, "move folder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RenameFolder handles POST /api/folders/{id}/rename.
//
//	@Summary	Rename a folder
//	@Tags		folders
//	@Accept		json
//	@Param		id	path	int	true	"Folder id"
//	@Success	204	"Folder renamed"
//	@Failure	409	{object}	errResponse
//	@Security	BearerAuth
//	@Router		/folders/{id}/rename [post]
func (h *Handler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid folder id"))
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}
	if err := h.svc.RenameFolder(id, req.Name); err != nil {
		writeDomainErr(w, "rename folder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteFolder handles DELETE /api/folders/{id}.
//
//	@Summary	Move a folder to trash, or purge it with ?permanent=true
//	@Tags		folders
//	@Param		id			path	int		true	"Folder id"
//	@Param		permanent	query	bool	false	"Purge instead of trashing"
//	@Success	204			"Folder deleted"
//	@Failure	404			{object}	errResponse
//	@Security	BearerAuth
//	@Router		/folders/{id} [delete]
func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid folder id"))
		return
	}
	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.svc.DeleteFolder(id, permanent); err != nil {
		writeDomainErr(w, "delete folder", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateNote handles POST /api/notes.
//
//	@Summary	Create a note
//	@Tags		notes
//	@Accept		json
//	@Produce	json
//	@Param		body	body		CreateNoteRequest	true	"Note to create"
//	@Success	201		{object}	NoteDetail
//	@Failure	404		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	if req.FolderID == 0 {
		req.FolderID = h.svc.ActiveRoot()
	}
	id, err := h.svc.CreateNote(req.FolderID, req.Title, req.Content, req.Tags)
	if err != nil {
		writeDomainErr(w, "create note", err)
		return
	}
	detail, err := h.svc.GetNote(id)
	if err != nil {
		writeDomainErr(w, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, detail)
}

// GetNote handles GET /api/notes/{id}.
//
//	@Summary	Get a single note by id
//	@Tags		notes
//	@Produce	json
//	@Param		id	path		int	true	"Note id"
//	@Success	200	{object}	NoteDetail
//	@Failure	404	{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notes/{id} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	detail, err := h.svc.GetNote(id)
	if err != nil {
		writeDomainErr(w, "get note", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// UpdateNote handles PUT /api/notes/{id}.
//
//	@Summary	Overwrite a note's content (previous content is snapshotted)
//	@Tags		notes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"Note id"
//	@Param		body	body		UpdateNoteRequest	true	"New content"
//	@Success	200		{object}	NoteDetail
//	@Failure	404		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.EditNote(id, req.Content); err != nil {
		writeDomainErr(w, "update note", err)
		return
	}
	detail, err := h.svc.GetNote(id)
	if err != nil {
		writeDomainErr(w, "update note", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// RenameNote handles POST /api/notes/{id}/rename.
func (h *Handler) RenameNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}
	if err := h.svc.RenameNote(id, req.Title); err != nil {
		writeDomainErr(w, "rename note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveNote handles POST /api/notes/{id}/move.
func (h *Handler) MoveNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req struct {
		FolderID int `json:"folder_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.MoveNote(id, req.FolderID); err != nil {
		writeDomainErr(w, "move note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteNote handles DELETE /api/notes/{id}.
//
//	@Summary	Move a note to trash, or purge it with ?permanent=true
//	@Tags		notes
//	@Param		id			path	int		true	"Note id"
//	@Param		permanent	query	bool	false	"Purge instead of trashing"
//	@Success	204			"Note deleted"
//	@Failure	404			{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	permanent := r.URL.Query().Get("permanent") == "true"
	if err := h.svc.DeleteNote(id, permanent); err != nil {
		writeDomainErr(w, "delete note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TagNote handles POST /api/notes/{id}/tags.
func (h *Handler) TagNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req struct {
		Tag string `json:"tag"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("tag is required"))
		return
	}
	if err := h.svc.TagNote(id, req.Tag); err != nil {
		writeDomainErr(w, "tag note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UntagNote handles DELETE /api/notes/{id}/tags/{tag}.
func (h *Handler) UntagNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	tag := chi.URLParam(r, "tag")
	if err := h.svc.UntagNote(id, tag); err != nil {
		writeDomainErr(w, "untag note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Versions handles GET /api/notes/{id}/versions.
//
//	@Summary	List a note's version history, oldest first
//	@Tags		notes
//	@Produce	json
//	@Param		id	path		int	true	"Note id"
//	@Success	200	{array}		VersionInfo
//	@Failure	404	{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notes/{id}/versions [get]
func (h *Handler) Versions(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	versions, err := h.svc.Versions(id)
	if err != nil {
		writeDomainErr(w, "list versions", err)
		return
	}
	writeJSON(w, http.StatusOK, versions)
}

// RevertNote handles POST /api/notes/{id}/revert.
func (h *Handler) RevertNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.svc.RevertNote(id, req.Index); err != nil {
		writeDomainErr(w, "revert note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportNote handles GET /api/notes/{id}/export.
//
//	@Summary	Render a note as markdown, JSON or HTML
//	@Tags		notes
//	@Produce	plain
//	@Param		id		path	int		true	"Note id"
//	@Param		format	query	string	false	"Export format"	Enums(md, json, html)
//	@Success	200		{string}	string
//	@Failure	404		{object}	errResponse
//	@Security	BearerAuth
//	@Router		/notes/{id}/export [get]
func (h *Handler) ExportNote(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid note id"))
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "md"
	}
	out, err := h.svc.ExportNote(id, format)
	if err != nil {
		writeDomainErr(w, "export note", err)
		return
	}
	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	case "html":
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	}
	w.Write([]byte(out))
}

// Search handles GET /api/search.
//
//	@Summary	Search notes by keyword, tags and date range
//	@Tags		search
//	@Produce	json
//	@Param		q		query		string	false	"Case-sensitive substring"
//	@Param		tag		query		[]string	false	"Tags (all must match)"
//	@Param		from	query		string	false	"Start date (YYYY-MM-DD)"
//	@Param		to		query		string	false	"End date (YYYY-MM-DD)"
//	@Param		scope	query		string	false	"Search scope"	Enums(active, trash, all)
//	@Success	200		{array}		NoteSummary
//	@Security	BearerAuth
//	@Router		/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := notes.Criteria{
		Keyword: q.Get("q"),
		Tags:    q["tag"],
		Scope:   notes.ScopeActive,
	}
	switch q.Get("scope") {
	case "trash":
		c.Scope = notes.ScopeTrash
	case "all":
		c.Scope = notes.ScopeBoth
	}
	if from := q.Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid from date"))
			return
		}
		c.From = t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid to date"))
			return
		}
		// Make the end of range inclusive for the whole day.
		c.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	writeJSON(w, http.StatusOK, h.svc.Search(c))
}

// Tags handles GET /api/tags.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ActiveTags())
}

// Trash handles GET /api/trash.
func (h *Handler) Trash(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Trash())
}

// Restore handles POST /api/trash/restore.
//
//	@Summary	Restore a trashed item to its original parent
//	@Tags		trash
//	@Accept		json
//	@Success	204	"Item restored"
//	@Failure	409	{object}	errResponse
//	@Security	BearerAuth
//	@Router		/trash/restore [post]
func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID   int    `json:"id"`
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Kind != "note" && req.Kind != "folder" {
		writeJSON(w, http.StatusBadRequest, errorBody("kind must be note or folder"))
		return
	}
	if err := h.svc.Restore(req.ID, req.Kind == "note"); err != nil {
		writeDomainErr(w, "restore item", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// EmptyTrash handles DELETE /api/trash.
func (h *Handler) EmptyTrash(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.EmptyTrash(); err != nil {
		writeDomainErr(w, "empty trash", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

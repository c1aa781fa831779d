package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Folder tree.
	r.Post("/folders", h.CreateFolder)
	r.Get("/folders/{id}", h.GetFolder)
	r.Post("/folders/{id}/move", h.MoveFolder)
	r.Post("/folders/{id}/rename", h.RenameFolder)
	r.Delete("/folders/{id}", h.DeleteFolder)

	// Notes.
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{id}", h.GetNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Post("/notes/{id}/rename", h.RenameNote)
	r.Post("/notes/{id}/move", h.MoveNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	r.Post("/notes/{id}/tags", h.TagNote)
	r.Delete("/notes/{id}/tags/{tag}", h.UntagNote)
	r.Get("/notes/{id}/versions", h.Versions)
	r.Post("/notes/{id}/revert", h.RevertNote)
	r.Get("/notes/{id}/export", h.ExportNote)

	// Search and tags.
	r.Get("/search", h.Search)
	r.Get("/tags", h.Tags)

	// Trash.
	r.Get("/trash", h.Trash)
	r.Post("/trash/restore", h.Restore)
	r.Delete("/trash", h.EmptyTrash)

	return r
}

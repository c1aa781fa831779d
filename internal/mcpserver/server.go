// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Quire tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quirelabs/quire/internal/api"
	"github.com/quirelabs/quire/internal/notes"
)

// Server wraps the MCP server with Quire tools.
type Server struct {
	mcp *server.MCPServer
	svc *api.Service
}

// New creates a new MCP server with all Quire tools registered.
func New(svc *api.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Quire",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Search note titles and content. The keyword match is a "+
			"case-sensitive substring; tags must all be present."),
		mcp.WithString("query", mcp.Description("Substring to match in titles and content")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag names; all must match")),
		mcp.WithString("scope", mcp.Description("Where to search: active (default), trash, or all")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note by id, including its tags and metadata."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Numeric note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note inside a folder given by path. "+
			"Content is the Markdown body; read the get_note_contract tool or the "+
			"quire://note-format resource for the stored file format."),
		mcp.WithString("folder", mcp.Required(), mcp.Description("Folder path, e.g. /projects/ideas")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Markdown body")),
		mcp.WithString("tags", mcp.Description("Comma-separated tag names")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("list_folder",
		mcp.WithDescription("List the notes and subfolders directly inside a folder."),
		mcp.WithString("folder", mcp.Description("Folder path (empty for the root)")),
	), s.listFolder)

	s.mcp.AddTool(mcp.NewTool("list_trash",
		mcp.WithDescription("List the items currently in the trash."),
	), s.listTrash)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the canonical Quire note format contract. "+
			"Call this before creating notes to understand how they are stored."),
	), s.getNoteContract)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("quire://note-format", "Note Format Contract",
			mcp.WithResourceDescription("Canonical on-disk note format."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := notes.Criteria{
		Keyword: req.GetString("query", ""),
		Tags:    splitTags(req.GetString("tags", "")),
		Scope:   notes.ScopeActive,
	}
	switch req.GetString("scope", "") {
	case "trash":
		c.Scope = notes.ScopeTrash
	case "all":
		c.Scope = notes.ScopeBoth
	}
	results := s.svc.Search(c)
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	detail, err := s.svc.GetNote(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("note %d: %v", id, err)), nil
	}
	out, _ := json.MarshalIndent(detail, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder, err := req.RequireString("folder")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content := req.GetString("content", "")

	folderID, err := s.svc.ResolveFolderPath(folder)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("folder %q: %v", folder, err)), nil
	}
	id, err := s.svc.CreateNote(folderID, title, content, splitTags(req.GetString("tags", "")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created note %d", id)), nil
}

func (s *Server) listFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := req.GetString("folder", "/")
	if folder == "" {
		folder = "/"
	}
	folderID, err := s.svc.ResolveFolderPath(folder)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("folder %q: %v", folder, err)), nil
	}
	listing, err := s.svc.ListFolder(folderID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(listing, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTrash(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.svc.Trash(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getNoteContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "quire://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}

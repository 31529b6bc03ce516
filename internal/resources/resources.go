// Package resources exposes notes as MCP resources.
//
// Each note is addressed as note:///<id> and served as text/plain.
package resources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kamekamek/coze-workflow-server/internal/mcperr"
	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/mark3labs/mcp-go/mcp"
)

// MIMEType is the content type of every note resource.
const MIMEType = "text/plain"

// NoteURI returns the resource URI for a note id.
func NoteURI(id string) string {
	return "note:///" + id
}

// noteID extracts the note id from the path of uri, dropping one leading
// slash. The scheme is not checked.
func noteID(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(u.Path, "/"), nil
}

// Handler serves note resources.
type Handler struct {
	store notes.Store
}

// NewHandler creates a resource Handler reading from store.
func NewHandler(store notes.Store) *Handler {
	return &Handler{store: store}
}

// List returns one resource per note, in store order.
func (h *Handler) List(ctx context.Context) ([]mcp.Resource, error) {
	all, err := h.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	out := make([]mcp.Resource, 0, len(all))
	for _, n := range all {
		out = append(out, mcp.NewResource(
			NoteURI(n.ID),
			n.Title,
			mcp.WithResourceDescription("A text note: "+n.Title),
			mcp.WithMIMEType(MIMEType),
		))
	}
	return out, nil
}

// Read returns the content of the note addressed by the request URI.
func (h *Handler) Read(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	id, err := noteID(uri)
	if err != nil {
		return nil, mcperr.InvalidRequest(fmt.Sprintf("Invalid note URI: %s", uri))
	}

	note, err := h.store.Get(ctx, id)
	if errors.Is(err, notes.ErrNotFound) {
		return nil, mcperr.InvalidRequest(fmt.Sprintf("Note %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", id, err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: MIMEType,
			Text:     note.Content,
		},
	}, nil
}

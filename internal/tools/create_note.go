package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/kamekamek/coze-workflow-server/internal/mcperr"
	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateNoteTool handles the create_note MCP tool.
type CreateNoteTool struct {
	store notes.Store
}

// NewCreateNoteTool creates a CreateNoteTool writing to store.
func NewCreateNoteTool(store notes.Store) *CreateNoteTool {
	return &CreateNoteTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *CreateNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the note"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text content of the note"),
		),
	)
}

// Handle processes the create_note tool call.
func (t *CreateNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := bindArguments(req, &args); err != nil {
		return nil, err
	}
	if args.Title == "" || args.Content == "" {
		return nil, mcperr.InvalidParams("Title and content are required")
	}

	id, err := t.store.Create(ctx, args.Title, args.Content)
	if errors.Is(err, notes.ErrInvalidNote) {
		return nil, mcperr.InvalidParams("Title and content are required")
	}
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Created note %s: %s", id, args.Title)), nil
}

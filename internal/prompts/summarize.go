// Package prompts implements the MCP prompt handlers.
package prompts

import (
	"context"
	"fmt"

	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/kamekamek/coze-workflow-server/internal/resources"
	"github.com/mark3labs/mcp-go/mcp"
)

// SummarizeNotesPrompt handles the summarize_notes MCP prompt.
// It embeds every note as a resource between two instruction messages.
type SummarizeNotesPrompt struct {
	store notes.Store
}

// NewSummarizeNotesPrompt creates a SummarizeNotesPrompt reading from store.
func NewSummarizeNotesPrompt(store notes.Store) *SummarizeNotesPrompt {
	return &SummarizeNotesPrompt{store: store}
}

// Definition returns the MCP prompt definition for registration.
func (p *SummarizeNotesPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("summarize_notes",
		mcp.WithPromptDescription("Summarize all notes"),
	)
}

// Handle builds the message sequence: an opening instruction, one embedded
// resource per note, and a closing instruction.
func (p *SummarizeNotesPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	all, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}

	messages := make([]mcp.PromptMessage, 0, len(all)+2)
	messages = append(messages, mcp.PromptMessage{
		Role:    mcp.RoleUser,
		Content: mcp.NewTextContent("Please summarize the following notes:"),
	})
	for _, n := range all {
		messages = append(messages, mcp.PromptMessage{
			Role: mcp.RoleUser,
			Content: mcp.NewEmbeddedResource(mcp.TextResourceContents{
				URI:      resources.NoteURI(n.ID),
				MIMEType: resources.MIMEType,
				Text:     n.Content,
			}),
		})
	}
	messages = append(messages, mcp.PromptMessage{
		Role:    mcp.RoleUser,
		Content: mcp.NewTextContent("Provide a concise summary of all the notes above."),
	})

	return &mcp.GetPromptResult{Messages: messages}, nil
}

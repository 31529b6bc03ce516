package prompts

import (
	"context"
	"testing"

	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrompt(t *testing.T, seed []notes.Draft) *SummarizeNotesPrompt {
	t.Helper()
	store, err := notes.New(seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return NewSummarizeNotesPrompt(store)
}

func messageText(t *testing.T, m mcp.PromptMessage) string {
	t.Helper()
	tc, ok := m.Content.(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", m.Content)
	return tc.Text
}

func TestSummarizeNotes_Definition(t *testing.T) {
	def := newTestPrompt(t, nil).Definition()
	assert.Equal(t, "summarize_notes", def.Name)
	assert.Equal(t, "Summarize all notes", def.Description)
	assert.Empty(t, def.Arguments)
}

func TestSummarizeNotes_Messages(t *testing.T) {
	result, err := newTestPrompt(t, notes.Seed).Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)

	msgs := result.Messages
	require.Len(t, msgs, 4)

	for _, m := range msgs {
		assert.Equal(t, mcp.RoleUser, m.Role)
	}
	assert.Equal(t, "Please summarize the following notes:", messageText(t, msgs[0]))
	assert.Equal(t, "Provide a concise summary of all the notes above.", messageText(t, msgs[3]))

	for i, want := range []struct{ uri, text string }{
		{"note:///1", "This is note 1"},
		{"note:///2", "This is note 2"},
	} {
		er, ok := msgs[i+1].Content.(mcp.EmbeddedResource)
		require.True(t, ok, "message %d: got %T", i+1, msgs[i+1].Content)

		res, ok := er.Resource.(mcp.TextResourceContents)
		require.True(t, ok, "message %d: got %T", i+1, er.Resource)
		assert.Equal(t, want.uri, res.URI)
		assert.Equal(t, "text/plain", res.MIMEType)
		assert.Equal(t, want.text, res.Text)
	}
}

func TestSummarizeNotes_NoNotes(t *testing.T) {
	result, err := newTestPrompt(t, nil).Handle(context.Background(), mcp.GetPromptRequest{})
	require.NoError(t, err)
	require.Len(t, result.Messages, 2)
	assert.Equal(t, "Please summarize the following notes:", messageText(t, result.Messages[0]))
}

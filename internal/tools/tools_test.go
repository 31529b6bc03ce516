package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/kamekamek/coze-workflow-server/internal/coze"
	"github.com/kamekamek/coze-workflow-server/internal/mcperr"
	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test helpers ---

// newTestStore creates a seeded note store for one test.
func newTestStore(t *testing.T) *notes.SQLiteStore {
	t.Helper()
	store, err := notes.New(notes.Seed)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// requireCode asserts err is an *mcperr.Error with the given code.
func requireCode(t *testing.T, err error, code int) *mcperr.Error {
	t.Helper()
	var perr *mcperr.Error
	require.True(t, errors.As(err, &perr), "expected *mcperr.Error, got %T: %v", err, err)
	require.Equal(t, code, perr.Code)
	return perr
}

// fakeRunner records calls and returns a canned result.
type fakeRunner struct {
	calls  []coze.RunRequest
	result *coze.Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, req coze.RunRequest) (*coze.Result, error) {
	f.calls = append(f.calls, req)
	return f.result, f.err
}

// --- create_note ---

func TestCreateNoteTool_Definition(t *testing.T) {
	def := NewCreateNoteTool(newTestStore(t)).Definition()

	assert.Equal(t, "create_note", def.Name)
	assert.Equal(t, "Create a new note", def.Description)
	assert.Equal(t, "object", def.InputSchema.Type)
	assert.ElementsMatch(t, []string{"title", "content"}, def.InputSchema.Required)

	for _, name := range []string{"title", "content"} {
		prop, ok := def.InputSchema.Properties[name].(map[string]any)
		require.True(t, ok, "missing %q property", name)
		assert.Equal(t, "string", prop["type"])
	}
}

func TestCreateNoteTool_Creates(t *testing.T) {
	store := newTestStore(t)
	tool := NewCreateNoteTool(store)
	ctx := context.Background()

	result, err := tool.Handle(ctx, makeReq("create_note", map[string]any{
		"title":   "Groceries",
		"content": "milk, eggs",
	}))
	require.NoError(t, err)
	assert.Equal(t, "Created note 3: Groceries", resultText(result))
	assert.False(t, result.IsError)

	n, err := store.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs", n.Content)
}

func TestCreateNoteTool_RequiresTitleAndContent(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
	}{
		{"no arguments", nil},
		{"empty title", map[string]any{"title": "", "content": "x"}},
		{"empty content", map[string]any{"title": "x", "content": ""}},
		{"missing content", map[string]any{"title": "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			_, err := NewCreateNoteTool(store).Handle(context.Background(), makeReq("create_note", tt.args))

			perr := requireCode(t, err, mcp.INVALID_PARAMS)
			assert.Equal(t, "Title and content are required", perr.Message)

			list, err := store.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, list, 2, "note count must not change")
		})
	}
}

func TestCreateNoteTool_RejectsNonStringArguments(t *testing.T) {
	store := newTestStore(t)

	_, err := NewCreateNoteTool(store).Handle(context.Background(), makeReq("create_note", map[string]any{
		"title":   42,
		"content": "x",
	}))
	perr := requireCode(t, err, mcp.INVALID_PARAMS)
	assert.Contains(t, perr.Message, "Invalid arguments")

	list, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// --- run_coze_workflow ---

func TestRunWorkflowTool_Definition(t *testing.T) {
	def := NewRunWorkflowTool(&fakeRunner{}).Definition()

	assert.Equal(t, "run_coze_workflow", def.Name)
	assert.Equal(t, "Run a Coze workflow", def.Description)
	assert.ElementsMatch(t, []string{"workflow_id", "parameters"}, def.InputSchema.Required)

	types := map[string]string{
		"workflow_id": "string",
		"parameters":  "object",
		"bot_id":      "string",
		"app_id":      "string",
	}
	for name, want := range types {
		prop, ok := def.InputSchema.Properties[name].(map[string]any)
		require.True(t, ok, "missing %q property", name)
		assert.Equal(t, want, prop["type"], name)
	}
}

func TestRunWorkflowTool_RequiresWorkflowID(t *testing.T) {
	runner := &fakeRunner{}

	_, err := NewRunWorkflowTool(runner).Handle(context.Background(), makeReq("run_coze_workflow", map[string]any{
		"parameters": map[string]any{},
	}))
	perr := requireCode(t, err, mcp.INVALID_PARAMS)
	assert.Equal(t, "Workflow ID is required", perr.Message)
	assert.Empty(t, runner.calls, "no outbound call may be attempted")
}

func TestRunWorkflowTool_RejectsNonObjectParameters(t *testing.T) {
	runner := &fakeRunner{}

	_, err := NewRunWorkflowTool(runner).Handle(context.Background(), makeReq("run_coze_workflow", map[string]any{
		"workflow_id": "wf",
		"parameters":  "not an object",
	}))
	requireCode(t, err, mcp.INVALID_PARAMS)
	assert.Empty(t, runner.calls)
}

func TestRunWorkflowTool_ForwardsArguments(t *testing.T) {
	runner := &fakeRunner{result: &coze.Result{Outcome: coze.OutcomeSuccess, Body: []byte(`{}`)}}

	_, err := NewRunWorkflowTool(runner).Handle(context.Background(), makeReq("run_coze_workflow", map[string]any{
		"workflow_id": "wf-1",
		"app_id":      "app-2",
	}))
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, coze.RunRequest{WorkflowID: "wf-1", AppID: "app-2"}, runner.calls[0])
}

func TestRunWorkflowTool_Success(t *testing.T) {
	runner := &fakeRunner{result: &coze.Result{
		Outcome:  coze.OutcomeSuccess,
		Body:     []byte(`{"debug_url":"http://x"}`),
		DebugURL: "http://x",
	}}

	result, err := NewRunWorkflowTool(runner).Handle(context.Background(), makeReq("run_coze_workflow", map[string]any{
		"workflow_id": "wf-1",
		"parameters":  map[string]any{"q": "hi"},
	}))
	require.NoError(t, err)

	text := resultText(result)
	assert.Contains(t, text, "{\n  \"debug_url\": \"http://x\"\n}")
	assert.Contains(t, text, "Debug URL: http://x")
}

func TestRunWorkflowTool_UpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		outcome coze.Outcome
	}{
		{"api error", coze.OutcomeAPIError},
		{"transport error", coze.OutcomeTransportError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{result: &coze.Result{Outcome: tt.outcome, Message: "bad workflow"}}

			_, err := NewRunWorkflowTool(runner).Handle(context.Background(), makeReq("run_coze_workflow", map[string]any{
				"workflow_id": "wf-1",
			}))
			perr := requireCode(t, err, mcp.INTERNAL_ERROR)
			assert.Equal(t, "Coze API error: bad workflow", perr.Message)
		})
	}
}

func TestRunWorkflowTool_UnclassifiedErrorPropagates(t *testing.T) {
	cause := errors.New("encoding failed")
	runner := &fakeRunner{err: cause}

	_, err := NewRunWorkflowTool(runner).Handle(context.Background(), makeReq("run_coze_workflow", map[string]any{
		"workflow_id": "wf-1",
	}))
	require.ErrorIs(t, err, cause)

	var perr *mcperr.Error
	assert.False(t, errors.As(err, &perr), "unclassified errors must not be wrapped in a protocol error")
}

package tools

import (
	"context"
	"fmt"

	"github.com/kamekamek/coze-workflow-server/internal/coze"
	"github.com/kamekamek/coze-workflow-server/internal/mcperr"
	"github.com/mark3labs/mcp-go/mcp"
)

// WorkflowRunner runs a Coze workflow. *coze.Client satisfies it.
type WorkflowRunner interface {
	Run(ctx context.Context, req coze.RunRequest) (*coze.Result, error)
}

// RunWorkflowTool handles the run_coze_workflow MCP tool.
// It forwards the call to the Coze API and relays the result or error.
type RunWorkflowTool struct {
	runner WorkflowRunner
}

// NewRunWorkflowTool creates a RunWorkflowTool using runner.
func NewRunWorkflowTool(runner WorkflowRunner) *RunWorkflowTool {
	return &RunWorkflowTool{runner: runner}
}

// Definition returns the MCP tool definition for registration.
func (t *RunWorkflowTool) Definition() mcp.Tool {
	return mcp.NewTool("run_coze_workflow",
		mcp.WithDescription("Run a Coze workflow"),
		mcp.WithString("workflow_id",
			mcp.Required(),
			mcp.Description("ID of the workflow to run"),
		),
		mcp.WithObject("parameters",
			mcp.Required(),
			mcp.Description("Input parameters for the workflow"),
		),
		mcp.WithString("bot_id",
			mcp.Description("Associated Bot ID (optional)"),
		),
		mcp.WithString("app_id",
			mcp.Description("App ID (optional)"),
		),
	)
}

// Handle processes the run_coze_workflow tool call.
func (t *RunWorkflowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		WorkflowID string         `json:"workflow_id"`
		Parameters map[string]any `json:"parameters"`
		BotID      string         `json:"bot_id"`
		AppID      string         `json:"app_id"`
	}
	if err := bindArguments(req, &args); err != nil {
		return nil, err
	}
	if args.WorkflowID == "" {
		return nil, mcperr.InvalidParams("Workflow ID is required")
	}

	result, err := t.runner.Run(ctx, coze.RunRequest{
		WorkflowID: args.WorkflowID,
		Parameters: args.Parameters,
		BotID:      args.BotID,
		AppID:      args.AppID,
	})
	if err != nil {
		return nil, fmt.Errorf("running workflow %s: %w", args.WorkflowID, err)
	}

	switch result.Outcome {
	case coze.OutcomeSuccess:
		return mcp.NewToolResultText(result.Text()), nil
	case coze.OutcomeAPIError, coze.OutcomeTransportError:
		return nil, mcperr.Internal(result.ErrorMessage())
	default:
		return nil, fmt.Errorf("unexpected workflow outcome %s", result.Outcome)
	}
}

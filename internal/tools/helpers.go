// Package tools implements the MCP tool handlers.
//
// Each tool receives its dependencies via its struct and exposes
// Definition() for registration and Handle() for calls. Handlers report
// bad input as *mcperr.Error so the dispatcher can answer with the right
// JSON-RPC code.
package tools

import (
	"fmt"

	"github.com/kamekamek/coze-workflow-server/internal/mcperr"
	"github.com/mark3labs/mcp-go/mcp"
)

// bindArguments decodes the call arguments into dst. A value of the wrong
// JSON type fails with InvalidParams instead of being coerced.
func bindArguments(req mcp.CallToolRequest, dst any) error {
	if req.Params.Arguments == nil {
		return nil
	}
	if err := req.BindArguments(dst); err != nil {
		return mcperr.InvalidParams(fmt.Sprintf("Invalid arguments: %v", err))
	}
	return nil
}

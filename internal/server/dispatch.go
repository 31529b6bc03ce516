package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kamekamek/coze-workflow-server/internal/mcperr"
	"github.com/mark3labs/mcp-go/mcp"
)

// methodFunc handles one JSON-RPC method. A returned *mcperr.Error is
// written with its own code; any other error becomes an internal error.
type methodFunc func(ctx context.Context, params json.RawMessage) (any, error)

// request is the JSON-RPC envelope of an inbound message.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// HandleMessage answers one raw JSON-RPC message. It returns nil when no
// response is due (notifications).
//
// tools/call, resources/list, resources/read and prompts/get are answered
// here so handler errors keep their codes; everything else, including
// unparsable input, goes to mcp-go.
func (s *Server) HandleMessage(ctx context.Context, raw json.RawMessage) any {
	var req request
	if err := json.Unmarshal(raw, &req); err != nil || !hasID(req.ID) {
		return s.delegate(ctx, raw)
	}

	handle, ok := s.methods[req.Method]
	if !ok {
		return s.delegate(ctx, raw)
	}

	result, err := s.call(ctx, handle, req.Params)
	if err != nil {
		code, msg := mcperr.Classify(err)
		s.logger.Debug("Request failed", "method", req.Method, "code", code, "err", msg)
		return &response{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      req.ID,
			Error:   &rpcError{Code: code, Message: msg},
		}
	}
	return &response{JSONRPC: mcp.JSONRPC_VERSION, ID: req.ID, Result: result}
}

func (s *Server) delegate(ctx context.Context, raw json.RawMessage) any {
	resp := s.mcp.HandleMessage(ctx, raw)
	if resp == nil {
		return nil
	}
	return resp
}

// call runs handle, turning a panic into an internal error.
func (s *Server) call(ctx context.Context, handle methodFunc, params json.RawMessage) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Handler panicked", "panic", r)
			result, err = nil, mcperr.Internal(fmt.Sprintf("panic: %v", r))
		}
	}()
	return handle(ctx, params)
}

func hasID(id json.RawMessage) bool {
	return len(id) > 0 && string(id) != "null"
}

// decodeParams decodes params into dst, reporting failures as InvalidParams.
func decodeParams(params json.RawMessage, dst any) error {
	if len(params) == 0 {
		return mcperr.InvalidParams("Invalid params: missing")
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return mcperr.InvalidParams(fmt.Sprintf("Invalid params: %v", err))
	}
	return nil
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (any, error) {
	var req mcp.CallToolRequest
	if err := decodeParams(params, &req.Params); err != nil {
		return nil, err
	}
	handle, ok := s.tools[req.Params.Name]
	if !ok {
		return nil, mcperr.MethodNotFound("Unknown tool")
	}
	result, err := handle(ctx, req)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Server) listResources(ctx context.Context, _ json.RawMessage) (any, error) {
	list, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}
	return mcp.ListResourcesResult{Resources: list}, nil
}

func (s *Server) readResource(ctx context.Context, params json.RawMessage) (any, error) {
	var req mcp.ReadResourceRequest
	if err := decodeParams(params, &req.Params); err != nil {
		return nil, err
	}
	contents, err := s.resources.Read(ctx, req)
	if err != nil {
		return nil, err
	}
	return mcp.ReadResourceResult{Contents: contents}, nil
}

func (s *Server) getPrompt(ctx context.Context, params json.RawMessage) (any, error) {
	var req mcp.GetPromptRequest
	if err := decodeParams(params, &req.Params); err != nil {
		return nil, err
	}
	handle, ok := s.prompts[req.Params.Name]
	if !ok {
		return nil, mcperr.MethodNotFound("Unknown prompt")
	}
	result, err := handle(ctx, req)
	if err != nil {
		return nil, err
	}
	return result, nil
}

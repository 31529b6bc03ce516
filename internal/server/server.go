// Package server wires all MCP components and serves them over stdio.
//
// This is the composition root: it receives the concrete note store and
// workflow runner and injects them into the tools, prompts and resources.
// No business logic lives here, only wiring and dispatch.
package server

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/kamekamek/coze-workflow-server/internal/notes"
	"github.com/kamekamek/coze-workflow-server/internal/prompts"
	"github.com/kamekamek/coze-workflow-server/internal/resources"
	"github.com/kamekamek/coze-workflow-server/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Name is the server name reported during initialization.
const Name = "coze-workflow-server"

// Version is set at build time via ldflags.
var Version = "0.1.0"

// Server answers MCP requests for one note store and one workflow runner.
type Server struct {
	mcp       *server.MCPServer
	tools     map[string]server.ToolHandlerFunc
	prompts   map[string]server.PromptHandlerFunc
	resources *resources.Handler
	methods   map[string]methodFunc
	logger    *log.Logger
}

// New creates the server with every tool, prompt and resource registered.
// Tools and prompts are registered with mcp-go as well so its listing
// handlers see them; calls are routed by the dispatcher.
func New(store notes.Store, runner tools.WorkflowRunner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		mcp: server.NewMCPServer(
			Name,
			Version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
			server.WithPromptCapabilities(false),
		),
		tools:     make(map[string]server.ToolHandlerFunc),
		prompts:   make(map[string]server.PromptHandlerFunc),
		resources: resources.NewHandler(store),
		logger:    logger,
	}

	// --- Register tools ---

	createNote := tools.NewCreateNoteTool(store)
	s.addTool(createNote.Definition(), createNote.Handle)

	runWorkflow := tools.NewRunWorkflowTool(runner)
	s.addTool(runWorkflow.Definition(), runWorkflow.Handle)

	// --- Register prompts ---

	summarize := prompts.NewSummarizeNotesPrompt(store)
	s.addPrompt(summarize.Definition(), summarize.Handle)

	s.methods = map[string]methodFunc{
		string(mcp.MethodToolsCall):     s.callTool,
		string(mcp.MethodResourcesList): s.listResources,
		string(mcp.MethodResourcesRead): s.readResource,
		string(mcp.MethodPromptsGet):    s.getPrompt,
	}
	return s
}

func (s *Server) addTool(def mcp.Tool, h server.ToolHandlerFunc) {
	s.mcp.AddTool(def, h)
	s.tools[def.Name] = h
}

func (s *Server) addPrompt(def mcp.Prompt, h server.PromptHandlerFunc) {
	s.mcp.AddPrompt(def, h)
	s.prompts[def.Name] = h
}

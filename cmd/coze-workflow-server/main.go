// Coze Workflow MCP Server
//
// An MCP server on stdio that keeps an in-memory note store and proxies
// workflow runs to the Coze API.
//
// Usage:
//
//	coze-workflow-server            # Start MCP server (stdio transport)
//	coze-workflow-server serve      # Same as above
//	coze-workflow-server version    # Print the version
//
// COZE_API_TOKEN must be set in the environment.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		log.Error("Fatal", "err", err)
		os.Exit(1)
	}
}

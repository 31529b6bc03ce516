package main

import (
	"github.com/spf13/cobra"
)

// options holds the flags shared by the root and serve commands.
type options struct {
	configPath string
	logLevel   string
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server, since MCP hosts launch the binary bare.
func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "coze-workflow-server",
		Short: "MCP server for notes and Coze workflow runs",
		Long: `coze-workflow-server speaks MCP over stdio. It keeps an in-memory note store
and forwards run_coze_workflow calls to the Coze API using COZE_API_TOKEN.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the YAML config file (default $XDG_CONFIG_HOME/coze-workflow-server/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides the config file)")

	root.AddCommand(newServeCmd(opts), newVersionCmd())
	return root
}

package main

import (
	"fmt"

	"github.com/kamekamek/coze-workflow-server/internal/server"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of coze-workflow-server",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "coze-workflow-server v%s\n", server.Version)
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/sadopc/timefocus/internal/mcpserver"
)

func newMCPCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the task queue and timer as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			// stdout carries the protocol, so notices only go to the log.
			e.logNotices = true
			a, err := e.App(cmd)
			if err != nil {
				return err
			}
			s := mcpserver.NewServer(a)
			return mcpserver.Serve(cmd.Context(), s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

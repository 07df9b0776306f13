package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/bojcoach/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server for LLM agent integration",
	Long: "Serves the coaching tools over the Model Context Protocol.\n" +
		"By default it speaks stdio, which is what editor and agent\n" +
		"integrations expect; pass --http to serve over HTTP instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeAll, err := buildCoach(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := mcp.NewServer(svc, version)
		if addr, _ := cmd.Flags().GetString("http"); addr != "" {
			return srv.ServeHTTP(ctx, addr)
		}
		return srv.ServeStdio(ctx)
	},
}

func init() {
	mcpCmd.Flags().String("http", "", "Serve MCP over HTTP on this address instead of stdio")
}

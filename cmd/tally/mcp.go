package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/tally"
	"github.com/aretw0/tally/internal/adapters/mcp"
	"github.com/aretw0/tally/internal/adapters/memory"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the tally engine as an MCP Server over stdio.
This allows AI agents to drive calculator sessions as tools (press buttons,
read the display, clear).`,
	Run: func(cmd *cobra.Command, args []string) {
		// Configure logger on stderr so logs don't corrupt JSON-RPC on Stdout.
		opts := &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		log.SetOutput(os.Stderr)

		engine := tally.New(tally.WithLogger(logger))
		srv := mcp.NewServer(engine, memory.NewStore())

		slog.Info("Starting Tally MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP Server execution failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

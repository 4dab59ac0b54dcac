package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/aretw0/quotient/internal/cli"
	"github.com/aretw0/quotient/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the quotient engine as an MCP Server, exposing validation,
determinization and minimization as tools and stored conversions as resources.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		baseURL, _ := cmd.Flags().GetString("base-url")

		cfg, logger, err := loadSettings(cmd)
		if err != nil {
			return err
		}

		engine, err := cli.NewEngine(cli.EngineOptions{Config: cfg, Logger: logger})
		if err != nil {
			return err
		}
		defer engine.Close()

		srv := mcp.NewServer(engine, logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting quotient MCP Server (Stdio)")
			return srv.ServeStdio()
		case "sse":
			if baseURL == "" {
				baseURL = "http://localhost" + addr
			}
			logger.Info("Starting quotient MCP Server (SSE)", "addr", addr)

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			if err := srv.ServeSSE(ctx, addr, baseURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP Server stopped gracefully")
			return nil
		default:
			return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", ":8081", "Address to listen on (only for SSE)")
	mcpCmd.Flags().String("base-url", "", "Public base URL of the SSE endpoint (defaults to http://localhost<addr>)")
}

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goframe/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis HTTP API",
	Long: `Start the HTTP API.

Settings come from a .env file in the working directory or from
the environment:
  GOFRAME_ADDR   listen address (default :8080)
  DATABASE_URL   PostgreSQL connection string; enables /api/projects
  TOKEN_KEY      HS256 key; when set every route but /api/health needs
                 an "Authorization: Bearer <token>" header
  RATE_LIMIT     requests per second per client (default 5)
  RATE_BURST     burst size per client (default 10)

Examples:
  goframe serve
  goframe serve --addr :9000`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := server.LoadConfig()
		exitOnError(err)
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		exitOnError(server.Run(ctx, cfg))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides GOFRAME_ADDR")
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/games-hub/internal/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API and websocket server",
	Long: `Start the browser front end: a JSON API under /api/v1 for coins,
shop, leaderboard, settings and history, and /ws/play streaming a live
match as JSON snapshots.

Players are chosen with the X-Player header or the player query
parameter.

Examples:
  hub web
  hub web --http :9000
  hub web --backend redis --redis redis://localhost:6379/0`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", env.HTTPAddr, "HTTP server address (host:port)")
	webCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom pong config (YAML or TOML)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	h, closeHub, err := openHub(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer closeHub()

	cfg := web.DefaultConfig()
	cfg.Addr = flagHTTPAddr
	cfg.FPS = flagFPS

	fmt.Printf("Starting hub web server on %s\n", cfg.Addr)
	fmt.Println("Press Ctrl+C to stop")

	return web.NewServer(cfg, h).Serve(cmd.Context())
}

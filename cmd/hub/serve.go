package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/games-hub/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the hub SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user is a separate player with their own coins, trails and
leaderboard, all kept in the same storage backend.

Host key handling:
  - If --host-key points to a missing file, a key is generated there

Examples:
  hub serve                           # Listen on :2222
  hub serve --ssh :23234              # Listen on port 23234
  hub serve --host-key ./my_host_key  # Use specific host key
  hub serve --backend redis           # Share state through redis

Users can connect with:
  ssh <name>@localhost -p 2222`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", env.SSHAddr, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", env.HostKey, "Path to host key file (generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom pong config (YAML or TOML)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	h, closeHub, err := openHub(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer closeHub()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS

	server, err := tui.NewSSHServer(cfg, h)
	if err != nil {
		return err
	}

	fmt.Printf("Starting hub SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

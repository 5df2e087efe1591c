// hub is the Neon Pong games hub: play in the terminal, over SSH, or from a
// browser, with coins, trails and a leaderboard kept per player.
//
// Usage:
//
//	hub list                   - List available games
//	hub play [game]            - Play a game (the menu when no game is given)
//	hub leaderboard            - Show the best margins
//	hub history                - Show recorded matches and stats
//	hub coins                  - Show the coin balance
//	hub shop [buy|equip] <id>  - Browse or buy trails
//	hub serve                  - Start the SSH server
//	hub web                    - Start the HTTP API and websocket server
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arcade/hub.db)
//	--backend <name>    - sqlite, redis or memory
//	--redis <url>       - Redis URL for the redis backend
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/hub"
	"github.com/vovakirdan/games-hub/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/games-hub/internal/games/pong"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagBackend  string
	flagRedisURL string
	flagLogLevel string
	flagPlayer   string

	// Shared by play and the servers
	flagConfig string

	// Environment defaults, loaded before any init so flags can use them
	env = config.LoadHub()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hub",
	Short: "Neon Pong games hub",
	Long: `Neon Pong is a single-paddle arcade duel against an adaptive AI.
Win rallies to earn coins, spend them on neon trails, and climb the
leaderboard. Play in your terminal, over SSH, or in a browser.

Available commands:
  list         - Show all available games
  play         - Play a game, or open the hub menu
  leaderboard  - Best finished matches by margin
  history      - Recorded matches and win/loss stats
  coins        - Current coin balance
  shop         - Trail catalog, buy and equip
  serve        - Start the SSH server
  web          - Start the HTTP API and websocket server

Examples:
  hub play pong --difficulty hard
  hub shop buy trail-pink
  hub serve --ssh :2222
  hub web --http :8080 --backend redis`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", env.DBPath, "Path to the sqlite database")
	pf.StringVar(&flagBackend, "backend", env.Backend, "Storage backend: sqlite, redis, memory")
	pf.StringVar(&flagRedisURL, "redis", env.RedisURL, "Redis URL for the redis backend")
	pf.StringVar(&flagLogLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	pf.StringVar(&flagPlayer, "player", hub.LocalPlayer, "Player namespace (empty = local player)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(coinsCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// newLogger builds the process logger writing to w at the configured level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "hub",
	}), nil
}

// openHub opens the configured backend and pong tuning. The returned close
// func releases the backend.
func openHub(ctx context.Context, logger *log.Logger) (*hub.Hub, func(), error) {
	cfg, err := config.LoadPong(flagConfig)
	if err != nil {
		return nil, nil, err
	}

	backend, err := storage.OpenBackend(ctx, storage.Options{
		Backend:  flagBackend,
		DBPath:   flagDBPath,
		RedisURL: flagRedisURL,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("storage ready", "backend", backend.Name)

	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("cannot close storage", "error", err)
		}
	}
	return hub.New(backend, cfg, logger), closeFn, nil
}

// currentPlayer opens the hub and loads the --player namespace for the
// one-shot commands.
func currentPlayer(cmd *cobra.Command) (*hub.Hub, *hub.Player, func(), error) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	h, closeFn, err := openHub(cmd.Context(), logger)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := h.Player(cmd.Context(), flagPlayer)
	if err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return h, p, closeFn, nil
}

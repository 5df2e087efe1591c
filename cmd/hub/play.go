package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/core"
	"github.com/vovakirdan/games-hub/internal/games/pong"
	"github.com/vovakirdan/games-hub/internal/platform/tui"
	"github.com/vovakirdan/games-hub/internal/registry"
)

var (
	flagDifficulty string
	flagWinTarget  int
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, or open the hub menu when no game
is given.

Controls:
  W/Up, S/Down  - Move paddle
  Mouse drag    - Move paddle to the pointer
  Enter/Space   - Start match
  P/Esc         - Pause
  R             - Restart (after a match ended)
  Ctrl+S        - Screenshot
  Q/Ctrl+C      - Quit

Difficulty options:
  easy, normal, hard, insane - AI paddle speed and ramp

Examples:
  hub play
  hub play pong --difficulty hard
  hub play pong --win-target 3
  hub play pong --config ./my-pong.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom pong config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, insane")
	playCmd.Flags().IntVar(&flagWinTarget, "win-target", 0, "Points needed to win (0 = config default)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			return fmt.Errorf("unknown game %q (run 'hub list' to see available games)", gameID)
		}
	}
	if flagDifficulty != "" {
		if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	}
	if flagWinTarget < 0 {
		return fmt.Errorf("win target must be positive, got %d", flagWinTarget)
	}

	// The alternate screen owns the terminal, so logs go to a file.
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger, err := newLogger(logFile)
	if err != nil {
		return err
	}

	h, closeHub, err := openHub(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer closeHub()

	player, err := h.Player(cmd.Context(), flagPlayer)
	if err != nil {
		return err
	}

	pong.SetConfigPath(flagConfig)
	pong.SetDifficultyPreset(flagDifficulty)
	pong.SetWinTarget(flagWinTarget)

	width, height := 80, 24 // Defaults
	if cols, rows, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = cols, rows
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := tui.Run(h, player, cfg, gameID, os.Stdout); err != nil {
		return fmt.Errorf("running hub: %w", err)
	}
	return nil
}

func openLogFile() (*os.File, error) {
	dir := ".arcade"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".arcade")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "hub.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

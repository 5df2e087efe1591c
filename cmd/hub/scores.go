package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/games-hub/internal/config"
	"github.com/vovakirdan/games-hub/internal/storage"
)

var (
	flagHistoryLimit      int
	flagHistoryDifficulty string
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the best finished matches",
	Long: `Display the leaderboard: finished matches ordered by the winning
margin (your score minus the AI's), best first.

Examples:
  hub leaderboard
  hub leaderboard --player alice`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded matches and stats",
	Long: `Display recent matches and win/loss stats from the match history.
Requires the sqlite backend.

Examples:
  hub history
  hub history --difficulty hard --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var coinsCmd = &cobra.Command{
	Use:   "coins",
	Short: "Show the coin balance",
	Args:  cobra.NoArgs,
	RunE:  runCoins,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of matches to show")
	historyCmd.Flags().StringVar(&flagHistoryDifficulty, "difficulty", "", "Only count matches at this difficulty")
}

func runLeaderboard(cmd *cobra.Command, _ []string) error {
	_, player, closeHub, err := currentPlayer(cmd)
	if err != nil {
		return err
	}
	defer closeHub()

	entries := player.Economy.Leaderboard()

	fmt.Println("Leaderboard - Neon Pong")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No matches finished yet.")
		fmt.Println()
		fmt.Println("Play 'hub play pong' to set the first entry!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "Rank", "Score", "Margin", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %s\n", "----", "-----", "------", "----")
	for i, e := range entries {
		score := fmt.Sprintf("%d-%d", e.Left, e.Right)
		date := time.UnixMilli(e.Date).Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7s  %+-6d  %s\n", i+1, score, e.Margin(), date)
	}
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if flagHistoryDifficulty != "" {
		if _, err := config.ParseDifficulty(flagHistoryDifficulty); err != nil {
			return err
		}
	}

	h, player, closeHub, err := currentPlayer(cmd)
	if err != nil {
		return err
	}
	defer closeHub()

	store := h.Matches()
	if store == nil {
		return fmt.Errorf("match history needs the sqlite backend")
	}

	ctx := cmd.Context()
	matches, err := store.RecentMatches(ctx, player.Name, flagHistoryLimit)
	if err != nil {
		return err
	}
	stats, err := store.Stats(ctx, storage.MatchFilter{Player: player.Name, Difficulty: flagHistoryDifficulty})
	if err != nil {
		return err
	}

	fmt.Println("Match History - Neon Pong")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-10s  %-7s  %-6s  %s\n", "Date", "Difficulty", "Score", "Result", "Duration")
	fmt.Printf("  %-16s  %-10s  %-7s  %-6s  %s\n", "----", "----------", "-----", "------", "--------")
	for _, m := range matches {
		result := "loss"
		if m.Winner == "left" {
			result = "win"
		}
		fmt.Printf("  %-16s  %-10s  %-7s  %-6s  %s\n",
			m.PlayedTime().Format("2006-01-02 15:04"),
			m.Difficulty,
			fmt.Sprintf("%d-%d", m.LeftScore, m.RightScore),
			result,
			(time.Duration(m.DurationMS) * time.Millisecond).Round(time.Second),
		)
	}

	fmt.Println()
	scope := "all difficulties"
	if flagHistoryDifficulty != "" {
		scope = flagHistoryDifficulty
	}
	fmt.Printf("Played %d (%s): %d wins, %d losses, best margin %+d\n",
		stats.Played, scope, stats.Wins, stats.Losses, stats.BestMargin)
	return nil
}

func runCoins(cmd *cobra.Command, _ []string) error {
	_, player, closeHub, err := currentPlayer(cmd)
	if err != nil {
		return err
	}
	defer closeHub()

	fmt.Printf("Coins: %d\n", player.Economy.Coins())
	fmt.Printf("Trail: %s\n", player.Economy.Trail())
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/games-hub/internal/economy"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Browse the trail shop",
	Long: `List the trail catalog with prices and what you own.

Examples:
  hub shop
  hub shop buy trail-pink
  hub shop equip trail-cyan`,
	Args: cobra.NoArgs,
	RunE: runShop,
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Buy a trail and equip it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shopAction(cmd, args[0], (*economy.Economy).Purchase, "Bought")
	},
}

var shopEquipCmd = &cobra.Command{
	Use:   "equip <item>",
	Short: "Equip an owned trail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shopAction(cmd, args[0], (*economy.Economy).Equip, "Equipped")
	},
}

func init() {
	shopCmd.AddCommand(shopBuyCmd)
	shopCmd.AddCommand(shopEquipCmd)
}

func runShop(cmd *cobra.Command, _ []string) error {
	_, player, closeHub, err := currentPlayer(cmd)
	if err != nil {
		return err
	}
	defer closeHub()

	items := player.Economy.Shop()

	fmt.Printf("Trail Shop - %d coins\n", player.Economy.Coins())
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, it := range items {
		maxIDLen = max(maxIDLen, len(it.ID))
	}

	fmt.Printf("  %-*s  %-14s  %-5s  %s\n", maxIDLen, "ID", "Name", "Price", "Status")
	fmt.Printf("  %-*s  %-14s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "------")
	for _, it := range items {
		status := ""
		switch {
		case it.Equipped:
			status = "equipped"
		case it.Owned:
			status = "owned"
		}
		fmt.Printf("  %-*s  %-14s  %-5d  %s\n", maxIDLen, it.ID, it.Name, it.Price, status)
	}

	fmt.Println()
	fmt.Println("Run 'hub shop buy <id>' to buy a trail.")
	return nil
}

func shopAction(cmd *cobra.Command, item string, action func(*economy.Economy, string) error, verb string) error {
	_, player, closeHub, err := currentPlayer(cmd)
	if err != nil {
		return err
	}
	defer closeHub()

	if err := action(player.Economy, item); err != nil {
		switch {
		case errors.Is(err, economy.ErrInsufficientCoins):
			return fmt.Errorf("not enough coins for %s (you have %d)", item, player.Economy.Coins())
		case errors.Is(err, economy.ErrNotOwned):
			return fmt.Errorf("you do not own %s yet, run 'hub shop buy %s'", item, item)
		}
		return err
	}

	fmt.Printf("%s %s. Trail: %s, coins: %d\n", verb, item, player.Economy.Trail(), player.Economy.Coins())
	return nil
}

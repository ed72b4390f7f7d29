package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant from a menu",
	Long: `Start with an interactive variant picker.

After a game you return to the menu. The session history is shared by
every game played from the menu, and the menu shows each variant's best.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play
  Q/Esc        - Quit

Examples:
  blockfall menu
  blockfall menu --fps 30`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.OpenSession()
	if err != nil {
		logger.Warn("session history disabled", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	var played []registry.Game

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			return fmt.Errorf("menu failed: %w", err)
		}
		cfg = result.Config
		if result.Quit {
			break
		}

		game, err := newGame(result.GameID)
		if err != nil {
			return err
		}

		cfg.Seed = runSeed()
		logger.Info("starting", "game", game.ID(), "fps", cfg.TickRate, "seed", cfg.Seed)
		restoreLog := silenceStderr(logger, os.Stderr)
		err = tui.Run(game, store, logger, cfg)
		restoreLog()
		if err != nil {
			return fmt.Errorf("cannot run game: %w", err)
		}
		played = append(played, game)
	}

	if store == nil {
		return nil
	}
	seen := make(map[string]bool)
	for _, g := range played {
		if seen[g.ID()] {
			continue
		}
		seen[g.ID()] = true
		printSummary(cmd, store, g)
	}
	return nil
}

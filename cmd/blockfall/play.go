package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// defaultGameID is played when no variant is given.
const defaultGameID = "blockfall"

var flagConfig string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the specified variant (default: blockfall).

Controls:
  ←/H/A, →/L/D   - Move left/right
  ↓/J/S          - Soft drop
  ↑/K/W/Space    - Rotate
  P/Esc          - Pause
  R              - Restart
  Tab            - Session history
  Q/Ctrl+C       - Quit

Examples:
  blockfall play
  blockfall play blockfall_mini
  blockfall play --config ./my-blockfall.yaml --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := defaultGameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown variant %q (run 'blockfall list' to see variants)", gameID)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := newGame(gameID)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()

	// History is a nicety; play on without it.
	store, err := storage.OpenSession()
	if err != nil {
		logger.Warn("session history disabled", "err", err)
		store = nil
	}

	logger.Info("starting", "game", gameID, "fps", cfg.TickRate, "seed", cfg.Seed,
		"screen", fmt.Sprintf("%dx%d", cfg.ScreenW, cfg.ScreenH))

	restoreLog := silenceStderr(logger, os.Stderr)
	runErr := tui.Run(game, store, logger, cfg)
	restoreLog()

	if store != nil {
		printSummary(cmd, store, game)
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("cannot run game: %w", runErr)
	}
	return nil
}

// newGame creates the variant and applies the YAML configuration.
func newGame(gameID string) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, fmt.Errorf("cannot create game: %w", err)
	}

	if c, ok := game.(registry.Configurable); ok {
		gameCfg, err := config.LoadBlockfall(flagConfig)
		if err != nil {
			return nil, err
		}
		if err := c.Configure(gameCfg); err != nil {
			return nil, err
		}
	}
	return game, nil
}

// runtimeConfig builds the runtime config from the flags and terminal size.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     runSeed(),
	}
}

// runSeed is --seed, or the clock when it is 0.
func runSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// printSummary prints the session's best runs after the TUI exits.
func printSummary(cmd *cobra.Command, store *storage.Store, game registry.Game) {
	runs, err := store.TopRuns(game.ID(), 5)
	if err != nil || len(runs) == 0 {
		return
	}
	stats, err := store.Stats(game.ID())
	if err != nil {
		return
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session - %s\n\n", game.Title())
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %s\n", "Rank", "Score", "Lines", "Pieces", "Ended")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-6s  %s\n", "----", "-----", "-----", "------", "-----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  %-6d  %s\n", i+1, r.Score, r.Lines, r.Pieces, r.EndReason)
	}
	fmt.Fprintf(out, "\nRuns: %d  Best: %d  Lines: %d\n", stats.Runs, stats.Best, stats.TotalLines)
}

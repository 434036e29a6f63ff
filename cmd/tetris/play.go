package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLevel     int
	flagNoPreview bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round",
	Long: `Start a round of Tetris right away.

Controls (defaults, remappable in the config file):
  Left/Right, A/D, H/L  - Move
  Down, S, J            - Soft drop
  Space                 - Hard drop
  Up, X, W, K           - Rotate clockwise
  Z                     - Rotate counter-clockwise
  P/Esc                 - Pause
  R                     - Restart (after game over)
  Ctrl+S                - Save a text screenshot
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Start at level 0
  normal - Start at level 5
  hard   - Start at level 10
  fixed  - Use the config's start level

Examples:
  tetris play
  tetris play --level 15
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", -1, "Start level 0-29 (overrides config and difficulty)")
	playCmd.Flags().BoolVar(&flagNoPreview, "no-preview", false, "Hide the next-piece preview")
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig() (config.TetrisConfig, error) {
	tc, err := config.LoadTetris(flagConfig)
	if err != nil {
		return tc, err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return tc, err
	}
	config.ApplyPreset(&tc, preset)

	if flagLevel >= 0 {
		tc.StartLevel = core.Clamp(flagLevel, 0, config.MaxStartLevel)
	}
	if flagNoPreview {
		tc.ShowNext = false
	}
	return tc, nil
}

// openStore opens the score database. A failure only disables scores.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "err", err)
		return nil
	}
	return store
}

// playRound runs one round until the player quits.
func playRound(tc config.TetrisConfig, cfg core.RuntimeConfig, store *storage.Store, logger *log.Logger) error {
	game := tetris.New(tetris.Options{
		StartLevel: tc.StartLevel,
		ShowNext:   tc.ShowNext,
	})

	logger.Debug("starting round", "level", tc.StartLevel, "preview", tc.ShowNext, "fps", cfg.TickRate)
	return tui.Run(game, tui.Options{
		Store:   store,
		Logger:  logger,
		Keys:    tui.NewKeyMap(tc.Keys),
		Runtime: cfg,
		FrameW:  tetris.FrameWidth,
		FrameH:  tetris.FrameHeight,
	})
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := newLogger()
	defer closeLog()

	tc, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)

	runErr := playRound(tc, runtimeConfig(), store, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

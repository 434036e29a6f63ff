package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top 10 rounds.

Examples:
  tetris scores
  tetris scores --db ./scores.db
  tetris scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded rounds")
}

func runScores(_ *cobra.Command, _ []string) {
	game := tetris.New(tetris.DefaultOptions())
	gameID := game.ID()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Scores cleared.")
		return
	}

	rounds, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tetris play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "Rank", "Score", "Level", "Lines", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-6s  %s\n", "----", "-----", "-----", "-----", "----", "----")

	for i, r := range rounds {
		secs := int(r.Duration.Round(time.Second) / time.Second)
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-6s  %s\n",
			i+1, r.Score, r.Level, r.Lines,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
}

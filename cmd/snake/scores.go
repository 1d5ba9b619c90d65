package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ai-snake/internal/games/snake"
	"github.com/vovakirdan/ai-snake/internal/registry"
	"github.com/vovakirdan/ai-snake/internal/storage"
)

var flagSessions int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores and recent AI sessions",
	Long: `Display the top 10 high scores for a mode, followed by the most
recent sessions with the director's final read on the player.

Examples:
  snake scores
  snake scores snake_classic
  snake scores --sessions 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagSessions, "sessions", 5, "Number of recent sessions to show (0 to hide)")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := snake.IDAdaptive
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'snake list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'snake play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f", stats.HighScore, stats.GamesCount, stats.AvgScore)
		if stats.AvgSkill > 0 {
			fmt.Printf("  Avg skill: %.1f/5", stats.AvgSkill)
		}
		fmt.Println()
	}

	if flagSessions <= 0 {
		return
	}
	sessions, err := store.RecentSessions(gameID, flagSessions)
	if err != nil || len(sessions) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Recent sessions")
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-5s  %-5s  %-16s  %s\n", "Date", "Score", "Skill", "Diff", "Strategy", "Success")
	fmt.Printf("  %-16s  %-6s  %-5s  %-5s  %-16s  %s\n", "----", "-----", "-----", "----", "--------", "-------")
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-6d  %-5s  %-5s  %-16s  %d%%\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Score,
			fmt.Sprintf("%d/5", s.SkillLevel),
			fmt.Sprintf("%d%%", s.DifficultyPercent),
			s.Strategy,
			s.SuccessRate,
		)
	}
}

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dark2048/internal/platform/tui"
	"github.com/vovakirdan/dark2048/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresTUI   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished games and stats",
	Long: `Display the best finished games of all players and the stats of
--player. Use --tui for the interactive scoreboard.

Examples:
  dark2048 scores
  dark2048 scores --limit 20
  dark2048 scores --player alice --tui`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, flagPlayer, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	games, err := store.TopGames(flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving games: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Top games")
	fmt.Println()

	if len(games) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Println("Play 'dark2048 play' and start a new game to record one!")
		return
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-12s  %s\n", "Rank", "Score", "Tile", "Moves", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-6s  %-12s  %s\n", "----", "-----", "----", "-----", "------", "----")
	for i, g := range games {
		fmt.Printf("  %-4d  %-8d  %-6d  %-6d  %-12s  %s\n",
			i+1, g.Score, g.HighestTile, g.Moves, g.Player, g.FinishedAt.Local().Format("2006-01-02 15:04"))
	}

	st, err := store.Stats(flagPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	if st.Games == 0 {
		fmt.Printf("%s has no finished games.\n", flagPlayer)
		return
	}
	fmt.Printf("%s: %d games, best %d, average %d, best tile %d, %d moves, %d undos, played %s\n",
		flagPlayer, st.Games, st.BestScore, st.AverageScore, st.BestTile,
		st.TotalMoves, st.TotalUndos, st.TimePlayed.Round(time.Second))
}

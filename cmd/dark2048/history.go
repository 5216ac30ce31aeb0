package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dark2048/internal/storage"
	"github.com/vovakirdan/dark2048/internal/telemetry"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved game journals",
	Long: `List the journals of the last finished games of --player. A journal
records every move, spawned tile, score change and event of a game, with a
board snapshot every 10 moves.

Examples:
  dark2048 history
  dark2048 history show 1 > game.json`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Print journal n as JSON (1 is the newest)",
	Args:  cobra.ExactArgs(1),
	Run:   runHistoryShow,
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
}

func loadJournals() []storage.JournalRecord {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening game database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	journals, err := store.Journals(flagPlayer, storage.JournalsKept)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving journals: %v\n", err)
		os.Exit(1)
	}
	return journals
}

func runHistory(_ *cobra.Command, _ []string) {
	journals := loadJournals()
	if len(journals) == 0 {
		fmt.Printf("No journals for %s yet.\n", flagPlayer)
		return
	}

	fmt.Printf("  %-3s  %-36s  %-6s  %-6s  %-6s  %s\n", "#", "Game", "Moves", "Score", "Errors", "Saved")
	for i, j := range journals {
		gl, err := telemetry.ParseGameLog(j.Data)
		if err != nil {
			fmt.Printf("  %-3d  %-36s  unreadable: %v\n", i+1, j.GameID, err)
			continue
		}
		score := 0
		if n := len(gl.Moves); n > 0 {
			score = gl.Moves[n-1].Score
		}
		fmt.Printf("  %-3d  %-36s  %-6d  %-6d  %-6d  %s\n",
			i+1, j.GameID, len(gl.Moves), score, len(gl.Errors), j.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runHistoryShow(_ *cobra.Command, args []string) {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintf(os.Stderr, "Error: journal number must be a positive integer, got %q\n", args[0])
		os.Exit(1)
	}

	journals := loadJournals()
	if n > len(journals) {
		fmt.Fprintf(os.Stderr, "Error: %s has %d journals\n", flagPlayer, len(journals))
		os.Exit(1)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, journals[n-1].Data, "", "  "); err != nil {
		fmt.Fprintf(os.Stderr, "Error: journal is not valid JSON: %v\n", err)
		os.Exit(1)
	}
	out.WriteByte('\n')
	os.Stdout.Write(out.Bytes())
}

// dark2048 is the 2048 sliding tile game for the terminal.
//
// Usage:
//
//	dark2048 play            - Play in this terminal (resumes the saved game)
//	dark2048 serve           - Start SSH server for remote play
//	dark2048 scores          - Show finished games and stats
//	dark2048 history         - List or print saved game journals
//	dark2048 config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>     - Animation frame rate (default: 60)
//	--seed <value>   - Spawn RNG seed for reproducible games
//	--db <path>      - Database path (default: ~/.dark2048/dark2048.db)
//	--config <path>  - Game config YAML
//	--player <name>  - Whose saved game and scores to use
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
	flagPlayer string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dark2048",
	Short: "dark2048 - slide tiles, merge numbers, reach 2048",
	Long: `dark2048 is the 2048 puzzle for the terminal. Slide with the arrow
keys or drag tiles with the mouse; equal tiles merge when they collide.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  scores   - Show finished games and stats
  history  - List or print saved game journals
  config   - Print the effective configuration

Examples:
  dark2048 play
  dark2048 play --config ./hard.yaml --seed 42
  dark2048 serve --ssh :2222
  dark2048 scores --player alice`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Animation frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Spawn RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dark2048/dark2048.db", "Path to game database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", defaultPlayer(), "Player name for saved games and scores")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// defaultPlayer names the local player after the OS user.
func defaultPlayer() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

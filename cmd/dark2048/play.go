package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dark2048/internal/config"
	"github.com/vovakirdan/dark2048/internal/core"
	"github.com/vovakirdan/dark2048/internal/platform/tui"
	"github.com/vovakirdan/dark2048/internal/storage"
	"github.com/vovakirdan/dark2048/internal/telemetry"
)

var flagVerbose bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start playing. The last unfinished game of --player is resumed.

Controls:
  Arrows/WASD/HJKL   - Slide tiles
  Mouse drag         - Slide with a live preview, or flick and release
  Double click       - Undo
  Right drag up/down - Toggle the menu
  Wheel              - Zoom between full and compact board
  U                  - Undo
  N                  - New game
  M/Esc              - Menu
  ?                  - Help
  Q/Ctrl+C           - Quit

Game events are logged to ~/.dark2048/dark2048.log.

Examples:
  dark2048 play
  dark2048 play --seed 7
  dark2048 play --config ./my-2048.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every game event, not only the important ones")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.DefaultConfig()
	rt.ScreenW = width
	rt.ScreenH = height
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	logger, closeLog := openLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Base().Warn("could not open game database, this game will not be saved", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	opts := tui.Options{
		Config:  gameCfg,
		Runtime: rt,
		Store:   store,
		Player:  flagPlayer,
		Logger:  logger.With("player", flagPlayer),
	}
	if err := tui.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// openLogger writes logs to a file while the game owns the terminal.
func openLogger() (*telemetry.Logger, func()) {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return telemetry.NewLogger(os.Stderr, "dark2048"), func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, "dark2048.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return telemetry.NewLogger(os.Stderr, "dark2048"), func() {}
	}

	logger := telemetry.NewLogger(f, "dark2048")
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, func() { f.Close() }
}

package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stripsim/internal/platform/session"
	"github.com/vovakirdan/stripsim/internal/platform/tui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulator in the terminal",
	Long: `Run the simulator in the terminal. The test area is drawn with block
characters; each cell stands for a fixed number of logical pixels.

Terminals do not report key releases, so a held arrow key counts as released
once the terminal stops repeating it.

Logs are discarded unless --log-file is given.

Examples:
  stripsim run
  stripsim run --refresh 120 --log-file stripsim.log`,
	Run: runRun,
}

func runRun(_ *cobra.Command, _ []string) {
	cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	cols, rows := 120, 41
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols, rows = w, h
	}

	runErr := tui.Run(tui.Options{
		Settings:    cfg,
		TickRate:    flagFPS,
		RefreshRate: flagRefresh,
		Cols:        cols,
		Rows:        rows,
		Store:       store,
		Logger:      logger,
		User:        session.CurrentUser(),
	})
	if runErr != nil {
		fail("running simulator: %v", runErr)
	}
}

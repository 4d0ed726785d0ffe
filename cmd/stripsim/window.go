package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stripsim/internal/platform/session"
	"github.com/vovakirdan/stripsim/internal/platform/window"
)

var flagAssets string

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Run the simulator in a desktop window",
	Long: `Open a resizable window (at least 1200x800) with the test area, the
information panel and the start/stop button.

Fonts and the help figure are looked up in --assets, ./assets, the working
directory and the assets directory next to the executable. Built-in
replacements are used when nothing is found.

Examples:
  stripsim window
  stripsim window --refresh 144 --assets ~/stripsim-assets`,
	Run: runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagAssets, "assets", "", "Directory searched first for fonts and the help figure")
}

func runWindow(_ *cobra.Command, _ []string) {
	cfg, err := loadSettings()
	if err != nil {
		reportWindowError(err)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		reportWindowError(err)
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	runErr := window.Run(window.Options{
		Settings:    cfg,
		TickRate:    flagFPS,
		RefreshRate: flagRefresh,
		Store:       store,
		Logger:      logger,
		User:        session.CurrentUser(),
		AssetDir:    flagAssets,
	})
	if runErr != nil {
		reportWindowError(fmt.Errorf("running simulator: %w", runErr))
	}
}

// reportWindowError shows a fatal error in a native dialog and on stderr.
func reportWindowError(err error) {
	window.ShowError(err)
	fail("%v", err)
}

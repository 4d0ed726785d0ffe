// stripsim simulates the moving light strip used to test focal plane shutter
// speeds, in a desktop window or in the terminal.
//
// Usage:
//
//	stripsim run               - Run in the terminal
//	stripsim window            - Run in a desktop window
//	stripsim serve             - Start SSH server for remote sessions
//	stripsim trace <script>    - Replay a scripted session headlessly
//	stripsim history           - Show recorded sessions
//	stripsim rates             - Show recommended speeds per refresh rate
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Configuration file
//	--refresh <hz>        - Override the display refresh rate
//	--theme <dark|light>  - Initial theme
//	--db <path>           - Set database path (default: ~/.stripsim/sessions.db)
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stripsim/internal/config"
	"github.com/vovakirdan/stripsim/internal/platform/session"
	"github.com/vovakirdan/stripsim/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagConfig   string
	flagRefresh  int
	flagTheme    string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stripsim",
	Short: "Light strip simulator for shutter speed testing",
	Long: `stripsim draws a horizontal light strip moving down a test area at an
adjustable speed, for testing focal plane shutters with a camera.

A photosensitivity warning must be acknowledged before the strip can run.
Speeds above the recommended maximum for the display refresh rate raise a
warning popup.

Available commands:
  run      - Run in the terminal
  window   - Run in a desktop window
  serve    - Start SSH server for remote sessions
  trace    - Replay a scripted session headlessly
  history  - Show recorded sessions
  rates    - Show recommended speeds

Examples:
  stripsim window --refresh 144
  stripsim run --theme light
  stripsim serve --ssh :2222
  stripsim trace session.yaml`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().IntVar(&flagRefresh, "refresh", 0, "Display refresh rate in Hz (0 = detect)")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Initial theme (dark or light)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stripsim/sessions.db", "Path to sessions database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(ratesCmd)
}

// loadSettings loads the configuration and applies flag overrides.
func loadSettings() (config.Settings, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Settings{}, err
	}
	return config.Overrides{RefreshRate: flagRefresh, Theme: flagTheme}.Apply(cfg)
}

// newLogger creates the logger for a command. Logs go to --log-file when set
// and to fallback otherwise. The returned function closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}
	return session.NewLogger(w, level), closeFn, nil
}

// openStore opens the sessions database. Failures are logged and the command
// continues without history.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		return nil
	}
	return store
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

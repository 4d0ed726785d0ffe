package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stripsim/internal/clock"
	"github.com/vovakirdan/stripsim/internal/core"
	"github.com/vovakirdan/stripsim/internal/platform/session"
	"github.com/vovakirdan/stripsim/internal/platform/trace"
	"github.com/vovakirdan/stripsim/internal/sim"
)

var (
	flagTraceWidth  int
	flagTraceHeight int
)

var traceCmd = &cobra.Command{
	Use:   "trace <script>",
	Short: "Replay a scripted session without a display",
	Long: `Run the simulator headlessly against a YAML script and print one status
line per tick. Time is simulated, so a 15 second countdown takes no real time.

Script format:

  ticks: 1000                    # run length, ends earlier on quit
  steps:
    - {at: 0, click: checkbox}   # controls: checkbox, continue, toggle, ignore
    - {at_ms: 15100, click: continue}
    - {at: 910, click: toggle}
    - {at: 920, press: Up}       # keys: Up, Down, Fast, Help, Theme, Multibeam, Escape
    - {at: 980, release: Up}
    - {at: 990, pointer: [600, 400]}
    - {at: 995, resize: [1600, 1000]}
    - {at: 999, quit: true}

Notices are logged to stderr at debug level.

Examples:
  stripsim trace session.yaml
  stripsim trace session.yaml --refresh 144 --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runTrace,
}

func init() {
	traceCmd.Flags().IntVar(&flagTraceWidth, "width", 1200, "Simulated window width")
	traceCmd.Flags().IntVar(&flagTraceHeight, "height", 800, "Simulated window height")
}

func runTrace(_ *cobra.Command, args []string) {
	cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	script, err := trace.LoadScript(args[0])
	if err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	s := sim.New(cfg, core.RuntimeConfig{
		ScreenW:     flagTraceWidth,
		ScreenH:     flagTraceHeight,
		TickRate:    flagFPS,
		RefreshRate: flagRefresh,
	})
	rec := session.NewRecorder(nil, logger, "trace", session.CurrentUser(), s.RefreshRate())

	ticks, err := trace.Run(s, script, clock.NewManual(0), flagFPS, os.Stdout, rec.Observe)
	rec.Finish(s.Stats())
	if err != nil {
		fail("trace stopped at tick %d: %v", ticks, err)
	}

	stats := s.Stats()
	fmt.Fprintf(os.Stderr, "%d ticks, max speed %d, %d exceed episodes, %d ignored\n",
		ticks, stats.MaxSpeed, stats.ExceedEpisodes, stats.Ignores)
}

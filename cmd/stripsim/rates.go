package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stripsim/internal/core"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show recommended maximum speeds",
	Long: `Shows the recommended maximum strip speed for common refresh rates and
the refresh rate the simulator will use. Above the recommended speed the
display cannot render every position of the strip and the speed warning opens.`,
	Run: runRates,
}

func runRates(_ *cobra.Command, _ []string) {
	cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	refresh, source := core.DefaultRefreshRate, "default"
	if cfg.Display.RefreshRate > 0 {
		refresh, source = cfg.Display.RefreshRate, "configured"
	}
	table := cfg.Table()

	fmt.Println("Recommended speeds:")
	fmt.Println()
	fmt.Printf("  %-12s  %s\n", "Refresh Rate", "Max px/frame")
	fmt.Printf("  %-12s  %s\n", "------------", "------------")
	for _, rr := range cfg.Recommended.Rates {
		marker := ""
		if rr == refresh {
			marker = "  <- current"
		}
		fmt.Printf("  %-12s  %d%s\n", fmt.Sprintf("%d Hz", rr), table.Lookup(rr), marker)
	}

	fmt.Println()
	fmt.Printf("Refresh rate: %d Hz (%s), recommended maximum %d px/frame.\n", refresh, source, table.Lookup(refresh))
	fmt.Println("Use --refresh <hz> or display.refresh_rate to override.")
}

package config

import (
	_ "embed"
)

//go:embed defaults/stripsim.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Settings {
	return Settings{
		Display: DisplayConfig{
			RefreshRate:  0,
			MinWidth:     1200,
			MinHeight:    800,
			BoxMargin:    50,
			PanelWidth:   320,
			PanelMargin:  20,
			RightMargin:  20,
			ButtonWidth:  100,
			ButtonHeight: 30,
		},
		Strip: StripConfig{
			Height:       10,
			InitialSpeed: 30,
			MinSpeed:     1,
			MaxSpeed:     200,
			Bars:         5,
		},
		Input: InputConfig{
			AdjustIntervalMS: 200,
			Step:             1,
			FastStep:         5,
		},
		Warning: WarningConfig{
			AcknowledgeDelayMS: 15000,
		},
		Overlay: OverlayConfig{
			FadeStep: 15,
		},
		Recommended: RecommendedConfig{
			Rates: []int{60, 75, 120, 144, 240},
		},
		Theme: "dark",
		TUI: TUIConfig{
			ReleaseAfterMS: 120,
			CellWidth:      10,
			CellHeight:     20,
		},
	}
}

// DefaultYAML returns the embedded default YAML document.
func DefaultYAML() []byte {
	return defaultYAML
}

// Package config provides YAML-based configuration loading for the strip
// simulator: layout geometry, strip and input tuning, warning timings and the
// recommended-speed table.
package config

import (
	"fmt"
	"time"
)

// Settings contains all simulator configuration.
type Settings struct {
	Display     DisplayConfig     `yaml:"display"`
	Strip       StripConfig       `yaml:"strip"`
	Input       InputConfig       `yaml:"input"`
	Warning     WarningConfig     `yaml:"warning"`
	Overlay     OverlayConfig     `yaml:"overlay"`
	Recommended RecommendedConfig `yaml:"recommended"`
	Theme       string            `yaml:"theme"`
	TUI         TUIConfig         `yaml:"tui"`
}

// DisplayConfig defines window geometry in logical pixels.
type DisplayConfig struct {
	RefreshRate  int `yaml:"refresh_rate"` // 0 = detect, falls back to 60
	MinWidth     int `yaml:"min_width"`
	MinHeight    int `yaml:"min_height"`
	BoxMargin    int `yaml:"box_margin"`
	PanelWidth   int `yaml:"panel_width"`
	PanelMargin  int `yaml:"panel_margin"`
	RightMargin  int `yaml:"right_margin"`
	ButtonWidth  int `yaml:"button_width"`
	ButtonHeight int `yaml:"button_height"`
}

// StripConfig defines the animated strip.
type StripConfig struct {
	Height       int `yaml:"height"`
	InitialSpeed int `yaml:"initial_speed"`
	MinSpeed     int `yaml:"min_speed"`
	MaxSpeed     int `yaml:"max_speed"`
	Bars         int `yaml:"bars"` // Number of bars in multibeam mode
}

// InputConfig defines the held-key repeat behaviour.
type InputConfig struct {
	AdjustIntervalMS int `yaml:"adjust_interval_ms"`
	Step             int `yaml:"step"`
	FastStep         int `yaml:"fast_step"`
}

// WarningConfig defines the photosensitivity warning gate.
type WarningConfig struct {
	AcknowledgeDelayMS int `yaml:"acknowledge_delay_ms"`
}

// OverlayConfig defines overlay fading.
type OverlayConfig struct {
	FadeStep int `yaml:"fade_step"` // Opacity change per tick
}

// RecommendedConfig lists the refresh rates with a known recommended maximum.
type RecommendedConfig struct {
	Rates []int `yaml:"rates"`
}

// TUIConfig tunes the terminal frontend.
type TUIConfig struct {
	ReleaseAfterMS int `yaml:"release_after_ms"` // Synthesized key-up delay
	CellWidth      int `yaml:"cell_width"`       // Logical pixels per column
	CellHeight     int `yaml:"cell_height"`      // Logical pixels per row
}

// AdjustInterval returns the minimum time between speed adjustments.
func (s Settings) AdjustInterval() time.Duration {
	return time.Duration(s.Input.AdjustIntervalMS) * time.Millisecond
}

// AcknowledgeDelay returns how long the warning must stay acknowledged.
func (s Settings) AcknowledgeDelay() time.Duration {
	return time.Duration(s.Warning.AcknowledgeDelayMS) * time.Millisecond
}

// ReleaseAfter returns the TUI key-up synthesis delay.
func (s Settings) ReleaseAfter() time.Duration {
	return time.Duration(s.TUI.ReleaseAfterMS) * time.Millisecond
}

// RecommendedTable maps common refresh rates to the maximum speed in px/frame
// that still samples the motion reliably. The mapping is the identity.
type RecommendedTable map[int]int

// Table builds the recommended-speed table from the configured rates.
func (s Settings) Table() RecommendedTable {
	t := make(RecommendedTable, len(s.Recommended.Rates))
	for _, rr := range s.Recommended.Rates {
		t[rr] = rr
	}
	return t
}

// Lookup returns the recommended maximum for a refresh rate, defaulting to the
// rate itself for rates missing from the table.
func (t RecommendedTable) Lookup(refreshRate int) int {
	if v, ok := t[refreshRate]; ok {
		return v
	}
	return refreshRate
}

// Validate checks the settings for values the simulator cannot run with.
func (s Settings) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{s.Display.RefreshRate >= 0, "display.refresh_rate must be >= 0"},
		{s.Display.MinWidth > 0, "display.min_width must be > 0"},
		{s.Display.MinHeight > 0, "display.min_height must be > 0"},
		{s.Display.MinHeight > 2*s.Display.BoxMargin, "display.min_height must exceed twice box_margin"},
		{s.Display.ButtonWidth > 0 && s.Display.ButtonHeight > 0, "display button size must be > 0"},
		{s.Strip.Height > 0, "strip.height must be > 0"},
		{s.Strip.MinSpeed >= 1, "strip.min_speed must be >= 1"},
		{s.Strip.MaxSpeed >= s.Strip.MinSpeed, "strip.max_speed must be >= strip.min_speed"},
		{s.Strip.MaxSpeed <= 200, "strip.max_speed must be <= 200"},
		{s.Strip.InitialSpeed >= s.Strip.MinSpeed && s.Strip.InitialSpeed <= s.Strip.MaxSpeed, "strip.initial_speed must be within [min_speed, max_speed]"},
		{s.Strip.Bars > 0, "strip.bars must be > 0"},
		{s.Input.AdjustIntervalMS >= 0, "input.adjust_interval_ms must be >= 0"},
		{s.Input.Step > 0 && s.Input.FastStep > 0, "input steps must be > 0"},
		{s.Warning.AcknowledgeDelayMS >= 0, "warning.acknowledge_delay_ms must be >= 0"},
		{s.Overlay.FadeStep > 0 && s.Overlay.FadeStep <= 255, "overlay.fade_step must be within [1, 255]"},
		{s.TUI.ReleaseAfterMS >= 0, "tui.release_after_ms must be >= 0"},
		{s.TUI.CellWidth > 0 && s.TUI.CellHeight > 0, "tui cell size must be > 0"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("config: %s", c.msg)
		}
	}
	for _, rr := range s.Recommended.Rates {
		if rr <= 0 {
			return fmt.Errorf("config: recommended.rates contains non-positive rate %d", rr)
		}
	}
	if _, ok := themeNames[s.Theme]; !ok {
		return fmt.Errorf("config: unknown theme %q", s.Theme)
	}
	return nil
}

var themeNames = map[string]struct{}{"": {}, "dark": {}, "light": {}}

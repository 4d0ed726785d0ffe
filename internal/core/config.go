package core

// DefaultRefreshRate is used whenever the display refresh rate cannot be detected.
const DefaultRefreshRate = 60

// RuntimeConfig contains the platform parameters a frontend hands to the simulator.
type RuntimeConfig struct {
	ScreenW     int // Window width in logical pixels
	ScreenH     int // Window height in logical pixels
	TickRate    int // Simulation ticks per second (default 60)
	RefreshRate int // Display refresh rate in Hz, detected once at startup
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:     1200,
		ScreenH:     800,
		TickRate:    60,
		RefreshRate: DefaultRefreshRate,
	}
}

// Normalize replaces unusable values with defaults.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	if c.TickRate <= 0 {
		c.TickRate = 60
	}
	if c.RefreshRate <= 0 {
		c.RefreshRate = DefaultRefreshRate
	}
	return c
}

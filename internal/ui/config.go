package ui

// Config contains window/input/audio related settings.
type Config struct {
	Title     string  // window title
	Scale     int     // integer upscaling factor, one CHIP-8 pixel becomes Scale x Scale
	Mute      bool    // start with the beep silenced
	ToneHz    float64 // beep frequency
	Volume    float64 // beep volume 0..1
	ShowDebug bool    // start with the register overlay visible
	// Audio buffering
	AudioLowLatency bool // smaller player buffer
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.Title == "" {
		c.Title = "chip8emu"
	}
	if c.Scale <= 0 {
		c.Scale = 10
	}
	if c.ToneHz <= 0 {
		c.ToneHz = 440
	}
	if c.Volume <= 0 {
		c.Volume = 0.25
	}
}

package emu

// Config contains settings that affect emulation behavior.
type Config struct {
	Trace          bool  // log every executed instruction
	CyclesPerFrame int   // instructions per StepFrame
	Seed           int64 // RND seed, 0 seeds from the clock
}

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.CyclesPerFrame <= 0 {
		c.CyclesPerFrame = 10
	}
}

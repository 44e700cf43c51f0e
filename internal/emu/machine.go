package emu

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
)

// Machine wires the interpreter to its framebuffer and drives it frame by frame.
type Machine struct {
	cfg     Config
	cpu     *cpu.CPU
	fb      *display.Framebuffer
	rgba    []byte // RGBA 64x32*4
	rom     []byte
	romPath string
	logger  *log.Logger
	// first fatal error; stepping stops until Reset or a new load
	err error
}

func New(cfg Config) *Machine {
	cfg.Defaults()
	fb := display.New()
	c := cpu.New(fb)
	if cfg.Seed != 0 {
		c.SetRand(rand.New(rand.NewSource(cfg.Seed)))
	}
	return &Machine{
		cfg:    cfg,
		cpu:    c,
		fb:     fb,
		rgba:   make([]byte, display.Width*display.Height*4),
		logger: log.Default(),
	}
}

// SetLogger routes trace lines and interpreter diagnostics to l.
func (m *Machine) SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	m.logger = l
	m.cpu.SetLogger(l)
}

// LoadROM resets the machine and loads rom at 0x200. The bytes are kept for Reset.
func (m *Machine) LoadROM(rom []byte) error {
	m.err = nil
	if err := m.cpu.LoadProgram(rom); err != nil {
		m.rom = nil
		m.romPath = ""
		return err
	}
	m.rom = append([]byte(nil), rom...)
	return nil
}

// LoadROMFromFile loads a raw CHIP-8 program from disk.
func (m *Machine) LoadROMFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rom: %w", err)
	}
	if err := m.LoadROM(data); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	m.romPath = path
	m.logger.Printf("loaded ROM: %s (%d bytes)", path, len(data))
	return nil
}

// ROMPath returns the currently loaded ROM file path, if any.
func (m *Machine) ROMPath() string { return m.romPath }

// Reset reloads the current ROM and clears a latched fault.
func (m *Machine) Reset() {
	m.err = nil
	// Size was checked when the ROM was first loaded.
	_ = m.cpu.LoadProgram(m.rom)
}

// Step executes one instruction. After a fatal error it keeps returning that error.
func (m *Machine) Step() error {
	if m.err != nil {
		return m.err
	}
	if m.cfg.Trace {
		m.trace()
	}
	if err := m.cpu.Step(); err != nil {
		m.err = err
		m.logger.Printf("halted: %v", err)
		return err
	}
	return nil
}

// StepFrame runs CyclesPerFrame instructions, stopping at the first fatal error.
func (m *Machine) StepFrame() error {
	for i := 0; i < m.cfg.CyclesPerFrame; i++ {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Err returns the latched fatal error, if any.
func (m *Machine) Err() error { return m.err }

// KeyPressed forwards a keypad event (code 0x0..0xF) to the interpreter.
func (m *Machine) KeyPressed(code byte, pressed bool) { m.cpu.KeyPressed(code, pressed) }

// SoundActive reports whether the sound timer is running.
func (m *Machine) SoundActive() bool { return m.cpu.SoundActive() }

// Framebuffer renders the screen as RGBA 64x32*4 using the default palette.
// The returned slice is reused by the next call.
func (m *Machine) Framebuffer() []byte {
	m.rgba = m.fb.RGBA(m.rgba, display.ColorOn, display.ColorOff)
	return m.rgba
}

// Display exposes the pixel grid for renderers that want the raw bits.
func (m *Machine) Display() *display.Framebuffer { return m.fb }

// State returns a snapshot of the interpreter for inspection tools.
func (m *Machine) State() cpu.State { return m.cpu.Snapshot() }

// CyclesPerFrame returns the configured instructions per frame.
func (m *Machine) CyclesPerFrame() int { return m.cfg.CyclesPerFrame }

func (m *Machine) trace() {
	if _, waiting := m.cpu.Awaiting(); waiting {
		return
	}
	c := m.cpu
	op := uint16(c.Read(c.PC))<<8 | uint16(c.Read(c.PC+1))
	m.logger.Printf("PC=%03X OP=%04X %-14s I=%03X SP=%d DT=%02X ST=%02X V=% X",
		c.PC, op, cpu.Disassemble(op), c.I, c.SP, c.DT, c.ST, c.V[:])
}

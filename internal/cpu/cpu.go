package cpu

import (
	"log"
	"math/rand"
	"sync"
	"time"
)

const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	MaxProgram   = MemorySize - ProgramStart
	StackDepth   = 16
	NumKeys      = 16
)

// Display is the part of the screen the interpreter needs: CLS and DRW.
type Display interface {
	Clear()
	BlitSprite(x, y byte, sprite []byte) bool
}

// execState is either running or awaitingKey. Fx0A moves to awaitingKey,
// the next key press moves back to running.
type execState interface{ execState() }

type running struct{}

type awaitingKey struct{ reg byte }

func (running) execState()     {}
func (awaitingKey) execState() {}

// CPU is the CHIP-8 interpreter: memory, registers, stack, timers and keypad.
type CPU struct {
	V  [16]byte // V0..VF, VF doubles as carry/borrow/collision flag
	I  uint16
	PC uint16
	SP byte // number of return addresses on the stack
	DT byte // delay timer
	ST byte // sound timer

	// Opcode is the last instruction fetched.
	Opcode uint16

	mem    [MemorySize]byte
	stack  [StackDepth]uint16
	digits [16]uint16

	// mu guards keys and state, which input events change between steps.
	mu    sync.Mutex
	keys  [NumKeys]bool
	state execState

	display Display
	rng     *rand.Rand
	log     *log.Logger
}

// nopDisplay stands in when no screen is attached.
type nopDisplay struct{}

func (nopDisplay) Clear() {}

func (nopDisplay) BlitSprite(x, y byte, sprite []byte) bool { return false }

// New creates a CPU drawing to d, already reset. A nil d discards drawing.
func New(d Display) *CPU {
	if d == nil {
		d = nopDisplay{}
	}
	c := &CPU{
		display: d,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.Default(),
	}
	c.Reset()
	return c
}

// SetLogger routes diagnostics (unknown opcodes) to l.
func (c *CPU) SetLogger(l *log.Logger) {
	if l != nil {
		c.log = l
	}
}

// SetRand replaces the random source used by RND.
func (c *CPU) SetRand(r *rand.Rand) {
	if r != nil {
		c.rng = r
	}
}

// Reset clears memory, registers, stack, timers and keys, reloads the digit sprites
// and points PC at ProgramStart.
func (c *CPU) Reset() {
	c.mem = [MemorySize]byte{}
	c.stack = [StackDepth]uint16{}
	c.V = [16]byte{}
	c.I, c.Opcode = 0, 0
	c.SP, c.DT, c.ST = 0, 0, 0
	c.PC = ProgramStart
	c.loadDigits()

	c.mu.Lock()
	c.keys = [NumKeys]bool{}
	c.state = running{}
	c.mu.Unlock()

	c.display.Clear()
}

// LoadProgram resets the CPU and copies program to ProgramStart.
// On a LoadError the CPU stays in its reset state.
func (c *CPU) LoadProgram(program []byte) error {
	c.Reset()
	if len(program) > MaxProgram {
		return &LoadError{Size: len(program), Max: MaxProgram}
	}
	copy(c.mem[ProgramStart:], program)
	return nil
}

// KeyPressed records a key transition. A press while waiting on Fx0A stores the key
// in the waiting register and resumes execution. Codes above 0xF are ignored.
// Safe to call from another goroutine than the one calling Step.
func (c *CPU) KeyPressed(code byte, pressed bool) {
	if code >= NumKeys {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys[code] = pressed
	if !pressed {
		return
	}
	if w, ok := c.state.(awaitingKey); ok {
		c.V[w.reg] = code
		c.state = running{}
	}
}

// Awaiting reports whether execution is suspended on Fx0A and which register receives the key.
func (c *CPU) Awaiting() (reg byte, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	w, ok := c.state.(awaitingKey)
	return w.reg, ok
}

// SoundActive reports whether the sound timer asks for a tone.
func (c *CPU) SoundActive() bool { return c.ST > 0 }

// Read returns the byte at addr, or 0 outside memory.
func (c *CPU) Read(addr uint16) byte {
	if int(addr) >= MemorySize {
		return 0
	}
	return c.mem[addr]
}

// State is a copy of everything the inspection tools display.
type State struct {
	PC, I, Opcode uint16
	SP, DT, ST    byte
	V             [16]byte
	Stack         [StackDepth]uint16
	Keys          [NumKeys]bool
	Memory        [MemorySize]byte
	Waiting       bool
	WaitReg       byte
}

// Snapshot copies the current machine state.
func (c *CPU) Snapshot() State {
	s := State{
		PC: c.PC, I: c.I, Opcode: c.Opcode,
		SP: c.SP, DT: c.DT, ST: c.ST,
		Stack:  c.stack,
		Memory: c.mem,
	}
	// KeyPressed writes the waiting register under mu.
	c.mu.Lock()
	s.V = c.V
	s.Keys = c.keys
	if w, ok := c.state.(awaitingKey); ok {
		s.Waiting, s.WaitReg = true, w.reg
	}
	c.mu.Unlock()
	return s
}

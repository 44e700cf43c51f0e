package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
)

// Terminals report no key-up, so a keypad press is released after this many frames.
const holdFrames = 6

// logLines is an io.Writer keeping the most recent log lines for the log view.
type logLines struct {
	mu    sync.Mutex
	max   int
	lines []string
}

func (l *logLines) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		l.lines = append(l.lines, line)
	}
	if over := len(l.lines) - l.max; over > 0 {
		l.lines = l.lines[over:]
	}
	return len(p), nil
}

func (l *logLines) last(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n > len(l.lines) {
		n = len(l.lines)
	}
	return append([]string(nil), l.lines[len(l.lines)-n:]...)
}

// debugger owns the machine. Everything touching it runs on the gocui main loop,
// the ticker goroutine only schedules frames through g.Update.
type debugger struct {
	g    *gocui.Gui
	m    *emu.Machine
	logs *logLines

	running bool
	done    chan struct{}
	held    [cpu.NumKeys]int // frames left before auto-release
	frames  int
}

func newDebugger(g *gocui.Gui, m *emu.Machine, logs *logLines) *debugger {
	return &debugger{g: g, m: m, logs: logs}
}

func (d *debugger) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	screenW := display.Width + 1
	screenH := display.Height/2 + 1

	if v, err := g.SetView("screen", 0, 0, screenW, screenH); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Screen"
	}
	if v, err := g.SetView("registers", screenW+1, 0, maxX-1, 11); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Registers"
	}
	if v, err := g.SetView("stack", screenW+1, 12, maxX-1, screenH); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Stack"
	}
	if v, err := g.SetView("memory", 0, screenH+1, maxX-1, maxY-8); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Memory"
	}
	if v, err := g.SetView("log", 0, maxY-7, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Log  [space] step  [F5] run/pause  [F6] reset  [^C] quit"
		v.Autoscroll = true
	}
	return d.render(g)
}

func (d *debugger) bindKeys() error {
	bindings := []struct {
		key interface{}
		h   func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, quit},
		{gocui.KeySpace, d.step},
		{gocui.KeyF5, d.toggleRun},
		{gocui.KeyF6, d.reset},
	}
	for _, b := range bindings {
		if err := d.g.SetKeybinding("", b.key, gocui.ModNone, b.h); err != nil {
			return err
		}
	}
	for _, r := range emu.KeyLayout {
		code, _ := emu.KeyForRune(r)
		if err := d.g.SetKeybinding("", r, gocui.ModNone, d.press(code)); err != nil {
			return err
		}
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (d *debugger) press(code byte) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		d.m.KeyPressed(code, true)
		d.held[code] = holdFrames
		return nil
	}
}

// releaseKeys counts down held keys once per frame.
func (d *debugger) releaseKeys() {
	for code, n := range d.held {
		if n == 0 {
			continue
		}
		d.held[code] = n - 1
		if n == 1 {
			d.m.KeyPressed(byte(code), false)
		}
	}
}

func (d *debugger) step(g *gocui.Gui, v *gocui.View) error {
	if d.running {
		return nil
	}
	// errors are latched by the machine and shown in the registers view
	_ = d.m.Step()
	return d.render(g)
}

func (d *debugger) reset(g *gocui.Gui, v *gocui.View) error {
	d.m.Reset()
	d.held = [cpu.NumKeys]int{}
	d.frames = 0
	fmt.Fprintf(d.logs, "%s reset\n", time.Now().Format("15:04:05"))
	return d.render(g)
}

func (d *debugger) toggleRun(g *gocui.Gui, v *gocui.View) error {
	if d.running {
		d.stopRunning()
		return d.render(g)
	}
	d.running = true
	d.done = make(chan struct{})
	go d.tick(d.done)
	return d.render(g)
}

func (d *debugger) stopRunning() {
	if !d.running {
		return
	}
	d.running = false
	close(d.done)
}

func (d *debugger) tick(done <-chan struct{}) {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			d.g.Update(d.frame)
		}
	}
}

func (d *debugger) frame(g *gocui.Gui) error {
	if !d.running {
		return nil
	}
	d.releaseKeys()
	if err := d.m.StepFrame(); err != nil {
		d.stopRunning()
	}
	d.frames++
	return d.render(g)
}

func (d *debugger) render(g *gocui.Gui) error {
	s := d.m.State()
	views := []struct {
		name string
		draw func(v *gocui.View)
	}{
		{"screen", func(v *gocui.View) { drawScreen(v, d.m.Display()) }},
		{"registers", func(v *gocui.View) { d.drawRegisters(v, s) }},
		{"stack", func(v *gocui.View) { drawStack(v, s) }},
		{"memory", func(v *gocui.View) { drawMemory(v, s) }},
		{"log", func(v *gocui.View) {
			_, h := v.Size()
			for _, line := range d.logs.last(h) {
				fmt.Fprintln(v, line)
			}
		}},
	}
	for _, vw := range views {
		v, err := g.View(vw.name)
		if err != nil {
			return err
		}
		v.Clear()
		vw.draw(v)
	}
	return nil
}

// drawScreen packs two pixel rows into one character cell.
func drawScreen(v *gocui.View, fb *display.Framebuffer) {
	var sb strings.Builder
	for y := 0; y < display.Height; y += 2 {
		for x := 0; x < display.Width; x++ {
			top, bottom := fb.Pixel(x, y), fb.Pixel(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(v, sb.String())
}

func (d *debugger) drawRegisters(v *gocui.View, s cpu.State) {
	status := "PAUSED"
	switch {
	case d.m.Err() != nil:
		status = "HALTED"
	case s.Waiting:
		status = fmt.Sprintf("WAIT KEY -> V%X", s.WaitReg)
	case d.running:
		status = "RUNNING"
	}
	op := uint16(s.Memory[s.PC&0x0FFF])<<8 | uint16(s.Memory[(s.PC+1)&0x0FFF])
	fmt.Fprintf(v, "%s  frame %d\n", status, d.frames)
	fmt.Fprintf(v, "PC=%03X  %04X %s\n", s.PC, op, cpu.Disassemble(op))
	fmt.Fprintf(v, "I=%03X SP=%d DT=%02X ST=%02X\n", s.I, s.SP, s.DT, s.ST)
	for i := 0; i < 16; i += 4 {
		fmt.Fprintf(v, "V%X=%02X V%X=%02X V%X=%02X V%X=%02X\n",
			i, s.V[i], i+1, s.V[i+1], i+2, s.V[i+2], i+3, s.V[i+3])
	}
	var keys strings.Builder
	for k, down := range s.Keys {
		if down {
			fmt.Fprintf(&keys, "%X", k)
		} else {
			keys.WriteByte('.')
		}
	}
	fmt.Fprintf(v, "keys %s\n", keys.String())
	if err := d.m.Err(); err != nil {
		fmt.Fprintf(v, "%v\n", err)
	}
}

func drawStack(v *gocui.View, s cpu.State) {
	if s.SP == 0 {
		fmt.Fprintln(v, "(empty)")
		return
	}
	for i := int(s.SP) - 1; i >= 0; i-- {
		fmt.Fprintf(v, "%2d: %03X\n", i, s.Stack[i])
	}
}

// drawMemory dumps the rows around PC and I.
func drawMemory(v *gocui.View, s cpu.State) {
	_, h := v.Size()
	rows := h / 2
	if rows < 1 {
		rows = 1
	}
	dumpRows(v, "PC", s.PC, s, rows)
	dumpRows(v, "I ", s.I, s, h-rows)
}

func dumpRows(v *gocui.View, label string, at uint16, s cpu.State, rows int) {
	base := int(at&0x0FFF) &^ 0x0F
	for r := 0; r < rows; r++ {
		addr := base + r*16
		if addr >= cpu.MemorySize {
			return
		}
		prefix := "  "
		if r == 0 {
			prefix = label
		}
		fmt.Fprintf(v, "%s %03X:", prefix, addr)
		for i := 0; i < 16; i++ {
			a := addr + i
			if a == int(at) {
				fmt.Fprintf(v, "[%02X", s.Memory[a])
			} else if a == int(at)+1 {
				fmt.Fprintf(v, "]%02X", s.Memory[a])
			} else {
				fmt.Fprintf(v, " %02X", s.Memory[a])
			}
		}
		fmt.Fprintln(v)
	}
}

package ui

import (
	"fmt"
	"strings"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawDebug prints a read-only register overlay (F1).
func (a *App) drawDebug(screen *ebiten.Image) {
	s := a.m.State()
	lines := debugLines(s)
	if a.paused {
		lines = append(lines, "PAUSED  N: step  P: resume")
	}
	if err := a.m.Err(); err != nil {
		lines = append(lines, a.truncateText("HALTED: "+err.Error(), a.maxCharsForText(6)))
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 6, 6+i*14)
	}
}

func debugLines(s cpu.State) []string {
	wait := ""
	if s.Waiting {
		wait = fmt.Sprintf("  WAIT KEY -> V%X", s.WaitReg)
	}
	lines := []string{
		fmt.Sprintf("PC:%03X  SP:%X  I:%03X", s.PC, s.SP, s.I),
		fmt.Sprintf("OP:%04X  %s", s.Opcode, cpu.Disassemble(s.Opcode)),
		fmt.Sprintf("DT:%02X  ST:%02X%s", s.DT, s.ST, wait),
		fmt.Sprintf("V0-7: % X", s.V[:8]),
		fmt.Sprintf("V8-F: % X", s.V[8:]),
	}

	var st strings.Builder
	st.WriteString("Stack:")
	for i := 0; i < int(s.SP); i++ {
		fmt.Fprintf(&st, " %03X", s.Stack[i])
	}
	lines = append(lines, st.String())

	var keys strings.Builder
	keys.WriteString("Keys: ")
	for k, down := range s.Keys {
		if down {
			fmt.Fprintf(&keys, "%X", k)
		} else {
			keys.WriteByte('.')
		}
	}
	return append(lines, keys.String())
}

// maxCharsForText approximates how many debug-font glyphs fit from x to the right edge.
func (a *App) maxCharsForText(x int) int {
	const glyphW = 6
	w := display.Width*a.cfg.Scale - x
	if w < glyphW {
		return 1
	}
	return w / glyphW
}

func (a *App) truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

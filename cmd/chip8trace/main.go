package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/cpu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
)

// traceEntry is one executed instruction and the registers before it ran.
type traceEntry struct {
	pc, op, i  uint16
	sp, dt, st byte
	v          [16]byte
}

func (te traceEntry) String() string {
	return fmt.Sprintf("PC=%03X OP=%04X %-14s I=%03X SP=%d DT=%02X ST=%02X V=% X",
		te.pc, te.op, cpu.Disassemble(te.op), te.i, te.sp, te.dt, te.st, te.v[:])
}

func capture(m *emu.Machine) traceEntry {
	s := m.State()
	op := uint16(s.Memory[s.PC&0x0FFF])<<8 | uint16(s.Memory[(s.PC+1)&0x0FFF])
	return traceEntry{pc: s.PC, op: op, i: s.I, sp: s.SP, dt: s.DT, st: s.ST, v: s.V}
}

func main() {
	romPath := flag.String("rom", "", "path to ROM (.ch8)")
	steps := flag.Int("steps", 1_000_000, "max instructions to run")
	trace := flag.Bool("trace", false, "print every instruction")
	seed := flag.Int64("seed", 1, "random seed for RND (0 seeds from the clock)")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout (e.g. 30s, 2m); 0 disables")
	stopOnLoop := flag.Bool("stopOnLoop", true, "stop when the program jumps to itself (JP to own address)")
	traceOnFail := flag.Bool("traceOnFail", false, "on a fault, print a recent trace window (slows down)")
	traceWindow := flag.Int("traceWindow", 200, "number of recent instructions to include in 'traceOnFail' dump")
	screen := flag.Bool("screen", true, "print the final screen")
	flag.Parse()

	if *romPath == "" && flag.NArg() > 0 {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		log.Fatal("-rom is required")
	}

	m := emu.New(emu.Config{Seed: *seed})
	if err := m.LoadROMFromFile(*romPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	record := *trace || (*traceOnFail && *traceWindow > 0)
	var ring []traceEntry
	if *traceOnFail && *traceWindow > 0 {
		ring = make([]traceEntry, *traceWindow)
	}
	ringIdx := 0
	ringFill := 0

	done := func(n int) {
		if *screen {
			fmt.Printf("\n%s", m.Display())
		}
		fmt.Printf("\nDone: steps=%d elapsed=%s\n", n, time.Since(start).Truncate(time.Millisecond))
	}

	for i := 0; i < *steps; i++ {
		var te traceEntry
		if record || *stopOnLoop {
			te = capture(m)
		}
		if *stopOnLoop && te.op == 0x1000|te.pc {
			fmt.Printf("\nDetected jump-to-self at %03X.\n", te.pc)
			done(i)
			return
		}
		if *trace {
			fmt.Println(te)
		}
		if ring != nil {
			ring[ringIdx] = te
			ringIdx = (ringIdx + 1) % len(ring)
			if ringFill < len(ring) {
				ringFill++
			}
		}

		if err := m.Step(); err != nil {
			fmt.Printf("\nFault: %v\n", err)
			if ringFill > 0 {
				fmt.Printf("\n--- recent trace (last %d instructions) ---\n", ringFill)
				// print in chronological order
				startIdx := (ringIdx - ringFill + len(ring)) % len(ring)
				for j := 0; j < ringFill; j++ {
					fmt.Println(ring[(startIdx+j)%len(ring)])
				}
				fmt.Printf("--- end trace ---\n")
			}
			done(i + 1)
			os.Exit(1)
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("\nTimeout after %s.\n", time.Since(start).Truncate(time.Millisecond))
			done(i + 1)
			os.Exit(2)
		}
	}
	done(*steps)
}

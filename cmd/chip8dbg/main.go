package main

import (
	"flag"
	"log"

	"github.com/jroimartin/gocui"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
)

func main() {
	romPath := flag.String("rom", "", "path to ROM (.ch8)")
	cpf := flag.Int("cpf", 10, "instructions per frame while running")
	seed := flag.Int64("seed", 0, "random seed for RND (0 seeds from the clock)")
	flag.Parse()
	if *romPath == "" && flag.NArg() > 0 {
		*romPath = flag.Arg(0)
	}
	if *romPath == "" {
		log.Fatal("-rom is required")
	}

	m := emu.New(emu.Config{CyclesPerFrame: *cpf, Seed: *seed})
	logs := &logLines{max: 200}
	m.SetLogger(log.New(logs, "", log.Ltime))
	if err := m.LoadROMFromFile(*romPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Panicln("couldn't create gui:", err)
	}
	defer g.Close()

	d := newDebugger(g, m, logs)
	g.SetManagerFunc(d.layout)
	if err := d.bindKeys(); err != nil {
		log.Panicln(err)
	}

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	d.stopRunning()
}

package main

import (
	"flag"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"log"
	"os"
	"strings"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beep"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/ui"
)

type CLIFlags struct {
	ROMPath string
	Scale   int
	Title   string
	Trace   bool
	CPF     int   // instructions per frame
	Seed    int64 // RND seed, 0 = clock
	Mute    bool
	ToneHz  float64
	Debug   bool
	LowLat  bool

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	WAVOut   string
	Expect   string // expected framebuffer CRC32 hex (e.g., "1a2b3c4d")
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.StringVar(&f.ROMPath, "rom", "", "path to ROM (.ch8)")
	flag.IntVar(&f.Scale, "scale", 10, "window scale")
	flag.StringVar(&f.Title, "title", "chip8emu", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "CPU trace log")
	flag.IntVar(&f.CPF, "cpf", 10, "instructions per frame")
	flag.Int64Var(&f.Seed, "seed", 0, "random seed for RND (0 seeds from the clock)")
	flag.BoolVar(&f.Mute, "mute", false, "start muted")
	flag.Float64Var(&f.ToneHz, "tone", 440, "beep frequency in Hz")
	flag.BoolVar(&f.Debug, "debug", false, "show register overlay on start")
	flag.BoolVar(&f.LowLat, "lowlatency", false, "use a smaller audio buffer (~20ms)")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last framebuffer to PNG at path")
	flag.StringVar(&f.WAVOut, "outwav", "", "record the beep to a WAV file at path")
	flag.StringVar(&f.Expect, "expect", "", "assert framebuffer CRC32 (hex)")
	flag.Parse()
	if f.ROMPath == "" && flag.NArg() > 0 {
		f.ROMPath = flag.Arg(0)
	}
	return f
}

func runHeadless(m *emu.Machine, f CLIFlags) error {
	frames := f.Frames
	if frames <= 0 {
		frames = 1
	}
	var rec *beep.Recorder
	if f.WAVOut != "" {
		rec = beep.NewRecorder(f.ToneHz, 60)
	}

	start := time.Now()
	var runErr error
	ran := 0
	for ran < frames {
		runErr = m.StepFrame()
		ran++
		if rec != nil {
			rec.Frame(m.SoundActive() && runErr == nil)
		}
		if runErr != nil {
			break
		}
	}
	dur := time.Since(start)

	fb := m.Framebuffer() // RGBA 64x32*4
	crc := crc32.ChecksumIEEE(fb)
	fps := float64(ran) / dur.Seconds()

	log.Printf("headless: frames=%d elapsed=%s fps=%.2f lit=%d fb_crc32=%08x",
		ran, dur.Truncate(time.Millisecond), fps, m.Display().Lit(), crc)

	if f.PNGOut != "" {
		if err := saveFramePNG(fb, display.Width, display.Height, f.PNGOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", f.PNGOut)
	}
	if rec != nil {
		if err := rec.WriteFile(f.WAVOut); err != nil {
			return fmt.Errorf("write WAV: %w", err)
		}
		log.Printf("wrote %s (%s)", f.WAVOut, rec.Duration().Truncate(time.Millisecond))
	}

	if runErr != nil {
		return fmt.Errorf("halted after %d frames: %w", ran, runErr)
	}
	if f.Expect != "" {
		// normalize expected hex (allow with/without 0x, upper/lowercase)
		want := strings.TrimPrefix(strings.ToLower(f.Expect), "0x")
		got := fmt.Sprintf("%08x", crc)
		if got != want {
			return fmt.Errorf("checksum mismatch: got %s, want %s", got, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h int, path string) error {
	img := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(img.Pix, pix)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	f := parseFlags()
	if f.ROMPath == "" {
		log.Fatal("-rom is required")
	}

	m := emu.New(emu.Config{
		Trace:          f.Trace,
		CyclesPerFrame: f.CPF,
		Seed:           f.Seed,
	})
	if err := m.LoadROMFromFile(f.ROMPath); err != nil {
		log.Fatalf("load rom: %v", err)
	}

	if f.Headless {
		if err := runHeadless(m, f); err != nil {
			log.Fatal(err)
		}
		return
	}

	uiCfg := ui.Config{
		Title:     f.Title,
		Scale:     f.Scale,
		Mute:      f.Mute,
		ToneHz:    f.ToneHz,
		ShowDebug: f.Debug,

		AudioLowLatency: f.LowLat,
	}
	app := ui.NewApp(uiCfg, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

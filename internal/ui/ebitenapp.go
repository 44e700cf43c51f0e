package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beep"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/display"
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

type App struct {
	cfg     Config
	m       *emu.Machine
	tex     *ebiten.Image
	overlay *ebiten.Image
	paused  bool
	fast    bool
	// fault already reported for the current run
	halted bool

	audioCtx    *audio.Context
	audioPlayer *audio.Player
	tone        *beep.Tone

	toastMsg   string
	toastUntil time.Time
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(display.Width*cfg.Scale, display.Height*cfg.Scale)
	a := &App{cfg: cfg, m: m}
	a.initAudio()
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	a.updateKeypad()
	if err := a.updateControls(); err != nil {
		return err
	}

	if !a.paused {
		frames := 1
		if a.fast {
			frames = 5
		}
		for i := 0; i < frames; i++ {
			if err := a.m.StepFrame(); err != nil {
				a.reportFault(err)
				break
			}
		}
	}
	a.updateTone()
	return nil
}

// reportFault logs a fatal interpreter error once per run.
func (a *App) reportFault(err error) {
	if a.halted {
		return
	}
	a.halted = true
	log.Printf("emulation halted: %v", err)
	a.toast("Halted: " + err.Error())
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(display.Width, display.Height)
	}
	a.tex.WritePixels(a.m.Framebuffer())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(a.cfg.Scale), float64(a.cfg.Scale))
	screen.DrawImage(a.tex, op)

	if a.cfg.ShowDebug {
		if a.overlay == nil {
			a.overlay = ebiten.NewImage(display.Width*a.cfg.Scale, display.Height*a.cfg.Scale)
			a.overlay.Fill(color.RGBA{0, 0, 0, 160})
		}
		screen.DrawImage(a.overlay, nil)
		a.drawDebug(screen)
	}
	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		ebitenutil.DebugPrintAt(screen, a.toastMsg, 4, display.Height*a.cfg.Scale-18)
	}
}

func (a *App) Layout(outW, outH int) (int, int) {
	return display.Width * a.cfg.Scale, display.Height * a.cfg.Scale
}

// toast shows a short status line at the bottom of the window.
func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) saveScreenshot() (string, error) {
	fb := a.m.Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * display.Width,
		Rect:   image.Rect(0, 0, display.Width, display.Height),
	}
	copy(img.Pix, fb)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}

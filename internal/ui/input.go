package ui

import (
	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/emu"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keypadKeys follows emu.KeyLayout position by position.
var keypadKeys = [16]ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyR,
	ebiten.KeyA, ebiten.KeyS, ebiten.KeyD, ebiten.KeyF,
	ebiten.KeyZ, ebiten.KeyX, ebiten.KeyC, ebiten.KeyV,
}

// updateKeypad forwards press and release edges of the 16 mapped keys.
func (a *App) updateKeypad() {
	for i, k := range keypadKeys {
		code := emu.KeypadCodes[i]
		if inpututil.IsKeyJustPressed(k) {
			a.m.KeyPressed(code, true)
		}
		if inpututil.IsKeyJustReleased(k) {
			a.m.KeyPressed(code, false)
		}
	}
}

// updateControls handles the emulator hotkeys. It returns ebiten.Termination on Escape.
func (a *App) updateControls() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Pause toggle (P)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}

	// Fast-forward (Tab): while held, run multiple frames per Ebiten update
	if fast := ebiten.IsKeyPressed(ebiten.KeyTab); fast != a.fast {
		a.fast = fast
		a.applyPlayerBufferSize()
	}

	// Single instruction step when paused (N)
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if err := a.m.Step(); err != nil {
			a.reportFault(err)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.m.Reset()
		a.halted = false
		a.toast("Reset")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.cfg.ShowDebug = !a.cfg.ShowDebug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		a.cfg.Mute = !a.cfg.Mute
		if a.cfg.Mute {
			a.toast("Muted")
		} else {
			a.toast("Sound on")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err != nil {
			a.toast("Screenshot failed: " + err.Error())
		} else {
			a.toast("Saved " + name)
		}
	}
	return nil
}

package ui

import (
	"log"
	"time"

	"github.com/FabianRolfMatthiasNoll/Chip8Emulator/internal/beep"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// initAudio starts a player that streams the beep tone for the whole session.
// The tone itself is gated on the sound timer in Update.
func (a *App) initAudio() {
	a.tone = beep.NewTone(a.cfg.ToneHz, a.cfg.Volume)
	a.audioCtx = audio.NewContext(beep.SampleRate)
	p, err := a.audioCtx.NewPlayer(a.tone)
	if err != nil {
		log.Printf("audio disabled: %v", err)
		return
	}
	a.audioPlayer = p
	a.applyPlayerBufferSize()
	a.audioPlayer.Play()
}

// applyPlayerBufferSize keeps the player buffer small so the beep starts and stops
// close to the sound timer edges.
func (a *App) applyPlayerBufferSize() {
	if a.audioPlayer == nil {
		return
	}
	a.audioPlayer.SetBufferSize(playerBufferSize(a.cfg.AudioLowLatency, a.fast))
}

// playerBufferSize is ~20ms in low-latency mode or during fast-forward, ~40ms otherwise.
func playerBufferSize(lowLatency, fast bool) time.Duration {
	bufMs := 40
	if lowLatency || fast {
		bufMs = 20
	}
	return time.Duration(bufMs) * time.Millisecond
}

// updateTone follows the sound timer. Paused, halted or muted sessions stay silent.
func (a *App) updateTone() {
	if a.tone == nil {
		return
	}
	a.tone.SetActive(a.m.SoundActive() && a.m.Err() == nil && !a.cfg.Mute && !a.paused)
}

package beep

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	SampleRate = 44100
	DefaultHz  = 440
)

// Tone is a square-wave generator gated by the sound timer. It implements io.Reader
// producing 16-bit little-endian stereo frames, the format ebiten's audio player expects.
type Tone struct {
	hz     float64
	volume float64 // 0..1
	active atomic.Bool

	// phase is only touched by the reader goroutine.
	phase float64
}

// NewTone creates a silent tone. hz <= 0 selects DefaultHz, volume is clamped to 0..1.
func NewTone(hz, volume float64) *Tone {
	if hz <= 0 {
		hz = DefaultHz
	}
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return &Tone{hz: hz, volume: volume}
}

// SetActive turns the tone on or off. Safe to call while another goroutine reads.
func (t *Tone) SetActive(on bool) { t.active.Store(on) }

// Active reports whether the tone is sounding.
func (t *Tone) Active() bool { return t.active.Load() }

// next returns one mono sample and advances the phase.
func (t *Tone) next(on bool) int16 {
	if !on {
		t.phase = 0
		return 0
	}
	amp := int16(t.volume * 0x3FFF)
	s := amp
	if t.phase >= 0.5 {
		s = -amp
	}
	t.phase += t.hz / SampleRate
	if t.phase >= 1 {
		t.phase -= 1
	}
	return s
}

func (t *Tone) Read(p []byte) (int, error) {
	// Smaller than one stereo frame: hand back silence so the player never sees 0 bytes.
	if len(p) < 4 {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	on := t.Active()
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		s := uint16(t.next(on))
		binary.LittleEndian.PutUint16(p[i:], s)
		binary.LittleEndian.PutUint16(p[i+2:], s)
	}
	return n, nil
}

// AppendSamples appends count mono samples to dst.
func (t *Tone) AppendSamples(dst []int, count int, on bool) []int {
	for i := 0; i < count; i++ {
		dst = append(dst, int(t.next(on)))
	}
	return dst
}

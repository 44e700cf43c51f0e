package beep

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Recorder captures the tone frame by frame during headless runs and encodes it as WAV.
type Recorder struct {
	tone *Tone
	fps  int
	data []int
}

// NewRecorder records a tone of hz at fps frames per second (60 when fps <= 0).
func NewRecorder(hz float64, fps int) *Recorder {
	if fps <= 0 {
		fps = 60
	}
	return &Recorder{tone: NewTone(hz, 1), fps: fps}
}

// Frame appends one video frame worth of samples, a tone if active or silence.
func (r *Recorder) Frame(active bool) {
	r.data = r.tone.AppendSamples(r.data, SampleRate/r.fps, active)
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int { return len(r.data) }

// Duration returns the recorded length.
func (r *Recorder) Duration() time.Duration {
	return time.Duration(len(r.data)) * time.Second / SampleRate
}

// Write encodes the recording as 16-bit mono PCM WAV.
func (r *Recorder) Write(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           r.data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: %w", err)
	}
	return nil
}

// WriteFile writes the recording to path.
func (r *Recorder) WriteFile(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	return r.Write(f)
}

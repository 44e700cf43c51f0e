package ui

import (
	"testing"
	"time"
)

func TestPlayerBufferSize(t *testing.T) {
	cases := []struct {
		lowLatency, fast bool
		want             time.Duration
	}{
		{false, false, 40 * time.Millisecond},
		{true, false, 20 * time.Millisecond},
		{false, true, 20 * time.Millisecond},
		{true, true, 20 * time.Millisecond},
	}
	for _, tc := range cases {
		if got := playerBufferSize(tc.lowLatency, tc.fast); got != tc.want {
			t.Fatalf("lowLatency=%v fast=%v got %s want %s", tc.lowLatency, tc.fast, got, tc.want)
		}
	}
}

func TestConfigDefaultsKeepsLowLatency(t *testing.T) {
	c := Config{AudioLowLatency: true}
	c.Defaults()
	if !c.AudioLowLatency || c.Scale != 10 || c.ToneHz != 440 || c.Volume != 0.25 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

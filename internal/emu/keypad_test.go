package emu

import "testing"

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want byte
	}{
		{'1', 0x1}, {'4', 0xC}, {'q', 0x4}, {'R', 0xD},
		{'a', 0x7}, {'f', 0xE}, {'z', 0xA}, {'x', 0x0}, {'c', 0xB}, {'v', 0xF},
	}
	for _, tt := range tests {
		got, ok := KeyForRune(tt.r)
		if !ok || got != tt.want {
			t.Fatalf("KeyForRune(%q) got (%X,%v) want %X", tt.r, got, ok, tt.want)
		}
	}
	if _, ok := KeyForRune('p'); ok {
		t.Fatalf("'p' should not map to a key")
	}
}

func TestKeypadCodesCoverAllKeys(t *testing.T) {
	var seen [16]bool
	for _, c := range KeypadCodes {
		seen[c] = true
	}
	for k, ok := range seen {
		if !ok {
			t.Fatalf("key %X has no host binding", k)
		}
	}
}

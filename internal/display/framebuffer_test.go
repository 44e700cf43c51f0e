package display

import (
	"strings"
	"testing"
)

func TestBlitSprite_SetsPixelsMSBFirst(t *testing.T) {
	f := New()
	if f.BlitSprite(0, 0, []byte{0xA0}) { // 1010 0000
		t.Fatalf("first blit on empty screen reported a collision")
	}
	want := []bool{true, false, true, false, false, false, false, false}
	for x, w := range want {
		if got := f.Pixel(x, 0); got != w {
			t.Fatalf("pixel (%d,0) got %v want %v", x, got, w)
		}
	}
	if n := f.Lit(); n != 2 {
		t.Fatalf("lit count got %d want 2", n)
	}
}

func TestBlitSprite_CollisionOnlyWhenLitPixelTurnsOff(t *testing.T) {
	f := New()
	f.BlitSprite(10, 5, []byte{0xF0})
	// Overlapping sprite shares bits 0x30 with what is already on screen.
	if !f.BlitSprite(10, 5, []byte{0x3C}) {
		t.Fatalf("expected collision for overlapping sprite")
	}
	// 0xF0 ^ 0x3C = 0xCC
	for x, w := range []bool{true, true, false, false, true, true, false, false} {
		if got := f.Pixel(10+x, 5); got != w {
			t.Fatalf("pixel (%d,5) got %v want %v", 10+x, got, w)
		}
	}
	// Disjoint sprite on another row must not collide.
	if f.BlitSprite(10, 6, []byte{0xFF}) {
		t.Fatalf("disjoint sprite reported collision")
	}
}

func TestBlitSprite_DoubleBlitRestoresScreen(t *testing.T) {
	f := New()
	f.BlitSprite(3, 3, []byte{0x81})
	before := f.String()

	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}
	first := f.BlitSprite(20, 10, sprite)
	if first {
		t.Fatalf("first blit collided on untouched area")
	}
	if !f.BlitSprite(20, 10, sprite) {
		t.Fatalf("second blit should collide where the first turned pixels on")
	}
	if got := f.String(); got != before {
		t.Fatalf("double blit did not restore the screen:\n%s\nwant:\n%s", got, before)
	}
}

func TestBlitSprite_WrapsBottomRightCorner(t *testing.T) {
	f := New()
	f.BlitSprite(63, 31, []byte{0xC0, 0xC0})
	for _, p := range [][2]int{{63, 31}, {0, 31}, {63, 0}, {0, 0}} {
		if !f.Pixel(p[0], p[1]) {
			t.Fatalf("pixel (%d,%d) not lit after wrapped blit", p[0], p[1])
		}
	}
	if n := f.Lit(); n != 4 {
		t.Fatalf("lit count got %d want 4", n)
	}
}

func TestBlitSprite_WrapsRightEdge(t *testing.T) {
	f := New()
	f.BlitSprite(60, 0, []byte{0xFF})
	for _, x := range []int{60, 61, 62, 63, 0, 1, 2, 3} {
		if !f.Pixel(x, 0) {
			t.Fatalf("column %d not lit on row 0", x)
		}
	}
	for x := 4; x < 60; x++ {
		if f.Pixel(x, 0) {
			t.Fatalf("column %d unexpectedly lit", x)
		}
	}
}

func TestBlitSprite_EmptySprite(t *testing.T) {
	f := New()
	if f.BlitSprite(1, 1, nil) {
		t.Fatalf("empty sprite reported collision")
	}
	if f.Lit() != 0 {
		t.Fatalf("empty sprite changed the screen")
	}
}

func TestClear(t *testing.T) {
	f := New()
	f.BlitSprite(0, 0, []byte{0xFF, 0xFF, 0xFF})
	f.Clear()
	if n := f.Lit(); n != 0 {
		t.Fatalf("lit after clear got %d want 0", n)
	}
}

func TestRGBA(t *testing.T) {
	f := New()
	f.BlitSprite(1, 0, []byte{0x80})
	out := f.RGBA(nil, ColorOn, ColorOff)
	if len(out) != Width*Height*4 {
		t.Fatalf("rgba len got %d want %d", len(out), Width*Height*4)
	}
	if out[4] != ColorOn.R || out[5] != ColorOn.G || out[6] != ColorOn.B || out[7] != 0xFF {
		t.Fatalf("pixel 1 got %v want on color", out[4:8])
	}
	if out[0] != ColorOff.R || out[1] != ColorOff.G || out[2] != ColorOff.B {
		t.Fatalf("pixel 0 got %v want off color", out[0:4])
	}
	// Reuses a large enough buffer.
	buf := make([]byte, Width*Height*4)
	if got := f.RGBA(buf, ColorOn, ColorOff); &got[0] != &buf[0] {
		t.Fatalf("RGBA reallocated a buffer that was large enough")
	}
}

func TestString(t *testing.T) {
	f := New()
	f.BlitSprite(0, 0, []byte{0x80})
	lines := strings.Split(strings.TrimSuffix(f.String(), "\n"), "\n")
	if len(lines) != Height {
		t.Fatalf("rows got %d want %d", len(lines), Height)
	}
	if !strings.HasPrefix(lines[0], "#.") || len(lines[0]) != Width {
		t.Fatalf("row 0 got %q", lines[0])
	}
}

package display

import (
	"image/color"
	"strings"
)

// Screen dimensions in CHIP-8 pixels.
const (
	Width  = 64
	Height = 32
)

// Default palette used by the window, screenshots and the headless CRC.
var (
	ColorOn  = color.RGBA{0xE0, 0xF8, 0xD0, 0xFF}
	ColorOff = color.RGBA{0x08, 0x18, 0x20, 0xFF}
)

// Framebuffer is the monochrome 64x32 pixel grid. A set pixel is lit.
// It is mutated only by Clear and BlitSprite.
type Framebuffer struct {
	pix [Width * Height]bool
}

func New() *Framebuffer { return &Framebuffer{} }

// Clear unlights every pixel.
func (f *Framebuffer) Clear() {
	for i := range f.pix {
		f.pix[i] = false
	}
}

// BlitSprite XORs an 8-pixel-wide sprite onto the grid with its top-left corner at (x, y).
// Each byte is one row, most significant bit leftmost. Coordinates wrap around both edges.
// It reports whether any lit pixel was turned off.
func (f *Framebuffer) BlitSprite(x, y byte, sprite []byte) bool {
	collided := false
	for row, bits := range sprite {
		py := (int(y) + row) % Height
		for bit := 0; bit < 8; bit++ {
			if bits&(0x80>>bit) == 0 {
				continue
			}
			px := (int(x) + bit) % Width
			i := py*Width + px
			if f.pix[i] {
				collided = true
			}
			f.pix[i] = !f.pix[i]
		}
	}
	return collided
}

// Pixel reports whether the pixel at (x, y) is lit. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	x = ((x % Width) + Width) % Width
	y = ((y % Height) + Height) % Height
	return f.pix[y*Width+x]
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, p := range f.pix {
		if p {
			n++
		}
	}
	return n
}

// RGBA renders the grid into dst as 64*32*4 RGBA bytes and returns it.
// dst is reallocated when it is too small.
func (f *Framebuffer) RGBA(dst []byte, on, off color.RGBA) []byte {
	if len(dst) < Width*Height*4 {
		dst = make([]byte, Width*Height*4)
	}
	for i, p := range f.pix {
		c := off
		if p {
			c = on
		}
		o := i * 4
		dst[o+0], dst[o+1], dst[o+2], dst[o+3] = c.R, c.G, c.B, c.A
	}
	return dst[:Width*Height*4]
}

// String draws the grid with '#' for lit and '.' for unlit pixels, one line per row.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((Width + 1) * Height)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.pix[y*Width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

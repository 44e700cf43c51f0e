package cpu

// Built-in hexadecimal digit sprites, 4x5 pixels each, stored from address 0.
var digitSprites = [16][5]byte{
	{0xF0, 0x90, 0x90, 0x90, 0xF0}, // 0
	{0x20, 0x60, 0x20, 0x20, 0x70}, // 1
	{0xF0, 0x10, 0xF0, 0x80, 0xF0}, // 2
	{0xF0, 0x10, 0xF0, 0x10, 0xF0}, // 3
	{0x90, 0x90, 0xF0, 0x10, 0x10}, // 4
	{0xF0, 0x80, 0xF0, 0x10, 0xF0}, // 5
	{0xF0, 0x80, 0xF0, 0x90, 0xF0}, // 6
	{0xF0, 0x10, 0x20, 0x40, 0x40}, // 7
	{0xF0, 0x90, 0xF0, 0x90, 0xF0}, // 8
	{0xF0, 0x90, 0xF0, 0x10, 0xF0}, // 9
	{0xF0, 0x90, 0xF0, 0x90, 0x90}, // A
	{0xE0, 0x90, 0xE0, 0x90, 0xE0}, // B
	{0xF0, 0x80, 0x80, 0x80, 0xF0}, // C
	{0xE0, 0x90, 0x90, 0x90, 0xE0}, // D
	{0xF0, 0x80, 0xF0, 0x80, 0xF0}, // E
	{0xF0, 0x80, 0xF0, 0x80, 0x80}, // F
}

// loadDigits writes the digit sprites to the interpreter area and records where each starts.
func (c *CPU) loadDigits() {
	for d, glyph := range digitSprites {
		addr := uint16(d * len(glyph))
		copy(c.mem[addr:], glyph[:])
		c.digits[d] = addr
	}
}

// DigitAddr returns the address of the sprite for hex digit d (0..F).
func (c *CPU) DigitAddr(d byte) (uint16, bool) {
	if d > 0xF {
		return 0, false
	}
	return c.digits[d], true
}

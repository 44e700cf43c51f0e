package emu

import "unicode"

// KeyLayout lists the conventional host keys row by row, left to right:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
const KeyLayout = "1234qwerasdfzxcv"

// KeypadCodes holds the hex key for each position of KeyLayout.
var KeypadCodes = [16]byte{
	0x1, 0x2, 0x3, 0xC,
	0x4, 0x5, 0x6, 0xD,
	0x7, 0x8, 0x9, 0xE,
	0xA, 0x0, 0xB, 0xF,
}

// KeyForRune maps a host key character to its keypad code.
func KeyForRune(r rune) (byte, bool) {
	r = unicode.ToLower(r)
	for i, k := range KeyLayout {
		if k == r {
			return KeypadCodes[i], true
		}
	}
	return 0, false
}

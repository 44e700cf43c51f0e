package cpu

import "testing"

func TestDisassemble(t *testing.T) {
	tests := []struct {
		op   uint16
		want string
	}{
		{0x00E0, "CLS"},
		{0x00EE, "RET"},
		{0x1234, "JP 234"},
		{0x2ABC, "CALL ABC"},
		{0x3A12, "SE VA, 12"},
		{0x5120, "SE V1, V2"},
		{0x5121, "??? 5121"},
		{0x8AB4, "ADD VA, VB"},
		{0x8AB7, "SUBN VA, VB"},
		{0x8ABE, "SHL VA, VB"},
		{0x8AB9, "??? 8AB9"},
		{0xA2F0, "LD I, 2F0"},
		{0xB200, "JP V0, 200"},
		{0xC3FF, "RND V3, FF"},
		{0xD125, "DRW V1, V2, 5"},
		{0xE19E, "SKP V1"},
		{0xE1A1, "SKNP V1"},
		{0xF50A, "LD V5, K"},
		{0xF533, "LD B, V5"},
		{0xF565, "LD V5, [I]"},
		{0xF5FF, "??? F5FF"},
		{0x0123, "??? 0123"},
	}
	for _, tt := range tests {
		if got := Disassemble(tt.op); got != tt.want {
			t.Fatalf("Disassemble(%04X) got %q want %q", tt.op, got, tt.want)
		}
	}
}

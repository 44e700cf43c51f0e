package cpu

import "fmt"

// Disassemble returns the mnemonic for an instruction word, or "??? NNNN" when it
// does not decode.
func Disassemble(op uint16) string {
	in := decode(0, op)
	switch op >> 12 {
	case 0x0:
		switch op {
		case 0x00E0:
			return "CLS"
		case 0x00EE:
			return "RET"
		}
	case 0x1:
		return fmt.Sprintf("JP %03X", in.nnn)
	case 0x2:
		return fmt.Sprintf("CALL %03X", in.nnn)
	case 0x3:
		return fmt.Sprintf("SE V%X, %02X", in.x, in.kk)
	case 0x4:
		return fmt.Sprintf("SNE V%X, %02X", in.x, in.kk)
	case 0x5:
		if in.n == 0 {
			return fmt.Sprintf("SE V%X, V%X", in.x, in.y)
		}
	case 0x6:
		return fmt.Sprintf("LD V%X, %02X", in.x, in.kk)
	case 0x7:
		return fmt.Sprintf("ADD V%X, %02X", in.x, in.kk)
	case 0x8:
		if m, ok := aluMnemonics[in.n]; ok {
			return fmt.Sprintf("%s V%X, V%X", m, in.x, in.y)
		}
	case 0x9:
		if in.n == 0 {
			return fmt.Sprintf("SNE V%X, V%X", in.x, in.y)
		}
	case 0xA:
		return fmt.Sprintf("LD I, %03X", in.nnn)
	case 0xB:
		return fmt.Sprintf("JP V0, %03X", in.nnn)
	case 0xC:
		return fmt.Sprintf("RND V%X, %02X", in.x, in.kk)
	case 0xD:
		return fmt.Sprintf("DRW V%X, V%X, %X", in.x, in.y, in.n)
	case 0xE:
		switch in.kk {
		case 0x9E:
			return fmt.Sprintf("SKP V%X", in.x)
		case 0xA1:
			return fmt.Sprintf("SKNP V%X", in.x)
		}
	case 0xF:
		if f, ok := miscFormats[in.kk]; ok {
			return fmt.Sprintf(f, in.x)
		}
	}
	return fmt.Sprintf("??? %04X", op)
}

var aluMnemonics = map[byte]string{
	0x0: "LD", 0x1: "OR", 0x2: "AND", 0x3: "XOR", 0x4: "ADD",
	0x5: "SUB", 0x6: "SHR", 0x7: "SUBN", 0xE: "SHL",
}

var miscFormats = map[byte]string{
	0x07: "LD V%X, DT",
	0x0A: "LD V%X, K",
	0x15: "LD DT, V%X",
	0x18: "LD ST, V%X",
	0x1E: "ADD I, V%X",
	0x29: "LD F, V%X",
	0x33: "LD B, V%X",
	0x55: "LD [I], V%X",
	0x65: "LD V%X, [I]",
}

package cpu

import "fmt"

// LoadError reports a program that does not fit between ProgramStart and the end of memory.
type LoadError struct {
	Size int // program length in bytes
	Max  int // bytes available from ProgramStart
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("program is %d bytes, only %d fit at 0x%03X", e.Size, e.Max, ProgramStart)
}

// AddressError reports an instruction fetch or an I-relative data access outside memory.
// On a fetch fault nothing was decoded, so Opcode is the last instruction executed.
type AddressError struct {
	PC     uint16
	Opcode uint16
	Addr   int // first address that was out of range
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address 0x%04X out of range (PC=0x%03X opcode=0x%04X)", e.Addr, e.PC, e.Opcode)
}

// StackError reports a CALL with a full stack or a RET with an empty one.
type StackError struct {
	PC       uint16
	Opcode   uint16
	Overflow bool // false means underflow
}

func (e *StackError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("stack overflow: more than %d nested calls (PC=0x%03X opcode=0x%04X)", StackDepth, e.PC, e.Opcode)
	}
	return fmt.Sprintf("stack underflow: return with empty stack (PC=0x%03X opcode=0x%04X)", e.PC, e.Opcode)
}

// RangeError reports a digit sprite lookup for a register value above 0xF.
type RangeError struct {
	PC     uint16
	Opcode uint16
	Value  byte
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("no digit sprite for 0x%02X (PC=0x%03X opcode=0x%04X)", e.Value, e.PC, e.Opcode)
}

// UnknownOpcode is the diagnostic logged for an unmatched sub-opcode.
// It is never returned from Step; execution continues with the next instruction.
type UnknownOpcode struct {
	PC     uint16
	Opcode uint16
}

func (e *UnknownOpcode) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at PC=0x%03X", e.Opcode, e.PC)
}

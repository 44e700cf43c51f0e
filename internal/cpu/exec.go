package cpu

// instr is a decoded instruction word.
type instr struct {
	pc  uint16 // address the word was fetched from
	op  uint16
	x   byte   // bits 8-11
	y   byte   // bits 4-7
	n   byte   // bits 0-3
	kk  byte   // bits 0-7
	nnn uint16 // bits 0-11
}

func decode(pc, op uint16) instr {
	return instr{
		pc:  pc,
		op:  op,
		x:   byte(op>>8) & 0x0F,
		y:   byte(op>>4) & 0x0F,
		n:   byte(op) & 0x0F,
		kk:  byte(op),
		nnn: op & 0x0FFF,
	}
}

// Step fetches, decodes and executes one instruction, then ticks both timers.
// While waiting on Fx0A it does nothing. A returned error is fatal to the run;
// PC is left on the faulting instruction.
func (c *CPU) Step() error {
	if _, waiting := c.Awaiting(); waiting {
		return nil
	}

	pc := c.PC
	if int(pc)+1 >= MemorySize {
		addr := int(pc) + 1
		if int(pc) >= MemorySize {
			addr = int(pc)
		}
		return &AddressError{PC: pc, Opcode: c.Opcode, Addr: addr}
	}
	op := uint16(c.mem[pc])<<8 | uint16(c.mem[pc+1])
	c.Opcode = op
	c.PC += 2

	in := decode(pc, op)
	if err := c.execute(in); err != nil {
		c.PC = pc
		return err
	}

	// Fx0A suspends before the timers tick, even if a key already resolved it.
	if in.waitsForKey() {
		return nil
	}
	if c.DT > 0 {
		c.DT--
	}
	if c.ST > 0 {
		c.ST--
	}
	return nil
}

func (in instr) waitsForKey() bool { return in.op&0xF0FF == 0xF00A }

func (c *CPU) execute(in instr) error {
	switch in.op >> 12 {
	case 0x0:
		switch in.op {
		case 0x00E0: // CLS
			c.display.Clear()
		case 0x00EE: // RET
			if c.SP == 0 {
				return &StackError{PC: in.pc, Opcode: in.op}
			}
			c.SP--
			c.PC = c.stack[c.SP]
		default:
			c.unknown(in)
		}
	case 0x1: // JP addr
		c.PC = in.nnn
	case 0x2: // CALL addr
		if int(c.SP) >= StackDepth {
			return &StackError{PC: in.pc, Opcode: in.op, Overflow: true}
		}
		c.stack[c.SP] = c.PC
		c.SP++
		c.PC = in.nnn
	case 0x3: // SE Vx, byte
		c.skipIf(c.V[in.x] == in.kk)
	case 0x4: // SNE Vx, byte
		c.skipIf(c.V[in.x] != in.kk)
	case 0x5: // SE Vx, Vy
		if in.n != 0 {
			c.unknown(in)
			break
		}
		c.skipIf(c.V[in.x] == c.V[in.y])
	case 0x6: // LD Vx, byte
		c.V[in.x] = in.kk
	case 0x7: // ADD Vx, byte (no carry)
		c.V[in.x] += in.kk
	case 0x8:
		c.alu(in)
	case 0x9: // SNE Vx, Vy
		if in.n != 0 {
			c.unknown(in)
			break
		}
		c.skipIf(c.V[in.x] != c.V[in.y])
	case 0xA: // LD I, addr
		c.I = in.nnn
	case 0xB: // JP V0, addr
		c.PC = uint16(c.V[0]) + in.nnn
	case 0xC: // RND Vx, byte
		c.V[in.x] = byte(c.rng.Intn(256)) & in.kk
	case 0xD: // DRW Vx, Vy, nibble
		return c.draw(in)
	case 0xE:
		c.keyOp(in)
	case 0xF:
		return c.misc(in)
	}
	return nil
}

func (c *CPU) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

func (c *CPU) unknown(in instr) {
	c.log.Print(&UnknownOpcode{PC: in.pc, Opcode: in.op})
}

// alu executes the 8xy? group. The flag is written after the result so VF
// holds the flag even when x is F.
func (c *CPU) alu(in instr) {
	vx, vy := c.V[in.x], c.V[in.y]
	switch in.n {
	case 0x0: // LD Vx, Vy
		c.V[in.x] = vy
	case 0x1: // OR
		c.V[in.x] = vx | vy
	case 0x2: // AND
		c.V[in.x] = vx & vy
	case 0x3: // XOR
		c.V[in.x] = vx ^ vy
	case 0x4: // ADD, VF = carry
		sum := uint16(vx) + uint16(vy)
		c.V[in.x] = byte(sum)
		c.V[0xF] = flag(sum > 0xFF)
	case 0x5: // SUB, VF = not borrow
		c.V[in.x] = vx - vy
		c.V[0xF] = flag(vx >= vy)
	case 0x6: // SHR, VF = bit shifted out
		c.V[in.x] = vx >> 1
		c.V[0xF] = vx & 0x01
	case 0x7: // SUBN, VF = not borrow
		c.V[in.x] = vy - vx
		c.V[0xF] = flag(vy >= vx)
	case 0xE: // SHL, VF = bit shifted out
		c.V[in.x] = vx << 1
		c.V[0xF] = vx >> 7
	default:
		c.unknown(in)
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// span checks that n bytes starting at I lie inside memory.
func (c *CPU) span(in instr, n int) (int, error) {
	start := int(c.I)
	if n > 0 && start+n > MemorySize {
		first := start
		if first < MemorySize {
			first = MemorySize
		}
		return 0, &AddressError{PC: in.pc, Opcode: in.op, Addr: first}
	}
	return start, nil
}

func (c *CPU) draw(in instr) error {
	start, err := c.span(in, int(in.n))
	if err != nil {
		return err
	}
	sprite := c.mem[start : start+int(in.n)]
	c.V[0xF] = flag(c.display.BlitSprite(c.V[in.x], c.V[in.y], sprite))
	return nil
}

// keyOp executes SKP/SKNP. A key register above 0xF names no key and is a no-op.
func (c *CPU) keyOp(in instr) {
	if in.kk != 0x9E && in.kk != 0xA1 {
		c.unknown(in)
		return
	}
	key := c.V[in.x]
	if key >= NumKeys {
		return
	}
	c.mu.Lock()
	pressed := c.keys[key]
	c.mu.Unlock()
	if in.kk == 0x9E {
		c.skipIf(pressed)
	} else {
		c.skipIf(!pressed)
	}
}

func (c *CPU) misc(in instr) error {
	switch in.kk {
	case 0x07: // LD Vx, DT
		c.V[in.x] = c.DT
	case 0x0A: // LD Vx, K
		c.mu.Lock()
		c.state = awaitingKey{reg: in.x}
		c.mu.Unlock()
	case 0x15: // LD DT, Vx
		c.DT = c.V[in.x]
	case 0x18: // LD ST, Vx
		c.ST = c.V[in.x]
	case 0x1E: // ADD I, Vx
		c.I += uint16(c.V[in.x])
	case 0x29: // LD F, Vx
		addr, ok := c.DigitAddr(c.V[in.x])
		if !ok {
			return &RangeError{PC: in.pc, Opcode: in.op, Value: c.V[in.x]}
		}
		c.I = addr
	case 0x33: // LD B, Vx
		at, err := c.span(in, 3)
		if err != nil {
			return err
		}
		v := c.V[in.x]
		c.mem[at] = v / 100
		c.mem[at+1] = (v / 10) % 10
		c.mem[at+2] = v % 10
	case 0x55: // LD [I], Vx
		at, err := c.span(in, int(in.x)+1)
		if err != nil {
			return err
		}
		copy(c.mem[at:], c.V[:in.x+1])
	case 0x65: // LD Vx, [I]
		at, err := c.span(in, int(in.x)+1)
		if err != nil {
			return err
		}
		copy(c.V[:in.x+1], c.mem[at:at+int(in.x)+1])
	default:
		c.unknown(in)
	}
	return nil
}

package cpu

// primaryTable dispatches the 256 non-prefixed opcodes. Built once at
// package init; nil entries are the eleven opcodes the hardware never
// defines, and raise UnknownOpcode if ever fetched. The 0xCB slot is nil as
// well: executeOne routes that prefix to cbTable before looking here.
var primaryTable [256]func(*CPU) int

func setPrimary(op uint8, fn func(*CPU) int) {
	primaryTable[op] = fn
}

func init() {
	buildControlOpcodes()
	buildLoadOpcodes()
	buildALUOpcodes()
	buildJumpOpcodes()
	buildStackOpcodes()
	// Undefined primary opcodes: D3 DB DD E3 E4 EB EC ED F4 FC FD.
	// Left nil; executeOne raises UnknownOpcode for them.
}

func buildControlOpcodes() {
	setPrimary(0x00, func(c *CPU) int { return 1 }) // NOP

	setPrimary(0x10, func(c *CPU) int { // STOP
		c.fetch8() // STOP consumes a second byte
		c.stopped = true
		return 1
	})

	setPrimary(0x76, func(c *CPU) int { // HALT
		c.halted = true
		return 1
	})

	setPrimary(0xF3, func(c *CPU) int { c.ime = false; return 1 }) // DI
	setPrimary(0xFB, func(c *CPU) int { c.ime = true; return 1 })  // EI

	setPrimary(0x27, func(c *CPU) int { // DAA
		a := c.Regs.AF.GetHigh()
		result, z, h, cr := daa(a, c.Regs.Subtract(), c.Regs.HalfCarry(), c.Regs.Carry())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetZero(z)
		c.Regs.SetHalfCarry(h)
		c.Regs.SetCarry(cr)
		return 1
	})

	setPrimary(0x2F, func(c *CPU) int { // CPL
		c.Regs.AF.SetHigh(^c.Regs.AF.GetHigh())
		c.Regs.SetSubtract(true)
		c.Regs.SetHalfCarry(true)
		return 1
	})

	setPrimary(0x37, func(c *CPU) int { // SCF
		c.Regs.SetSubtract(false)
		c.Regs.SetHalfCarry(false)
		c.Regs.SetCarry(true)
		return 1
	})

	setPrimary(0x3F, func(c *CPU) int { // CCF
		c.Regs.SetSubtract(false)
		c.Regs.SetHalfCarry(false)
		c.Regs.SetCarry(!c.Regs.Carry())
		return 1
	})

	setPrimary(0x07, func(c *CPU) int { // RLCA
		result, cr := rlc(c.Regs.AF.GetHigh())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(false, false, false, cr)
		return 1
	})
	setPrimary(0x0F, func(c *CPU) int { // RRCA
		result, cr := rrc(c.Regs.AF.GetHigh())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(false, false, false, cr)
		return 1
	})
	setPrimary(0x17, func(c *CPU) int { // RLA
		result, cr := rl(c.Regs.AF.GetHigh(), c.Regs.Carry())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(false, false, false, cr)
		return 1
	})
	setPrimary(0x1F, func(c *CPU) int { // RRA
		result, cr := rr(c.Regs.AF.GetHigh(), c.Regs.Carry())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(false, false, false, cr)
		return 1
	})
}

func buildLoadOpcodes() {
	// 16-bit immediate loads: LD rr,nn.
	for i := uint8(0); i < 4; i++ {
		i := i
		setPrimary(0x01+i*0x10, func(c *CPU) int {
			c.setRR16(i, c.fetch16())
			return 3
		})
	}

	// LD (BC),A / LD (DE),A / LD (HL+),A / LD (HL-),A.
	setPrimary(0x02, func(c *CPU) int { c.bus.Write8(c.Regs.BC.Get(), c.Regs.AF.GetHigh()); return 2 })
	setPrimary(0x12, func(c *CPU) int { c.bus.Write8(c.Regs.DE.Get(), c.Regs.AF.GetHigh()); return 2 })
	setPrimary(0x22, func(c *CPU) int {
		hl := c.Regs.HL.Get()
		c.bus.Write8(hl, c.Regs.AF.GetHigh())
		c.Regs.HL.Set(hl + 1)
		return 2
	})
	setPrimary(0x32, func(c *CPU) int {
		hl := c.Regs.HL.Get()
		c.bus.Write8(hl, c.Regs.AF.GetHigh())
		c.Regs.HL.Set(hl - 1)
		return 2
	})

	// LD A,(BC) / LD A,(DE) / LD A,(HL+) / LD A,(HL-).
	setPrimary(0x0A, func(c *CPU) int { c.Regs.AF.SetHigh(c.bus.Read8(c.Regs.BC.Get())); return 2 })
	setPrimary(0x1A, func(c *CPU) int { c.Regs.AF.SetHigh(c.bus.Read8(c.Regs.DE.Get())); return 2 })
	setPrimary(0x2A, func(c *CPU) int {
		hl := c.Regs.HL.Get()
		c.Regs.AF.SetHigh(c.bus.Read8(hl))
		c.Regs.HL.Set(hl + 1)
		return 2
	})
	setPrimary(0x3A, func(c *CPU) int {
		hl := c.Regs.HL.Get()
		c.Regs.AF.SetHigh(c.bus.Read8(hl))
		c.Regs.HL.Set(hl - 1)
		return 2
	})

	// 8-bit immediate loads: LD r,n8 (and LD (HL),n8).
	for i := uint8(0); i < 8; i++ {
		i := i
		op := 0x06 + i*8
		cycles := 2
		if i == 6 {
			cycles = 3
		}
		setPrimary(op, func(c *CPU) int {
			c.setReg8(i, c.fetch8())
			return cycles
		})
	}

	// LD (nn),SP.
	setPrimary(0x08, func(c *CPU) int {
		c.bus.Write16(c.fetch16(), c.SP)
		return 5
	})

	// High-memory accesses.
	setPrimary(0xE0, func(c *CPU) int { // LDH (n),A
		c.bus.Write8(0xFF00+uint16(c.fetch8()), c.Regs.AF.GetHigh())
		return 3
	})
	setPrimary(0xF0, func(c *CPU) int { // LDH A,(n)
		c.Regs.AF.SetHigh(c.bus.Read8(0xFF00 + uint16(c.fetch8())))
		return 3
	})
	setPrimary(0xE2, func(c *CPU) int { // LD (C),A
		c.bus.Write8(0xFF00+uint16(c.Regs.BC.GetLow()), c.Regs.AF.GetHigh())
		return 2
	})
	setPrimary(0xF2, func(c *CPU) int { // LD A,(C)
		c.Regs.AF.SetHigh(c.bus.Read8(0xFF00 + uint16(c.Regs.BC.GetLow())))
		return 2
	})
	setPrimary(0xEA, func(c *CPU) int { // LD (nn),A
		c.bus.Write8(c.fetch16(), c.Regs.AF.GetHigh())
		return 4
	})
	setPrimary(0xFA, func(c *CPU) int { // LD A,(nn)
		c.Regs.AF.SetHigh(c.bus.Read8(c.fetch16()))
		return 4
	})

	// LD SP,HL.
	setPrimary(0xF9, func(c *CPU) int { c.SP = c.Regs.HL.Get(); return 2 })

	// LD HL,SP+d8.
	setPrimary(0xF8, func(c *CPU) int {
		offset := int8(c.fetch8())
		result, h, cr := addSP(c.SP, offset)
		c.Regs.HL.Set(result)
		c.Regs.SetFlags(false, false, h, cr)
		return 3
	})

	// 8-bit register-to-register loads, 0x40-0x7F, minus 0x76 (HALT).
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			op := 0x40 + dst*8 + src
			if op == 0x76 {
				continue
			}
			dst, src := dst, src
			cycles := 1
			if dst == 6 || src == 6 {
				cycles = 2
			}
			setPrimary(op, func(c *CPU) int {
				c.setReg8(dst, c.reg8(src))
				return cycles
			})
		}
	}
}

func buildALUOpcodes() {
	// 16-bit INC/DEC rr.
	for i := uint8(0); i < 4; i++ {
		i := i
		setPrimary(0x03+i*0x10, func(c *CPU) int { c.setRR16(i, c.rr16(i)+1); return 2 })
		setPrimary(0x0B+i*0x10, func(c *CPU) int { c.setRR16(i, c.rr16(i)-1); return 2 })
	}

	// ADD HL,rr.
	for i := uint8(0); i < 4; i++ {
		i := i
		setPrimary(0x09+i*0x10, func(c *CPU) int {
			result, h, cr := add16(c.Regs.HL.Get(), c.rr16(i))
			c.Regs.HL.Set(result)
			c.Regs.SetSubtract(false)
			c.Regs.SetHalfCarry(h)
			c.Regs.SetCarry(cr)
			return 2
		})
	}

	// ADD SP,d8.
	setPrimary(0xE8, func(c *CPU) int {
		offset := int8(c.fetch8())
		result, h, cr := addSP(c.SP, offset)
		c.SP = result
		c.Regs.SetFlags(false, false, h, cr)
		return 4
	})

	// 8-bit INC/DEC r, including (HL).
	for i := uint8(0); i < 8; i++ {
		i := i
		cycles := 1
		if i == 6 {
			cycles = 3
		}
		setPrimary(0x04+i*8, func(c *CPU) int {
			result, z, n, h := inc8(c.reg8(i))
			c.setReg8(i, result)
			c.Regs.SetZero(z)
			c.Regs.SetSubtract(n)
			c.Regs.SetHalfCarry(h)
			return cycles
		})
		setPrimary(0x05+i*8, func(c *CPU) int {
			result, z, n, h := dec8(c.reg8(i))
			c.setReg8(i, result)
			c.Regs.SetZero(z)
			c.Regs.SetSubtract(n)
			c.Regs.SetHalfCarry(h)
			return cycles
		})
	}

	// 8-bit ALU register operand block, 0x80-0xBF: ADD ADC SUB SBC AND XOR OR CP.
	for op := uint8(0); op < 8; op++ {
		for reg := uint8(0); reg < 8; reg++ {
			op, reg := op, reg
			opcode := 0x80 + op*8 + reg
			cycles := 1
			if reg == 6 {
				cycles = 2
			}
			setPrimary(opcode, func(c *CPU) int {
				applyALU(c, op, c.reg8(reg))
				return cycles
			})
		}
	}

	// 8-bit ALU immediate operand: C6 CE D6 DE E6 EE F6 FE.
	immOps := [8]uint8{0, 1, 2, 3, 4, 5, 6, 7}
	for i, op := range immOps {
		op := op
		opcode := uint8(0xC6 + i*8)
		setPrimary(opcode, func(c *CPU) int {
			applyALU(c, op, c.fetch8())
			return 2
		})
	}
}

// applyALU performs ALU operation op (0=ADD 1=ADC 2=SUB 3=SBC 4=AND 5=XOR
// 6=OR 7=CP) against A and operand, updating flags and A (except CP, which
// only sets flags).
func applyALU(c *CPU, op uint8, operand uint8) {
	a := c.Regs.AF.GetHigh()
	switch op {
	case 0: // ADD
		result, z, n, h, cr := add8(a, operand, false)
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, n, h, cr)
	case 1: // ADC
		result, z, n, h, cr := add8(a, operand, c.Regs.Carry())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, n, h, cr)
	case 2: // SUB
		result, z, n, h, cr := sub8(a, operand, false)
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, n, h, cr)
	case 3: // SBC
		result, z, n, h, cr := sub8(a, operand, c.Regs.Carry())
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, n, h, cr)
	case 4: // AND
		result, z := and8(a, operand)
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, false, true, false)
	case 5: // XOR
		result, z := xor8(a, operand)
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, false, false, false)
	case 6: // OR
		result, z := or8(a, operand)
		c.Regs.AF.SetHigh(result)
		c.Regs.SetFlags(z, false, false, false)
	case 7: // CP
		_, z, n, h, cr := sub8(a, operand, false)
		c.Regs.SetFlags(z, n, h, cr)
	}
}

func buildJumpOpcodes() {
	setPrimary(0xC3, func(c *CPU) int { c.PC = c.fetch16(); return 4 }) // JP nn
	setPrimary(0xE9, func(c *CPU) int { c.PC = c.Regs.HL.Get(); return 1 }) // JP (HL)

	condOpcodesJP := [4]uint8{0xC2, 0xCA, 0xD2, 0xDA}
	for i, op := range condOpcodesJP {
		i, op := uint8(i), op
		setPrimary(op, func(c *CPU) int {
			target := c.fetch16()
			if c.condition(i) {
				c.PC = target
				return 4
			}
			return 3
		})
	}

	setPrimary(0x18, func(c *CPU) int { // JR d8
		offset := int8(c.fetch8())
		c.PC = uint16(int32(c.PC) + int32(offset))
		return 3
	})

	condOpcodesJR := [4]uint8{0x20, 0x28, 0x30, 0x38}
	for i, op := range condOpcodesJR {
		i, op := uint8(i), op
		setPrimary(op, func(c *CPU) int {
			offset := int8(c.fetch8())
			if c.condition(i) {
				c.PC = uint16(int32(c.PC) + int32(offset))
				return 3
			}
			return 2
		})
	}

	setPrimary(0xCD, func(c *CPU) int { // CALL nn
		target := c.fetch16()
		c.pushWord(c.PC)
		c.PC = target
		return 6
	})

	condOpcodesCall := [4]uint8{0xC4, 0xCC, 0xD4, 0xDC}
	for i, op := range condOpcodesCall {
		i, op := uint8(i), op
		setPrimary(op, func(c *CPU) int {
			target := c.fetch16()
			if c.condition(i) {
				c.pushWord(c.PC)
				c.PC = target
				return 6
			}
			return 3
		})
	}

	setPrimary(0xC9, func(c *CPU) int { c.PC = c.popWord(); return 4 })    // RET
	setPrimary(0xD9, func(c *CPU) int { c.PC = c.popWord(); c.ime = true; return 4 }) // RETI

	condOpcodesRet := [4]uint8{0xC0, 0xC8, 0xD0, 0xD8}
	for i, op := range condOpcodesRet {
		i, op := uint8(i), op
		setPrimary(op, func(c *CPU) int {
			if c.condition(i) {
				c.PC = c.popWord()
				return 5
			}
			return 2
		})
	}

	for i := uint8(0); i < 8; i++ {
		i := i
		op := 0xC7 + i*8
		setPrimary(op, func(c *CPU) int {
			c.pushWord(c.PC)
			c.PC = uint16(i) * 8
			return 4
		})
	}
}

// condition evaluates one of the four branch conditions {NZ,Z,NC,C}.
func (c *CPU) condition(i uint8) bool {
	switch i {
	case 0:
		return !c.Regs.Zero()
	case 1:
		return c.Regs.Zero()
	case 2:
		return !c.Regs.Carry()
	default:
		return c.Regs.Carry()
	}
}

func buildStackOpcodes() {
	pushOps := [4]uint8{0xC5, 0xD5, 0xE5, 0xF5}
	for i, op := range pushOps {
		i, op := uint8(i), op
		setPrimary(op, func(c *CPU) int {
			c.pushWord(c.rr16Stack(i))
			return 4
		})
	}

	popOps := [4]uint8{0xC1, 0xD1, 0xE1, 0xF1}
	for i, op := range popOps {
		i, op := uint8(i), op
		setPrimary(op, func(c *CPU) int {
			c.setRR16Stack(i, c.popWord())
			return 3
		})
	}
}

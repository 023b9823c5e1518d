package cpu

// cbTable dispatches the 256 CB-prefixed opcodes. Every slot is defined: the
// encoding is fully regular (bits 7-6 select family, bits 5-3 select bit
// index or sub-op, bits 2-0 select the operand register), so the table is
// generated rather than hand-written.
var cbTable [256]func(*CPU) int

func init() {
	for opcode := 0; opcode < 256; opcode++ {
		opcode := uint8(opcode)
		family := opcode >> 6
		mid := (opcode >> 3) & 7
		reg := opcode & 7

		switch family {
		case 0:
			cbTable[opcode] = shiftRotateHandler(mid, reg)
		case 1:
			cbTable[opcode] = bitHandler(mid, reg)
		case 2:
			cbTable[opcode] = resHandler(mid, reg)
		default:
			cbTable[opcode] = setHandler(mid, reg)
		}
	}
}

// shiftRotateHandler covers rows 0-7: RLC RRC RL RR SLA SRA SWAP SRL.
func shiftRotateHandler(subop, reg uint8) func(*CPU) int {
	cycles := cbCycles(reg, 4)
	return func(c *CPU) int {
		v := c.reg8(reg)
		var result uint8
		var carry bool
		switch subop {
		case 0:
			result, carry = rlc(v)
		case 1:
			result, carry = rrc(v)
		case 2:
			result, carry = rl(v, c.Regs.Carry())
		case 3:
			result, carry = rr(v, c.Regs.Carry())
		case 4:
			result, carry = sla(v)
		case 5:
			result, carry = sra(v)
		case 6:
			result = swap(v)
			carry = false
		default:
			result, carry = srl(v)
		}
		c.setReg8(reg, result)
		c.Regs.SetFlags(result == 0, false, false, carry)
		return cycles
	}
}

// bitHandler covers BIT n,r: Z = complement of bit n, N=0, H=1, C preserved.
func bitHandler(bitIndex, reg uint8) func(*CPU) int {
	cycles := cbCycles(reg, 3)
	return func(c *CPU) int {
		v := c.reg8(reg)
		set := v&(1<<bitIndex) != 0
		c.Regs.SetZero(!set)
		c.Regs.SetSubtract(false)
		c.Regs.SetHalfCarry(true)
		return cycles
	}
}

// resHandler covers RES n,r: clear bit n.
func resHandler(bitIndex, reg uint8) func(*CPU) int {
	cycles := cbCycles(reg, 4)
	return func(c *CPU) int {
		c.setReg8(reg, c.reg8(reg)&^(1<<bitIndex))
		return cycles
	}
}

// setHandler covers SET n,r: set bit n.
func setHandler(bitIndex, reg uint8) func(*CPU) int {
	cycles := cbCycles(reg, 4)
	return func(c *CPU) int {
		c.setReg8(reg, c.reg8(reg)|(1<<bitIndex))
		return cycles
	}
}

// cbCycles returns the register-operand cost (2) or the (HL)-operand cost
// (hlCost), matching the extra memory read/write the (HL) slot incurs.
func cbCycles(reg uint8, hlCost int) int {
	if reg == 6 {
		return hlCost
	}
	return 2
}

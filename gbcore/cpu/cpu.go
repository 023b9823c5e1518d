// Package cpu implements the Sharp LR35902 instruction interpreter: register
// file, dispatch over the 256 primary and 256 CB-prefixed opcodes, the
// arithmetic-logic primitives, and interrupt dispatch.
package cpu

import "github.com/arlohale/gbcore/gbcore/memory"

// interruptVectors are the fixed jump targets, indexed by IF/IE bit.
var interruptVectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

// interruptDispatchCycles is the fixed machine-cycle cost of vectoring to an
// interrupt handler.
const interruptDispatchCycles = 5

// CPU holds the register file, stack pointer, program counter, interrupt
// master enable, and the halt/stop latches. It steps against a bus reference
// passed in at construction rather than the bus holding a back-reference to
// it.
type CPU struct {
	Regs RegisterFile
	SP   uint16
	PC   uint16

	ime     bool
	halted  bool
	stopped bool

	bus     *memory.Bus
	onFatal func(MachineError)
}

// New constructs a CPU at the post-reset boot-ROM entry point (PC=0).
func New(bus *memory.Bus, onFatal func(MachineError)) *CPU {
	return &CPU{bus: bus, onFatal: onFatal}
}

// IME reports the interrupt master enable latch.
func (c *CPU) IME() bool { return c.ime }

// Halted reports whether the CPU is in the halted state.
func (c *CPU) Halted() bool { return c.halted }

// Stopped reports whether the CPU has executed STOP.
func (c *CPU) Stopped() bool { return c.stopped }

// Step advances the CPU by exactly one "slot": an interrupt dispatch, one
// cycle of halted idling, or one fetched-decoded-executed instruction.
// Returns the machine-cycle cost of whatever it did.
func (c *CPU) Step() int {
	if c.stopped {
		c.onFatal(stoppedError())
		return 0
	}

	pending := c.bus.IE() & c.bus.IF() & 0x1F
	if c.halted && pending != 0 {
		c.halted = false
	}

	if c.ime && pending != 0 {
		return c.dispatchInterrupt(pending)
	}

	if c.halted {
		return 1
	}

	return c.executeOne()
}

// dispatchInterrupt selects the lowest-numbered armed bit, clears it in IF,
// clears IME, pushes PC, and jumps to the fixed vector.
func (c *CPU) dispatchInterrupt(pending uint8) int {
	for bit := uint8(0); bit < 5; bit++ {
		if pending&(1<<bit) == 0 {
			continue
		}
		c.bus.ClearInterrupt(bit)
		c.ime = false
		c.pushWord(c.PC)
		c.PC = interruptVectors[bit]
		return interruptDispatchCycles
	}
	return 0
}

// executeOne fetches the opcode at PC, decodes it (through the CB table if
// prefixed), executes it, and returns its machine-cycle cost. executeOne
// advances PC past the opcode byte(s); each handler advances it past its
// own operands.
func (c *CPU) executeOne() int {
	opcode := c.fetch8()
	if opcode == 0xCB {
		cbOpcode := c.fetch8()
		return cbTable[cbOpcode](c)
	}
	handler := primaryTable[opcode]
	if handler == nil {
		c.onFatal(unknownOpcodeError(opcode))
		return 0
	}
	return handler(c)
}

// fetch8 reads the byte at PC and advances PC by one.
func (c *CPU) fetch8() uint8 {
	v := c.bus.Read8(c.PC)
	c.PC++
	return v
}

// fetch16 reads the little-endian word at PC and advances PC by two.
func (c *CPU) fetch16() uint16 {
	v := c.bus.Read16(c.PC)
	c.PC += 2
	return v
}

func (c *CPU) pushWord(v uint16) {
	c.SP -= 2
	c.bus.Write16(c.SP, v)
}

func (c *CPU) popWord() uint16 {
	v := c.bus.Read16(c.SP)
	c.SP += 2
	return v
}

// reg8 reads one of the eight r8 operand slots in standard GB opcode
// encoding order: B,C,D,E,H,L,(HL),A.
func (c *CPU) reg8(i uint8) uint8 {
	switch i {
	case 0:
		return c.Regs.BC.GetHigh()
	case 1:
		return c.Regs.BC.GetLow()
	case 2:
		return c.Regs.DE.GetHigh()
	case 3:
		return c.Regs.DE.GetLow()
	case 4:
		return c.Regs.HL.GetHigh()
	case 5:
		return c.Regs.HL.GetLow()
	case 6:
		return c.bus.Read8(c.Regs.HL.Get())
	default:
		return c.Regs.AF.GetHigh()
	}
}

func (c *CPU) setReg8(i uint8, v uint8) {
	switch i {
	case 0:
		c.Regs.BC.SetHigh(v)
	case 1:
		c.Regs.BC.SetLow(v)
	case 2:
		c.Regs.DE.SetHigh(v)
	case 3:
		c.Regs.DE.SetLow(v)
	case 4:
		c.Regs.HL.SetHigh(v)
	case 5:
		c.Regs.HL.SetLow(v)
	case 6:
		c.bus.Write8(c.Regs.HL.Get(), v)
	default:
		c.Regs.AF.SetHigh(v)
	}
}

// rr16 reads one of the four rr operand slots {BC,DE,HL,SP}, used by 16-bit
// immediate loads, INC/DEC rr, and ADD HL,rr.
func (c *CPU) rr16(i uint8) uint16 {
	switch i {
	case 0:
		return c.Regs.BC.Get()
	case 1:
		return c.Regs.DE.Get()
	case 2:
		return c.Regs.HL.Get()
	default:
		return c.SP
	}
}

func (c *CPU) setRR16(i uint8, v uint16) {
	switch i {
	case 0:
		c.Regs.BC.Set(v)
	case 1:
		c.Regs.DE.Set(v)
	case 2:
		c.Regs.HL.Set(v)
	default:
		c.SP = v
	}
}

// rr16Stack reads one of the four rr operand slots {BC,DE,HL,AF}, used by
// PUSH/POP.
func (c *CPU) rr16Stack(i uint8) uint16 {
	switch i {
	case 0:
		return c.Regs.BC.Get()
	case 1:
		return c.Regs.DE.Get()
	case 2:
		return c.Regs.HL.Get()
	default:
		return c.Regs.AF.Get()
	}
}

func (c *CPU) setRR16Stack(i uint8, v uint16) {
	switch i {
	case 0:
		c.Regs.BC.Set(v)
	case 1:
		c.Regs.DE.Set(v)
	case 2:
		c.Regs.HL.Set(v)
	default:
		c.Regs.AF.Set(v & 0xFFF0) // POP AF masks the written F to its four defined bits
	}
}

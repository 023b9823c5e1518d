package memory

import "github.com/arlohale/gbcore/gbcore/addr"

// readMMIO dispatches a read within 0xFF00-0xFF7F. Registers with no special
// behavior fall through to the plain backing array (sound, serial, WX/WY):
// their features are out of scope, but the bus must
// still answer reads and accept writes like ordinary memory.
func (b *Bus) readMMIO(a uint16) byte {
	switch a {
	case addr.P1:
		return b.readJoypad()
	case addr.DIV:
		return b.timer.DIV()
	case addr.TIMA:
		return b.timer.TIMA()
	case addr.TMA:
		return b.timer.TMA()
	case addr.TAC:
		return b.timer.TAC()
	case addr.IF:
		return b.IF() | 0xE0
	case addr.LCDC:
		return b.ppu.LCDC()
	case addr.STAT:
		return b.ppu.STAT() | 0x80
	case addr.SCY:
		return b.ppu.SCY()
	case addr.SCX:
		return b.ppu.SCX()
	case addr.LY:
		return b.ppu.LY()
	case addr.LYC:
		return b.ppu.LYC()
	case addr.BGP:
		return b.ppu.BGP()
	case addr.OBP0:
		return b.ppu.OBP0()
	case addr.OBP1:
		return b.ppu.OBP1()
	default:
		return b.mmio[a-addr.MMIOStart]
	}
}

// writeMMIO dispatches a write within 0xFF00-0xFF7F.
func (b *Bus) writeMMIO(a uint16, v byte) {
	switch a {
	case addr.P1:
		b.mmio[a-addr.MMIOStart] = v & 0x30
	case addr.DIV:
		b.timer.ResetDIV()
	case addr.TIMA:
		b.timer.SetTIMA(v)
	case addr.TMA:
		b.timer.SetTMA(v)
	case addr.TAC:
		b.timer.SetTAC(v)
	case addr.IF:
		b.mmio[a-addr.MMIOStart] = v & 0x1F
	case addr.LCDC:
		b.ppu.SetLCDC(v)
	case addr.STAT:
		// Not required in core: writes ignored.
	case addr.SCY:
		b.ppu.SetSCY(v)
	case addr.SCX:
		b.ppu.SetSCX(v)
	case addr.LY:
		// Read-only.
	case addr.LYC:
		b.ppu.SetLYC(v)
	case addr.DMA:
		b.performDMA(v)
	case addr.BGP:
		b.ppu.SetBGP(v)
	case addr.OBP0:
		b.ppu.SetOBP0(v)
	case addr.OBP1:
		b.ppu.SetOBP1(v)
	default:
		b.mmio[a-addr.MMIOStart] = v
	}
}

// readJoypad answers the joypad register with all buttons reported idle
// (not pressed): the four low bits always read high, since no real input
// source is wired into the core.
func (b *Bus) readJoypad() byte {
	selection := b.mmio[addr.P1-addr.MMIOStart] & 0x30
	return 0xC0 | selection | 0x0F
}

// performDMA copies 160 bytes from (value<<8) into OAM and re-decodes every
// sprite entry. Treated as instantaneous from the CPU's perspective.
func (b *Bus) performDMA(value byte) {
	src := uint16(value) << 8
	for i := 0; i < 0xA0; i++ {
		b.oam[i] = b.Read8(src + uint16(i))
	}
	b.ppu.HandleOAMDMA(b.oam[:])
}

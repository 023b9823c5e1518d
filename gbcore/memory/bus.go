// Package memory implements the 16-bit address bus: a region-demultiplexed
// read/write surface with side effects on VRAM, OAM, and the MMIO register
// page, plus the boot ROM overlay and the timer.
package memory

import (
	"github.com/arlohale/gbcore/gbcore/addr"
	"github.com/arlohale/gbcore/gbcore/video"
)

// region tags the eight address ranges the bus dispatches over.
type region uint8

const (
	regionUnmapped region = iota
	regionROM
	regionVRAM
	regionExternalRAM
	regionWorkRAM
	regionEcho
	regionOAM
	regionMMIO
	regionHighRAM
)

// regionMap is a 256-entry table indexed by the high byte of an address,
// built once at package init so dispatch is O(1). Two pages are split and
// need one per-access comparison: 0xFE (OAM, then unmapped from 0xFEA0) and
// 0xFF (MMIO, then high RAM from 0xFF80).
var regionMap [256]region

func init() {
	for hi := 0; hi <= 0xFF; hi++ {
		a := uint16(hi) << 8
		regionMap[hi] = regionFor(a)
	}
}

func regionFor(a uint16) region {
	switch {
	case a <= addr.ROMSwitchableEnd:
		return regionROM
	case a <= addr.VRAMEnd:
		return regionVRAM
	case a <= addr.ExternalRAMEnd:
		return regionExternalRAM
	case a <= addr.WorkRAMEnd:
		return regionWorkRAM
	case a <= addr.EchoRAMEnd:
		return regionEcho
	case a <= addr.OAMEnd:
		return regionOAM
	case a < addr.MMIOStart:
		return regionUnmapped // 0xFEA0-0xFEFF, unmapped per hardware
	case a <= addr.MMIOEnd:
		return regionMMIO
	default:
		return regionHighRAM
	}
}

// Bus owns every byte array in the memory map, the boot ROM overlay latch,
// the timer, and a reference to the PPU it forwards VRAM/OAM/MMIO side
// effects to.
type Bus struct {
	rom  [0x8000]byte
	vram [0x2000]byte
	eram [0x2000]byte
	wram [0x2000]byte
	oam  [0xA0]byte
	mmio [0x80]byte
	hram [0x80]byte // 0xFF80-0xFFFE; IE lives at hram[0x7F] (0xFFFF)

	bootActive bool

	ppu   *video.PPU
	timer *Timer
}

// New constructs a Bus with the boot overlay active and a fresh PPU/Timer.
func New() *Bus {
	b := &Bus{bootActive: true}
	b.ppu = video.NewPPU(b.vram[:], b.RequestInterrupt)
	b.timer = NewTimer(b.RequestInterrupt)
	for i := range b.rom {
		b.rom[i] = 0xFF
	}
	return b
}

// PPU returns the bus-owned PPU, for the driver to step and read frames from.
func (b *Bus) PPU() *video.PPU { return b.ppu }

// Timer returns the bus-owned Timer, for the driver to step.
func (b *Bus) Timer() *Timer { return b.timer }

// LoadROM copies cart into the ROM region starting at 0x0000, up to 0x8000
// bytes. Cartridge ingestion beyond handing over bytes is a host concern.
func (b *Bus) LoadROM(cart []byte) {
	copy(b.rom[:], cart)
}

// Read8 reads a single byte, honoring the boot overlay and MMIO dispatch.
func (b *Bus) Read8(a uint16) byte {
	switch regionMap[a>>8] {
	case regionROM:
		if b.bootActive && a < addr.BootROMUnmapAddress {
			return bootROM[a]
		}
		if b.bootActive && a == addr.BootROMUnmapAddress {
			b.bootActive = false
		}
		return b.rom[a]
	case regionVRAM:
		return b.vram[a-addr.VRAMStart]
	case regionExternalRAM:
		return b.eram[a-addr.ExternalRAMStart]
	case regionWorkRAM:
		return b.wram[a-addr.WorkRAMStart]
	case regionEcho:
		return b.wram[a-addr.EchoRAMStart]
	case regionOAM:
		if a > addr.OAMEnd {
			return 0xFF // 0xFEA0-0xFEFF, unmapped
		}
		return b.oam[a-addr.OAMStart]
	case regionMMIO:
		if a >= addr.HighRAMStart {
			return b.hram[a-addr.HighRAMStart]
		}
		return b.readMMIO(a)
	case regionHighRAM:
		return b.hram[a-addr.HighRAMStart]
	default:
		return 0xFF
	}
}

// Write8 writes a single byte, honoring the boot overlay (ROM writes
// discarded), VRAM/OAM cache side effects, and MMIO dispatch.
func (b *Bus) Write8(a uint16, v byte) {
	switch regionMap[a>>8] {
	case regionROM:
		// Writes to ROM are discarded; no banking in scope.
	case regionVRAM:
		rel := a - addr.VRAMStart
		b.vram[rel] = v
		b.ppu.HandleVRAMWrite(rel)
	case regionExternalRAM:
		b.eram[a-addr.ExternalRAMStart] = v
	case regionWorkRAM:
		b.wram[a-addr.WorkRAMStart] = v
	case regionEcho:
		b.wram[a-addr.EchoRAMStart] = v
	case regionOAM:
		if a > addr.OAMEnd {
			return // 0xFEA0-0xFEFF, unmapped: discarded
		}
		rel := a - addr.OAMStart
		b.oam[rel] = v
		b.ppu.HandleOAMWrite(rel, v)
	case regionMMIO:
		if a >= addr.HighRAMStart {
			b.hram[a-addr.HighRAMStart] = v
			return
		}
		b.writeMMIO(a, v)
	case regionHighRAM:
		b.hram[a-addr.HighRAMStart] = v
	default:
		// Unmapped access: silently discarded.
	}
}

// Read16 reads a little-endian word: low byte at a, high byte at a+1.
func (b *Bus) Read16(a uint16) uint16 {
	low := b.Read8(a)
	high := b.Read8(a + 1)
	return uint16(high)<<8 | uint16(low)
}

// Write16 writes a little-endian word: low byte at a, high byte at a+1.
func (b *Bus) Write16(a uint16, v uint16) {
	b.Write8(a, byte(v))
	b.Write8(a+1, byte(v>>8))
}

// InBootOverlay reports whether the boot ROM is still shadowing 0x0000-0x00FF.
func (b *Bus) InBootOverlay() bool { return b.bootActive }

// hramIE is the offset of the interrupt-enable register within hram.
const hramIE = addr.HighRAMEnd - addr.HighRAMStart

// IE returns the interrupt-enable register (0xFFFF).
func (b *Bus) IE() byte { return b.hram[hramIE] }

// IF returns the interrupt-flag register (0xFF0F), low five bits only.
func (b *Bus) IF() byte { return b.mmio[addr.IF-addr.MMIOStart] & 0x1F }

// RequestInterrupt sets the given bit in IF.
func (b *Bus) RequestInterrupt(bit uint8) {
	off := addr.IF - addr.MMIOStart
	b.mmio[off] |= 1 << bit
}

// ClearInterrupt clears the given bit in IF, used by the CPU once it
// dispatches that interrupt.
func (b *Bus) ClearInterrupt(bit uint8) {
	off := addr.IF - addr.MMIOStart
	b.mmio[off] &^= 1 << bit
}

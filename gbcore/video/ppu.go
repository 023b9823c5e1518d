// Package video implements the pixel processing unit: a tileset cache decoded
// from VRAM writes, a sprite attribute cache decoded from OAM writes, a mode
// state machine driven by machine cycles, and a scanline compositor that
// writes RGBA bytes into the host raster buffer.
package video

// Mode is one of the four PPU states.
type Mode uint8

const (
	ModeHBlank  Mode = 0
	ModeVBlank  Mode = 1
	ModeOAMScan Mode = 2
	ModeDrawing Mode = 3
)

// Mode durations in machine cycles (one machine cycle = four CPU clocks).
const (
	oamScanCycles  = 20
	drawingCycles  = 43
	hblankCycles   = 51
	vblankLineCycles = 114
)

const (
	lastVisibleLine = 143
	lastLine        = 153
)

// vblankBit is the IF bit position raised on entry to V-blank. STAT
// interrupts are explicitly not required in this core (see the MMIO table),
// so no other interrupt bit is requested from here.
const vblankBit = 0

// PPU owns the decoded tileset/sprite caches, the mode state machine, the
// LCD control registers, and the raster buffer.
type PPU struct {
	vram []byte // reference into the bus's VRAM array; read-only here

	tileset [tileCount]Tile
	sprites [spriteCount]Sprite

	frame *FrameBuffer

	// LCDC fields, unpacked.
	lcdEnabled       bool
	windowMapSelect  uint8
	windowEnabled    bool
	bgTileDataSelect bool // true: 0x8000 unsigned addressing; false: 0x8800 signed addressing
	bgMapSelect      uint8
	spriteSize       uint8
	spriteEnabled    bool
	bgEnabled        bool

	scy, scx byte
	ly, lyc  byte
	mode     Mode
	clock    int

	bgp, obp0, obp1       byte
	bgPalette, obp0Palette, obp1Palette Palette

	bgColorIndex [Width]byte // scratch: raw bg palette index per column, for sprite priority

	requestInterrupt func(bit uint8)
}

// NewPPU constructs a PPU in OAM-scan mode on line 0. vram must be the bus's
// live VRAM byte slice (0x2000 bytes); the PPU only reads it: tile-data bytes
// when re-decoding a tile row after a write, and background tile-map entries
// while rendering.
func NewPPU(vram []byte, requestInterrupt func(bit uint8)) *PPU {
	return &PPU{
		vram:             vram,
		mode:             ModeOAMScan,
		frame:            NewFrameBuffer(),
		requestInterrupt: requestInterrupt,
	}
}

// Frame returns the raster buffer. Safe to read once Present is due (V-blank
// entry); the PPU only writes it during scanline render.
func (p *PPU) Frame() *FrameBuffer { return p.frame }

// Mode reports the current PPU mode.
func (p *PPU) Mode() Mode { return p.mode }

// LY reports the current scanline.
func (p *PPU) LY() byte { return p.ly }

// TileRow returns the eight decoded palette indices for one row of a cached
// tile. Exposed for inspection/debugging and tests.
func (p *PPU) TileRow(tileIndex, row int) [8]uint8 {
	return p.tileset[tileIndex].Rows[row]
}

// SpriteAt returns the decoded sprite attribute cache entry at index (0-39).
func (p *PPU) SpriteAt(index int) Sprite {
	return p.sprites[index]
}

// HandleVRAMWrite re-decodes the tile row touched by a write at VRAM-relative
// addr (0-0x1FFF).
func (p *PPU) HandleVRAMWrite(relative uint16) {
	p.updateTileRow(relative)
}

// HandleOAMWrite re-decodes the single sprite field touched by a write at
// OAM-relative addr (0-0x9F).
func (p *PPU) HandleOAMWrite(relative uint16, value byte) {
	p.updateSprite(relative, value)
}

// HandleOAMDMA re-decodes every sprite entry after a bulk OAM copy.
func (p *PPU) HandleOAMDMA(oam []byte) {
	p.rebuildAllSprites(oam)
}

// Tick advances the mode state machine by cycles machine cycles, rendering a
// scanline on every Drawing->HBlank transition and raising the V-blank
// interrupt on entry to V-blank.
func (p *PPU) Tick(cycles int) {
	if !p.lcdEnabled {
		return
	}
	p.clock += cycles
	for {
		switch p.mode {
		case ModeOAMScan:
			if p.clock < oamScanCycles {
				return
			}
			p.clock -= oamScanCycles
			p.mode = ModeDrawing
		case ModeDrawing:
			if p.clock < drawingCycles {
				return
			}
			p.clock -= drawingCycles
			p.renderScanline()
			p.mode = ModeHBlank
		case ModeHBlank:
			if p.clock < hblankCycles {
				return
			}
			p.clock -= hblankCycles
			p.ly++
			if p.ly > lastVisibleLine {
				p.mode = ModeVBlank
				p.requestInterrupt(vblankBit)
			} else {
				p.mode = ModeOAMScan
			}
		case ModeVBlank:
			if p.clock < vblankLineCycles {
				return
			}
			p.clock -= vblankLineCycles
			p.ly++
			if p.ly > lastLine {
				p.ly = 0
				p.mode = ModeOAMScan
			}
		}
	}
}

package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteDecodeMapsFieldsToGrayscale(t *testing.T) {
	p := decodePalette(0b11100100) // fields 0,1,2,3 = 0,1,2,3
	assert.Equal(t, Palette{255, 192, 96, 0}, p)
}

func TestTileDecodeIdempotence(t *testing.T) {
	vram := make([]byte, 0x2000)
	ppu := NewPPU(vram, func(uint8) {})

	write := func(relative uint16, v byte) {
		vram[relative] = v
		ppu.HandleVRAMWrite(relative)
	}

	write(0, 0x3C)
	write(1, 0x7E)
	want := ppu.TileRow(0, 0)

	// Re-writing the same two bytes, in the other order, must leave the
	// decoded row byte-identical.
	write(1, 0x7E)
	write(0, 0x3C)
	got := ppu.TileRow(0, 0)

	assert.Equal(t, want, got)
	assert.Equal(t, [8]uint8{0, 2, 3, 3, 3, 3, 2, 0}, got)
}

func TestModeStateMachineTransitions(t *testing.T) {
	vblankRaised := false
	ppu := NewPPU(make([]byte, 0x2000), func(bit uint8) {
		if bit == vblankBit {
			vblankRaised = true
		}
	})
	ppu.SetLCDC(0x80) // LCD on only

	assert.Equal(t, ModeOAMScan, ppu.Mode())
	ppu.Tick(oamScanCycles)
	assert.Equal(t, ModeDrawing, ppu.Mode())
	ppu.Tick(drawingCycles)
	assert.Equal(t, ModeHBlank, ppu.Mode())

	// Advance through the remaining 143 visible lines.
	for i := 0; i < 143; i++ {
		ppu.Tick(hblankCycles)
		ppu.Tick(oamScanCycles)
		ppu.Tick(drawingCycles)
	}
	ppu.Tick(hblankCycles)

	assert.Equal(t, ModeVBlank, ppu.Mode())
	assert.True(t, vblankRaised)
}

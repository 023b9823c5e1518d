package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arlohale/gbcore/gbcore/addr"
)

func TestMemoryRoundTrip(t *testing.T) {
	b := New()
	b.bootActive = false

	regions := []struct {
		name  string
		start uint16
		end   uint16
	}{
		{"work RAM", addr.WorkRAMStart, addr.WorkRAMEnd},
		{"external RAM", addr.ExternalRAMStart, addr.ExternalRAMEnd},
		{"high RAM", addr.HighRAMStart, addr.HighRAMEnd - 1}, // last byte is IE, excluded below
	}

	for _, r := range regions {
		t.Run(r.name, func(t *testing.T) {
			for _, a := range []uint16{r.start, r.start + 1, r.end} {
				for _, v := range []byte{0x00, 0x42, 0xFF} {
					b.Write8(a, v)
					assert.Equal(t, v, b.Read8(a), "round trip at 0x%04X", a)
				}
			}
		})
	}
}

func TestMemoryRoundTrip16(t *testing.T) {
	b := New()
	b.bootActive = false

	b.Write16(addr.WorkRAMStart, 0xBEEF)
	assert.Equal(t, uint16(0xBEEF), b.Read16(addr.WorkRAMStart))
	assert.Equal(t, byte(0xEF), b.Read8(addr.WorkRAMStart))
	assert.Equal(t, byte(0xBE), b.Read8(addr.WorkRAMStart+1))
}

func TestBootOverlayUnmapsAfterFirstReadAt0x0100(t *testing.T) {
	b := New()
	b.LoadROM([]byte{0xAB}) // cartridge byte at 0x0000, shadowed by boot ROM while active

	assert.True(t, b.InBootOverlay())
	assert.Equal(t, bootROM[0], b.Read8(0x0000))

	b.Read8(0x0100)
	assert.False(t, b.InBootOverlay())
}

func TestDIVZeroingIgnoresWrittenValue(t *testing.T) {
	b := New()
	for i := 0; i < 20; i++ {
		b.timer.Tick(4)
	}
	assert.NotZero(t, b.Read8(addr.DIV))

	b.Write8(addr.DIV, 0x99)
	assert.Equal(t, byte(0), b.Read8(addr.DIV))
}

func TestVRAMWriteUpdatesTileCache(t *testing.T) {
	b := New()
	b.Write8(addr.VRAMStart, 0x3C)
	b.Write8(addr.VRAMStart+1, 0x7E)

	want := [8]uint8{0, 2, 3, 3, 3, 3, 2, 0}
	assert.Equal(t, want, b.ppu.TileRow(0, 0))
}

func TestOAMDMACopiesAndRedecodesSprites(t *testing.T) {
	b := New()
	b.bootActive = false
	src := uint16(0xC000)
	for i := 0; i < 0xA0; i++ {
		b.Write8(src+uint16(i), 0)
	}
	// First sprite: Y=32 (16+16), X=16 (8+8), tile 5, attrs 0.
	b.Write8(src+0, 32)
	b.Write8(src+1, 16)
	b.Write8(src+2, 5)
	b.Write8(src+3, 0)

	b.Write8(addr.DMA, 0xC0)

	sprite := b.ppu.SpriteAt(0)
	assert.Equal(t, 16, sprite.Y)
	assert.Equal(t, 8, sprite.X)
	assert.Equal(t, uint8(5), sprite.TileIndex)
}

func TestUnmappedAccessReadsIgnoreAndDiscard(t *testing.T) {
	b := New()
	assert.Equal(t, byte(0xFF), b.Read8(0xFEA0))
	b.Write8(0xFEA0, 0x42) // must not panic; discarded
	assert.Equal(t, byte(0xFF), b.Read8(0xFEA0))
}

func TestBGPWriteReadsBackPackedValue(t *testing.T) {
	b := New()
	b.Write8(addr.BGP, 0xE4) // 11 10 01 00 -> fields 0,1,2,3 = 0,1,2,3
	assert.Equal(t, byte(0xE4), b.Read8(addr.BGP))
}

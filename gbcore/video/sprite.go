package video

// spriteCount is the number of entries OAM holds (40 four-byte records).
const spriteCount = 40

// Sprite is the decoded form of a four-byte OAM record.
type Sprite struct {
	Y         int
	X         int
	TileIndex uint8
	Palette   uint8 // 0 or 1, selects OBP0 or OBP1
	FlipX     bool
	FlipY     bool
	Priority  uint8 // 0 = drawn above the background; 1 = hidden behind non-zero background colors
}

// updateSprite refreshes the single field touched by an OAM write at addr
// (OAM-relative, 0-0x9F). index = addr/4, field = addr%4.
func (p *PPU) updateSprite(addr uint16, value byte) {
	index := addr / 4
	field := addr % 4
	s := &p.sprites[index]
	switch field {
	case 0:
		s.Y = int(value) - 16
	case 1:
		s.X = int(value) - 8
	case 2:
		s.TileIndex = value
	case 3:
		s.Priority = (value >> 7) & 1
		s.FlipY = value&0x40 != 0
		s.FlipX = value&0x20 != 0
		s.Palette = (value >> 4) & 1
	}
}

// rebuildAllSprites re-decodes every sprite entry from a freshly DMA'd OAM
// image, one 4-byte record at a time.
func (p *PPU) rebuildAllSprites(oam []byte) {
	for i := 0; i < spriteCount; i++ {
		base := uint16(i * 4)
		p.updateSprite(base, oam[base])
		p.updateSprite(base+1, oam[base+1])
		p.updateSprite(base+2, oam[base+2])
		p.updateSprite(base+3, oam[base+3])
	}
}

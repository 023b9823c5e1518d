package render

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidFrame(width, height int, shade byte) []byte {
	frame := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		frame[i*4] = shade
		frame[i*4+1] = shade
		frame[i*4+2] = shade
		frame[i*4+3] = 255
	}
	return frame
}

func TestRGBAToHalfBlocksSolidWhiteFrame(t *testing.T) {
	lines := RGBAToHalfBlocks(solidFrame(4, 4, 255), 4, 4)

	require.Len(t, lines, 2)
	for _, line := range lines {
		for _, r := range line {
			assert.Equal(t, '█', r)
		}
	}
}

func TestRGBAToHalfBlocksOddHeightPadsLastRow(t *testing.T) {
	lines := RGBAToHalfBlocks(solidFrame(2, 3, 0), 2, 3)

	assert.Len(t, lines, 2)
}

func TestRGBAToHalfBlocksShortBufferReturnsEmpty(t *testing.T) {
	lines := RGBAToHalfBlocks([]byte{1, 2, 3}, 4, 4)

	assert.Empty(t, lines)
}

func TestHalfBlockCharMixedShadesFillsWhiteHalf(t *testing.T) {
	assert.Equal(t, '▄', halfBlockChar(0, 3))
	assert.Equal(t, '▀', halfBlockChar(3, 0))
}

func TestWritePNGProducesDecodableImage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, solidFrame(4, 4, 192), 4, 4))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

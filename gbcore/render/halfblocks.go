// Package render turns the core's RGBA raster buffer into host-presentable
// output: half-block terminal text, a PNG snapshot, and a minimal tcell
// live viewer. None of this is part of the emulation core.
package render

// shadeOf reads the grayscale intensity (0-3, 3=white) of the pixel at
// (x, y) in an RGBA, row-major, alpha-always-255 frame buffer.
func shadeOf(frame []byte, width, x, y int) int {
	i := (y*width + x) * 4
	switch frame[i] {
	case 0:
		return 0
	case 96:
		return 1
	case 192:
		return 2
	default:
		return 3
	}
}

// halfBlockChar returns the glyph for one terminal cell covering two stacked
// pixel rows.
func halfBlockChar(top, bottom int) rune {
	switch {
	case top == bottom:
		return '█'
	case top == 3 && bottom != 3:
		return '▀'
	case top != 3 && bottom == 3:
		return '▄'
	default:
		return '▀'
	}
}

// RGBAToHalfBlocks renders an RGBA frame to one string per pair of pixel
// rows, two pixels tall per terminal cell.
func RGBAToHalfBlocks(frame []byte, width, height int) []string {
	if len(frame) < width*height*4 {
		return []string{}
	}

	textHeight := height / 2
	if height%2 != 0 {
		textHeight++
	}

	lines := make([]string, textHeight)
	for row := 0; row < textHeight; row++ {
		line := make([]rune, width)
		topRow := row * 2
		bottomRow := topRow + 1

		for x := 0; x < width; x++ {
			top := 3
			if topRow < height {
				top = shadeOf(frame, width, x, topRow)
			}
			bottom := 3
			if bottomRow < height {
				bottom = shadeOf(frame, width, x, bottomRow)
			}
			line[x] = halfBlockChar(top, bottom)
		}
		lines[row] = string(line)
	}

	return lines
}

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// WritePNG encodes an RGBA frame buffer as a PNG, for --snapshot-dir.
func WritePNG(w io.Writer, frame []byte, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.Set(x, y, color.RGBA{R: frame[i], G: frame[i+1], B: frame[i+2], A: frame[i+3]})
		}
	}
	return png.Encode(w, img)
}

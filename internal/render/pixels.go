// Package render draws simulation cells as still images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"schelling/internal/core"
)

// CityPalette maps household values to colors: for sale, maroon, blue.
var CityPalette = []color.RGBA{
	{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff},
	{R: 0x80, G: 0x00, B: 0x00, A: 0xff},
	{R: 0x1f, G: 0x4e, B: 0xb4, A: 0xff},
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette,
// repeating each cell scale times in both directions. Values past the end of
// the palette use its last color. An empty palette clears buf.
func fillPaletteRGBA(buf []byte, cells []uint8, w, scale int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf)
		return
	}
	last := len(palette) - 1
	stride := w * scale * 4
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		col := palette[idx]
		x, y := i%w, i/w
		for dy := 0; dy < scale; dy++ {
			row := (y*scale + dy) * stride
			for dx := 0; dx < scale; dx++ {
				base := row + (x*scale+dx)*4
				buf[base+0] = col.R
				buf[base+1] = col.G
				buf[base+2] = col.B
				buf[base+3] = col.A
			}
		}
	}
}

// Image renders the current cells of sim with scale pixels per cell.
func Image(sim core.Sim, palette []color.RGBA, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	size := sim.Size()
	img := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	fillPaletteRGBA(img.Pix, sim.Cells(), size.W, scale, palette)
	return img
}

// SavePNG writes Image(sim, palette, scale) to path.
func SavePNG(path string, sim core.Sim, palette []color.RGBA, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating image: %w", err)
	}
	if err := png.Encode(f, Image(sim, palette, scale)); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}

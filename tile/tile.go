/*
Package tile implements the Game Boy 2 bits-per-pixel tile encoder.

An image is split into 8 by 8 pixel tiles. Each tile row is stored as two
bytes: the low byte holds bit 0 of every pixel's palette index and the high
byte holds bit 1, with the leftmost pixel in the most significant bit. A
full tile is therefore 16 bytes and an image encodes to width*height/4
bytes.

Images whose dimensions are not multiples of 8 are truncated to whole
tiles; the remainder pixels are ignored.
*/
package tile

import (
	"image"
	"image/color"
)

const (
	tileWidth  = 8
	tileHeight = tileWidth
	tilePixels = tileWidth * tileHeight

	// bytes per tile row and per whole tile on the wire
	rowBytes  = 2
	tileBytes = tileHeight * rowBytes

	maxColors = 4

	// channel values are collapsed into buckets of this size before any
	// palette is built
	channelStep = 32
)

// Color is an exact 8-bit RGB triple. Alpha never survives normalization
// so it carries none.
type Color struct {
	R, G, B uint8
}

// Round truncates each channel down to a multiple of 32, collapsing the
// 256-level channel space into 8 buckets. Rounding is idempotent.
func (c Color) Round() Color {
	return Color{
		R: c.R / channelStep * channelStep,
		G: c.G / channelStep * channelStep,
		B: c.B / channelStep * channelStep,
	}
}

// Less orders colors by their (R, G, B) tuple.
func (c Color) Less(o Color) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	if c.G != o.G {
		return c.G < o.G
	}
	return c.B < o.B
}

func (c Color) sum() int {
	return int(c.R) + int(c.G) + int(c.B)
}

// PixelBuffer is a row-major sequence of rounded Colors plus the image
// dimensions. It is built once by Normalize and read-only afterwards.
type PixelBuffer struct {
	Pix    []Color
	Width  int
	Height int
}

// ColorAt returns the color at (x, y). The caller is responsible for
// bounds.
func (p *PixelBuffer) ColorAt(x, y int) Color {
	return p.Pix[y*p.Width+x]
}

// ColorModel implements image.Image.
func (p *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (p *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.Width, p.Height)
}

// At implements image.Image.
func (p *PixelBuffer) At(x, y int) color.Color {
	c := p.ColorAt(x, y)
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

// Palette maps every distinct color in a PixelBuffer to a 2-bit index.
type Palette map[Color]uint8

func (p Palette) indexOf(c Color) uint8 {
	i, ok := p[c]
	if !ok {
		// Normalize rounds every color before a palette is built, so
		// a miss here is a bug in the caller, not bad input.
		panic("tile: color missing from palette")
	}
	return i
}

package tile

import (
	"errors"
	"image"
	"image/color"
)

var (
	errNotEnough = errors.New("tile: not enough tile data")
	errTooMuch   = errors.New("tile: too much tile data")
)

// DefaultPalette holds the four DMG shades, lightest first, matching the
// 2-bit index order produced by the quantizers.
var DefaultPalette = color.Palette{
	color.Gray{0xff},
	color.Gray{0xaa},
	color.Gray{0x55},
	color.Gray{0x00},
}

// Decode is the inverse of Pack: it expands a 2bpp byte stream back into
// a paletted image over the DMG shades. The stream must hold exactly
// enough whole tiles to fill width by height pixels.
func Decode(data []byte, width, height int) (*image.Paletted, error) {
	tileX := width / tileWidth
	tileY := height / tileHeight

	if len(data) < tileX*tileY*tileBytes {
		return nil, errNotEnough
	}
	if len(data) > tileX*tileY*tileBytes {
		return nil, errTooMuch
	}

	m := image.NewPaletted(image.Rect(0, 0, tileX*tileWidth, tileY*tileHeight), DefaultPalette)

	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			tile := ty*tileX + tx
			for y := 0; y < tileHeight; y++ {
				lo := data[tile*tileBytes+y*rowBytes]
				hi := data[tile*tileBytes+y*rowBytes+1]
				for x := 0; x < tileWidth; x++ {
					bit := uint(tileWidth - 1 - x)
					c := lo>>bit&1 | hi>>bit&1<<1
					m.SetColorIndex(tx*tileWidth+x, ty*tileHeight+y, c)
				}
			}
		}
	}

	return m, nil
}

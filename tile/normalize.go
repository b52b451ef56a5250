package tile

import (
	"fmt"
	"image"
)

// UnsupportedColorTypeError is returned by Normalize when the decoded
// raster uses a channel layout the encoder does not understand.
type UnsupportedColorTypeError struct {
	Layout string
}

func (e *UnsupportedColorTypeError) Error() string {
	return fmt.Sprintf("tile: unsupported color type %s", e.Layout)
}

// Normalize converts a decoded raster into a PixelBuffer of rounded RGB
// colors. Alpha channels are dropped and grayscale expands to equal
// R=G=B. Rasters other than NRGBA, RGBA, Gray and Paletted fail with
// UnsupportedColorTypeError.
func Normalize(m image.Image) (*PixelBuffer, error) {
	b := m.Bounds()
	buf := &PixelBuffer{
		Pix:    make([]Color, b.Dx()*b.Dy()),
		Width:  b.Dx(),
		Height: b.Dy(),
	}

	switch m := m.(type) {
	case *image.NRGBA:
		fromPix(buf, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, 4)
	case *image.RGBA:
		fromPix(buf, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, 4)
	case *image.Gray:
		fromPix(buf, m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], m.Stride, 1)
	case *image.Paletted:
		fromPaletted(buf, m)
	default:
		return nil, &UnsupportedColorTypeError{
			Layout: fmt.Sprintf("%T", m),
		}
	}

	return buf, nil
}

// fromPix walks a raw sample buffer with the given stride and bytes per
// pixel. A single channel is treated as grayscale; anything wider is
// RGB(A) with any fourth channel ignored.
func fromPix(buf *PixelBuffer, pix []byte, stride, channels int) {
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			s := pix[y*stride+x*channels:]
			var c Color
			if channels == 1 {
				c = Color{s[0], s[0], s[0]}
			} else {
				c = Color{s[0], s[1], s[2]}
			}
			buf.Pix[y*buf.Width+x] = c.Round()
		}
	}
}

func fromPaletted(buf *PixelBuffer, m *image.Paletted) {
	// Expand the palette once, then index into it per pixel
	lookup := make([]Color, len(m.Palette))
	for i, pc := range m.Palette {
		r, g, b, _ := pc.RGBA()
		lookup[i] = Color{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}.Round()
	}

	b := m.Bounds()
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			buf.Pix[y*buf.Width+x] = lookup[m.ColorIndexAt(b.Min.X+x, b.Min.Y+y)]
		}
	}
}

package tile

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/ericpauley/go-quantize/quantize"
)

// A Quantizer builds the Palette mapping every distinct color in a
// PixelBuffer to a 2-bit index. Strategies are chosen at construction
// time; LuminanceQuantizer is the default used by the tool.
type Quantizer interface {
	Quantize(buf *PixelBuffer) (Palette, error)
}

// TooManyColorsError is returned by EnumerationQuantizer when a scan
// encounters a fifth distinct color. It carries the colors seen so far
// and the position of the offending pixel.
type TooManyColorsError struct {
	Colors []Color
	X, Y   int
}

func (e *TooManyColorsError) Error() string {
	return fmt.Sprintf("tile: more than %d distinct colors, %d seen by pixel (%d, %d)",
		maxColors, len(e.Colors), e.X, e.Y)
}

// LuminanceQuantizer assigns each color a shade from the sum of its
// channels, darkest colors mapping to index 3. Any number of distinct
// colors may share a bucket so it never fails.
type LuminanceQuantizer struct{}

// Index 3 covers sums 0-191, index 2 sums 192-382, index 1 sums 383-573
// and index 0 everything brighter. The thresholds split the 0-765 sum
// range into four equal shades.
func luminanceIndex(c Color) uint8 {
	switch sum := c.sum(); {
	case sum <= 191:
		return 3
	case sum <= 382:
		return 2
	case sum <= 573:
		return 1
	default:
		return 0
	}
}

func (LuminanceQuantizer) Quantize(buf *PixelBuffer) (Palette, error) {
	p := make(Palette)
	for _, c := range buf.Pix {
		if _, ok := p[c]; !ok {
			p[c] = luminanceIndex(c)
		}
	}
	return p, nil
}

// EnumerationQuantizer collects the distinct colors of the image and
// assigns the i-th color, in (R, G, B) order, index i. A fifth distinct
// color fails the scan with TooManyColorsError.
type EnumerationQuantizer struct{}

func (EnumerationQuantizer) Quantize(buf *PixelBuffer) (Palette, error) {
	seen := make(map[Color]struct{})
	colors := make([]Color, 0, maxColors)

	for i, c := range buf.Pix {
		if _, ok := seen[c]; ok {
			continue
		}
		if len(colors) == maxColors {
			return nil, &TooManyColorsError{
				Colors: append(colors, c),
				X:      i % buf.Width,
				Y:      i / buf.Width,
			}
		}
		seen[c] = struct{}{}
		colors = append(colors, c)
	}

	sort.Slice(colors, func(i, j int) bool { return colors[i].Less(colors[j]) })

	p := make(Palette, len(colors))
	for i, c := range colors {
		p[c] = uint8(i)
	}
	return p, nil
}

// MedianCutQuantizer reduces arbitrary-color art to at most four colors
// by median cut before enumerating, so images the strict policies would
// reject still encode. The mapping from source color to reduced color
// goes through the palette's nearest-color match.
type MedianCutQuantizer struct{}

func (MedianCutQuantizer) Quantize(buf *PixelBuffer) (Palette, error) {
	q := quantize.MedianCutQuantizer{}
	reduced := q.Quantize(make(color.Palette, 0, maxColors), buf)

	p := make(Palette)
	for _, c := range buf.Pix {
		if _, ok := p[c]; !ok {
			p[c] = uint8(reduced.Index(color.RGBA{c.R, c.G, c.B, 0xff}))
		}
	}
	return p, nil
}

package gbtile

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/blakesmith/gbtile/emit"
	"github.com/blakesmith/gbtile/tile"
)

// Convert encodes the image at input and writes it as source code to
// output. The whole text blob is rendered in memory first so a failure
// anywhere in the pipeline never truncates an existing output file.
func (g *GBTile) Convert(input, output string, format emit.Format) error {
	symbol, err := emit.Symbol(input)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	m, _, err := image.Decode(io.TeeReader(f, h))
	if err != nil {
		return err
	}
	sha := fmt.Sprintf("%X", h.Sum(nil))

	data, err := g.encode(m, sha)
	if err != nil {
		return err
	}

	b := new(bytes.Buffer)
	if err := emit.Emit(b, format, symbol, data); err != nil {
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(b.Bytes()); err != nil {
		return err
	}

	g.logger.Printf("Wrote %d tile bytes for \"%s\" to \"%s\"\n", len(data), input, output)

	return nil
}

func (g *GBTile) encode(m image.Image, sha string) ([]byte, error) {
	if g.cache != nil {
		data, err := g.cache.Find(sha)
		if err != nil {
			return nil, err
		}
		if data != nil {
			return data, nil
		}
	}

	buf, err := tile.Normalize(m)
	if err != nil {
		return nil, err
	}

	if buf.Width%8 != 0 || buf.Height%8 != 0 {
		g.logger.Printf("Image is %dx%d, not a multiple of 8; remainder pixels are dropped\n", buf.Width, buf.Height)
	}

	p, err := g.quantizer.Quantize(buf)
	if err != nil {
		return nil, err
	}

	data := tile.Pack(buf, p)

	if g.cache != nil {
		if err := g.cache.Store(sha, data); err != nil {
			return nil, err
		}
	}

	return data, nil
}

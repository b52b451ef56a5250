package tile

// Pack encodes the buffer into the 2bpp byte stream. Tiles are emitted in
// row-major block order, each tile as eight (low, high) bit-plane byte
// pairs, top row first. Within a row the leftmost pixel lands in bit 7 of
// both planes; this bit order is the hardware display contract.
//
// Dimensions that are not multiples of 8 are truncated to whole tiles.
func Pack(buf *PixelBuffer, p Palette) []byte {
	tileX := buf.Width / tileWidth
	tileY := buf.Height / tileHeight

	out := make([]byte, 0, tileX*tileY*tileBytes)

	for ty := 0; ty < tileY; ty++ {
		for tx := 0; tx < tileX; tx++ {
			for y := 0; y < tileHeight; y++ {
				var lo, hi byte
				for x := 0; x < tileWidth; x++ {
					c := p.indexOf(buf.ColorAt(tx*tileWidth+x, ty*tileHeight+y))
					lo = lo<<1 | c&1
					hi = hi<<1 | c>>1&1
				}
				out = append(out, lo, hi)
			}
		}
	}

	return out
}

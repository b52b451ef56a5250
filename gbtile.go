/*
Package gbtile converts raster images into Game Boy 2bpp tile data and
emits it as source code for the GBDK or RGBDS toolchains.
*/
package gbtile

import (
	"github.com/sirupsen/logrus"

	"github.com/blakesmith/gbtile/tile"
)

type GBTile struct {
	cache     *TileCache
	quantizer tile.Quantizer
	logger    *logrus.Logger
}

// New returns a converter using the given quantization strategy. The
// cache may be nil, in which case every image is re-encoded. The logger
// is the only diagnostic sink; the encoding packages never log.
func New(cache *TileCache, quantizer tile.Quantizer, logger *logrus.Logger) *GBTile {
	return &GBTile{
		cache:     cache,
		quantizer: quantizer,
		logger:    logger,
	}
}

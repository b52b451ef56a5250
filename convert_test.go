package gbtile

import (
	"crypto/sha1"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blakesmith/gbtile/emit"
	"github.com/blakesmith/gbtile/tile"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logger
}

// writeTestImage writes a width by height PNG filled with a single gray
// level.
func writeTestImage(t *testing.T, path string, width, height int, level uint8) {
	t.Helper()

	m := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.SetGray(x, y, color.Gray{level})
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, m))
}

func shaFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return fmt.Sprintf("%X", sha1.Sum(b))
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "foo.png")
	output := filepath.Join(dir, "foo.c")
	writeTestImage(t, input, 8, 8, 0)

	g := New(nil, tile.LuminanceQuantizer{}, testLogger())
	require.NoError(t, g.Convert(input, output, emit.FormatC))

	b, err := os.ReadFile(output)
	require.NoError(t, err)

	expected := "unsigned char foo[] = {\n" +
		"    0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF,0xFF\n" +
		"};\n"
	assert.Equal(t, expected, string(b))
}

func TestConvertASM(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "logo.png")
	output := filepath.Join(dir, "logo.z80")
	writeTestImage(t, input, 8, 8, 255)

	g := New(nil, tile.LuminanceQuantizer{}, testLogger())
	require.NoError(t, g.Convert(input, output, emit.FormatASM))

	b, err := os.ReadFile(output)
	require.NoError(t, err)

	s := string(b)
	assert.True(t, strings.HasPrefix(s, "SECTION \"logo\", ROM0\n"))
	assert.Contains(t, s, "    db $00,$00,")
	assert.True(t, strings.HasSuffix(s, "logo_end:\n"))
}

func TestConvertTooManyColors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "busy.png")
	output := filepath.Join(dir, "busy.c")

	m := image.NewGray(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			m.SetGray(x, y, color.Gray{uint8(y * 32)})
		}
	}
	f, err := os.Create(input)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	g := New(nil, tile.EnumerationQuantizer{}, testLogger())
	err = g.Convert(input, output, emit.FormatC)

	var tooMany *tile.TooManyColorsError
	require.ErrorAs(t, err, &tooMany)

	// Nothing may be written on failure
	_, err = os.Stat(output)
	assert.True(t, os.IsNotExist(err))
}

func TestConvertCached(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "foo.png")
	writeTestImage(t, input, 8, 8, 0)

	cache, err := NewTileCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	g := New(cache, tile.LuminanceQuantizer{}, testLogger())

	first := filepath.Join(dir, "first.c")
	require.NoError(t, g.Convert(input, first, emit.FormatC))

	second := filepath.Join(dir, "second.c")
	require.NoError(t, g.Convert(input, second, emit.FormatC))

	// The second conversion is served from the cache and must render
	// identically
	b1, err := os.ReadFile(first)
	require.NoError(t, err)
	b2, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)

	cached, err := cache.Find(shaFile(t, input))
	require.NoError(t, err)
	assert.Len(t, cached, 16)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeTestImage(t, filepath.Join(dir, "a.png"), 8, 8, 0)
	writeTestImage(t, filepath.Join(dir, "b.png"), 16, 8, 255)

	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeTestImage(t, filepath.Join(sub, "c.png"), 8, 8, 128)

	// Hidden directories are skipped
	hidden := filepath.Join(dir, ".hidden")
	require.NoError(t, os.Mkdir(hidden, 0o755))
	writeTestImage(t, filepath.Join(hidden, "d.png"), 8, 8, 0)

	g := New(nil, tile.LuminanceQuantizer{}, testLogger())
	require.NoError(t, g.Scan(dir, emit.FormatC))

	for _, f := range []string{"a.c", "b.c", filepath.Join("nested", "c.c")} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}

	_, err := os.Stat(filepath.Join(hidden, "d.c"))
	assert.True(t, os.IsNotExist(err))
}

/*
Package emit renders packed tile bytes as source code for a Game Boy
toolchain, either as a GBDK-style C array or an RGBDS-style assembly
block. Both renderings are parsed by external tools and are byte-exact
contracts.
*/
package emit

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format selects the output rendering.
type Format int

const (
	// FormatC renders an unsigned char array for GBDK
	FormatC Format = iota
	// FormatASM renders an RGBDS data block
	FormatASM
)

const bytesPerLine = 16

// ErrNoSymbolName is returned when an input path yields no usable symbol
// for the generated code.
var ErrNoSymbolName = errors.New("emit: no symbol name derivable from path")

// ParseFormat maps a format name to a Format, defaulting to FormatC for
// anything unrecognized.
func ParseFormat(s string) Format {
	switch s {
	case "rgbds", "asm":
		return FormatASM
	default:
		return FormatC
	}
}

// Symbol derives the generated symbol name from an input path: the base
// file name with any directory and extension stripped.
func Symbol(path string) (string, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", ErrNoSymbolName
	}
	return name, nil
}

type encoder struct {
	w io.Writer
}

func (e *encoder) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(e.w, format, args...)
	return err
}

// lines splits data into runs of at most bytesPerLine bytes and renders
// each byte with the given verb, joining bytes with commas.
func (e *encoder) lines(data []byte, indent, verb, sep string) error {
	for i := 0; i < len(data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(data) {
			end = len(data)
		}

		if err := e.printf("%s", indent); err != nil {
			return err
		}
		for j, b := range data[i:end] {
			if j > 0 {
				if err := e.printf(","); err != nil {
					return err
				}
			}
			if err := e.printf(verb, b); err != nil {
				return err
			}
		}
		if end < len(data) {
			if err := e.printf("%s", sep); err != nil {
				return err
			}
		}
		if err := e.printf("\n"); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeC(symbol string, data []byte) error {
	if err := e.printf("unsigned char %s[] = {\n", symbol); err != nil {
		return err
	}
	if err := e.lines(data, "    ", "0x%02X", ","); err != nil {
		return err
	}
	return e.printf("};\n")
}

func (e *encoder) encodeASM(symbol string, data []byte) error {
	if err := e.printf("SECTION \"%s\", ROM0\nEXPORT %s\nEXPORT %s_end\n%s:\n", symbol, symbol, symbol, symbol); err != nil {
		return err
	}
	if err := e.lines(data, "    db ", "$%02x", ""); err != nil {
		return err
	}
	return e.printf("%s_end:\n", symbol)
}

// Emit writes the tile byte stream to w in the selected format under the
// given symbol name.
func Emit(w io.Writer, format Format, symbol string, data []byte) error {
	e := &encoder{w: w}
	if format == FormatASM {
		return e.encodeASM(symbol, data)
	}
	return e.encodeC(symbol, data)
}

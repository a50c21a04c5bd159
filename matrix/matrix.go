// Package matrix turns a payload into the square module grid of a QR symbol.
//
// The package does not implement QR encoding itself. It defines the Encoder
// contract consumed by the renderer and adapts two real encoders to it:
// QRCode (github.com/yeqown/go-qrcode/v2) and Compact
// (github.com/skip2/go-qrcode).
package matrix

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is the error-correction level of a symbol, from L (lowest
// redundancy) to H (highest).
type Level uint8

const (
	// LevelL recovers about 7% of damaged codewords.
	LevelL Level = iota
	// LevelM recovers about 15%, default.
	LevelM
	// LevelQ recovers about 25%.
	LevelQ
	// LevelH recovers about 30%.
	LevelH
)

var (
	// ErrEmptyPayload is returned when the payload has nothing to encode.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrUnknownLevel is returned by ParseLevel for unrecognised input.
	ErrUnknownLevel = errors.New("unknown error correction level")
)

// String returns the single letter name of the level.
func (l Level) String() string {
	switch l {
	case LevelL:
		return "L"
	case LevelM:
		return "M"
	case LevelQ:
		return "Q"
	case LevelH:
		return "H"
	}
	return "?"
}

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool {
	return l <= LevelH
}

// ParseLevel accepts "L", "M", "Q" or "H" in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "L":
		return LevelL, nil
	case "M":
		return LevelM, nil
	case "Q":
		return LevelQ, nil
	case "H":
		return LevelH, nil
	}
	return LevelM, errors.Wrapf(ErrUnknownLevel, "level %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, errors.Wrapf(ErrUnknownLevel, "level %d", l)
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so levels can be read
// from configuration files.
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// Grid is a square boolean module grid, grid[y][x] is true for a dark module.
// It carries no quiet zone.
type Grid [][]bool

// Size returns the number of modules along one edge.
func (g Grid) Size() int {
	return len(g)
}

// At reports whether the module at (x, y) is dark. Out of range reads
// report false.
func (g Grid) At(x, y int) bool {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return false
	}
	return g[y][x]
}

// NewGrid allocates an empty n×n grid.
func NewGrid(n int) Grid {
	g := make(Grid, n)
	for i := range g {
		g[i] = make([]bool, n)
	}
	return g
}

// Encoder produces the module grid for a payload at the given level.
// Implementations fail for empty payloads, payloads exceeding the capacity of
// the largest symbol at that level, and characters they cannot represent.
type Encoder interface {
	Encode(payload string, level Level) (Grid, error)
}

// EncoderFunc adapts a function to the Encoder interface.
type EncoderFunc func(payload string, level Level) (Grid, error)

// Encode calls f(payload, level).
func (f EncoderFunc) Encode(payload string, level Level) (Grid, error) {
	return f(payload, level)
}

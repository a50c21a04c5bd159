package scene

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Paint is either a solid colour or a reference to a paint server.
type Paint struct {
	Color string
	Ref   string
}

// Solid paints with a colour.
func Solid(color string) Paint {
	return Paint{Color: color}
}

// URL paints with the server registered under id.
func URL(id string) Paint {
	return Paint{Ref: id}
}

// IsZero reports whether nothing was set.
func (p Paint) IsZero() bool {
	return p.Color == "" && p.Ref == ""
}

// String formats the paint as an SVG attribute value.
func (p Paint) String() string {
	if p.Ref != "" {
		return "url(#" + p.Ref + ")"
	}
	if p.Color == "" {
		return "none"
	}
	return p.Color
}

// Unit of a Length.
type Unit uint8

const (
	// UnitNumber is a plain user space number.
	UnitNumber Unit = iota
	// UnitPercent is a percentage of the reference box.
	UnitPercent
)

// Length is a percentage or a plain number.
type Length struct {
	Value float64
	Unit  Unit
}

// Percent returns v%.
func Percent(v float64) Length {
	return Length{Value: v, Unit: UnitPercent}
}

// Number returns a unitless length.
func Number(v float64) Length {
	return Length{Value: v}
}

// ErrInvalidLength is returned by ParseLength.
var ErrInvalidLength = errors.New("invalid length")

// ParseLength parses "40%", "0.4" or "12px".
func ParseLength(s string) (Length, error) {
	raw := strings.TrimSpace(s)
	unit := UnitNumber
	switch {
	case strings.HasSuffix(raw, "%"):
		unit = UnitPercent
		raw = strings.TrimSuffix(raw, "%")
	case strings.HasSuffix(raw, "px"):
		raw = strings.TrimSuffix(raw, "px")
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return Length{}, errors.Wrapf(ErrInvalidLength, "parse %q", s)
	}
	return Length{Value: v, Unit: unit}, nil
}

// MustParseLength is ParseLength for constants; it panics on error.
func MustParseLength(s string) Length {
	l, err := ParseLength(s)
	if err != nil {
		panic(err)
	}
	return l
}

// Fraction returns the length as a fraction of its reference box: a
// percentage divided by 100, a number as is.
func (l Length) Fraction() float64 {
	if l.Unit == UnitPercent {
		return l.Value / 100
	}
	return l.Value
}

// String formats the length as an SVG attribute value.
func (l Length) String() string {
	v := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.Unit == UnitPercent {
		return v + "%"
	}
	return v
}

// MarshalText implements encoding.TextMarshaler.
func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Length) UnmarshalText(text []byte) error {
	v, err := ParseLength(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

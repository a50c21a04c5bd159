package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// ErrInvalidColor is returned by ParseColor.
var ErrInvalidColor = errors.New("invalid color")

// ParseColor parses the colour syntaxes accepted as paint values: #rgb,
// #rrggbb, #rrggbbaa, rgb(), rgba(), "transparent", "none" and CSS names.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "transparent" || v == "none":
		return color.NRGBA{}, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:], s)
	case strings.HasPrefix(v, "rgb"):
		return parseFunc(v, s)
	}

	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "unknown color %q", s)
}

func parseHex(h, orig string) (color.NRGBA, error) {
	if len(h) == 3 || len(h) == 4 {
		var sb strings.Builder
		for _, r := range h {
			sb.WriteRune(r)
			sb.WriteRune(r)
		}
		h = sb.String()
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "bad hex %q", orig)
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "bad hex %q", orig)
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// parseFunc handles rgb(r, g, b) and rgba(r, g, b, a) with 0-255 or
// percentage channels and a 0-1 alpha.
func parseFunc(v, orig string) (color.NRGBA, error) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "bad function %q", orig)
	}
	args := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "bad function %q", orig)
	}

	var ch [4]uint8
	ch[3] = 255
	for i, a := range args {
		l, err := ParseLength(a)
		if err != nil {
			return color.NRGBA{}, errors.Wrapf(ErrInvalidColor, "bad channel %q in %q", a, orig)
		}
		switch {
		case i == 3:
			ch[i] = clampChannel(l.Fraction() * 255)
		case l.Unit == UnitPercent:
			ch[i] = clampChannel(l.Value * 255 / 100)
		default:
			ch[i] = clampChannel(l.Value)
		}
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

func clampChannel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

// Hex formats an opaque colour as #rrggbb.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

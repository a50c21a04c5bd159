package raster

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type point struct {
	X, Y float64
}

// subpath is a polyline started by a moveto.
type subpath struct {
	points []point
	closed bool
}

// parsePath reads the line commands of a path descriptor: M, L, H, V and Z
// in absolute and relative form. Curves are not produced by the path
// compressor and are rejected.
func parsePath(d string) ([]subpath, error) {
	toks := tokenize(d)
	var (
		out []subpath
		cur point
		cmd byte
	)

	next := func(i *int) (float64, error) {
		if *i >= len(toks) {
			return 0, errors.Errorf("path %q: missing number", d)
		}
		v, err := strconv.ParseFloat(toks[*i], 64)
		if err != nil {
			return 0, errors.Wrapf(err, "path %q", d)
		}
		*i++
		return v, nil
	}

	for i := 0; i < len(toks); {
		if t := toks[i]; len(t) == 1 && unicode.IsLetter(rune(t[0])) {
			cmd = t[0]
			i++
		} else if cmd == 0 {
			return nil, errors.Errorf("path %q: number before command", d)
		}

		rel := cmd >= 'a'
		switch strings.ToUpper(string(cmd)) {
		case "M", "L":
			x, err := next(&i)
			if err != nil {
				return nil, err
			}
			y, err := next(&i)
			if err != nil {
				return nil, err
			}
			if rel {
				x, y = cur.X+x, cur.Y+y
			}
			cur = point{x, y}
			if cmd == 'M' || cmd == 'm' || len(out) == 0 {
				out = append(out, subpath{points: []point{cur}})
				// implicit lineto for repeated pairs
				if rel {
					cmd = 'l'
				} else {
					cmd = 'L'
				}
				continue
			}
			out[len(out)-1].points = append(out[len(out)-1].points, cur)
		case "H", "V":
			v, err := next(&i)
			if err != nil {
				return nil, err
			}
			if len(out) == 0 {
				return nil, errors.Errorf("path %q: %c before moveto", d, cmd)
			}
			switch cmd {
			case 'H':
				cur.X = v
			case 'h':
				cur.X += v
			case 'V':
				cur.Y = v
			case 'v':
				cur.Y += v
			}
			out[len(out)-1].points = append(out[len(out)-1].points, cur)
		case "Z":
			if len(out) > 0 {
				sp := &out[len(out)-1]
				sp.closed = true
				cur = sp.points[0]
			}
			cmd = 0
		default:
			return nil, errors.Errorf("path %q: unsupported command %c", d, cmd)
		}
	}
	return out, nil
}

// tokenize splits commands from numbers; "M0 5L20,5" yields M 0 5 L 20 5.
func tokenize(d string) []string {
	var (
		toks []string
		sb   strings.Builder
	)
	flush := func() {
		if sb.Len() > 0 {
			toks = append(toks, sb.String())
			sb.Reset()
		}
	}
	for _, r := range d {
		switch {
		case r == ',' || unicode.IsSpace(r):
			flush()
		case unicode.IsLetter(r) && r != 'e' && r != 'E':
			flush()
			toks = append(toks, string(r))
		case r == '-' && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "e"):
			flush()
			sb.WriteRune(r)
		default:
			sb.WriteRune(r)
		}
	}
	flush()
	return toks
}

// bounds returns the bounding box of every point.
func bounds(paths []subpath) (minX, minY, maxX, maxY float64, ok bool) {
	for _, sp := range paths {
		for _, p := range sp.points {
			if !ok {
				minX, minY, maxX, maxY, ok = p.X, p.Y, p.X, p.Y, true
				continue
			}
			minX, maxX = min(minX, p.X), max(maxX, p.X)
			minY, maxY = min(minY, p.Y), max(maxY, p.Y)
		}
	}
	return
}

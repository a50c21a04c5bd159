// Package pathcomp compresses a module grid into a single SVG path.
//
// Every horizontal run of dark modules becomes one line segment drawn along
// the centre of its row. Stroking the path with a width of one cell covers
// exactly the run, so a symbol of any density is a single path element.
package pathcomp

import (
	"strconv"
	"strings"

	"github.com/Mictilt/qrsvg/matrix"
)

// Result is the compressed form of a grid.
type Result struct {
	// Path is the path descriptor, a sequence of "M x y L x y" segments.
	Path string
	// CellSize is the edge length of one module in target units.
	CellSize float64
}

// Compressor converts a grid into a path sized to the target edge length.
type Compressor interface {
	Compress(grid matrix.Grid, size float64) Result
}

// Rows is the default row-run Compressor.
type Rows struct{}

var _ Compressor = Rows{}

// Compress implements Compressor.
func (Rows) Compress(grid matrix.Grid, size float64) Result {
	return Compress(grid, size)
}

// Compress returns the row-run path of grid scaled so that the whole grid
// spans size units. An empty grid yields an empty path and a zero cell size.
func Compress(grid matrix.Grid, size float64) Result {
	n := grid.Size()
	if n == 0 {
		return Result{}
	}

	cell := size / float64(n)
	var sb strings.Builder
	for i, row := range grid {
		y := cell/2 + cell*float64(i)
		drawing := false
		for j, set := range row {
			switch {
			case set && !drawing:
				writePoint(&sb, 'M', cell*float64(j), y)
				drawing = true
				if j == n-1 {
					writePoint(&sb, 'L', cell*float64(j+1), y)
				}
			case set && j == n-1:
				writePoint(&sb, 'L', cell*float64(j+1), y)
			case !set && drawing:
				writePoint(&sb, 'L', cell*float64(j), y)
				drawing = false
			}
		}
	}

	return Result{
		Path:     strings.TrimSuffix(sb.String(), " "),
		CellSize: cell,
	}
}

func writePoint(sb *strings.Builder, cmd byte, x, y float64) {
	sb.WriteByte(cmd)
	sb.WriteString(formatFloat(x))
	sb.WriteByte(' ')
	sb.WriteString(formatFloat(y))
	sb.WriteByte(' ')
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package pathcomp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mictilt/qrsvg/matrix"
)

func grid(rows ...string) matrix.Grid {
	g := matrix.NewGrid(len(rows))
	for y, r := range rows {
		for x, c := range r {
			g[y][x] = c == '#'
		}
	}
	return g
}

func TestCompress(t *testing.T) {
	tests := []struct {
		name string
		grid matrix.Grid
		size float64
		path string
		cell float64
	}{
		{
			name: "runs and row ends",
			grid: grid(
				"##.",
				"..#",
				"#.#",
			),
			size: 30,
			path: "M0 5 L20 5 M20 15 L30 15 M0 25 L10 25 M20 25 L30 25",
			cell: 10,
		},
		{
			name: "full row",
			grid: grid(
				"##",
				"..",
			),
			size: 10,
			path: "M0 2.5 L10 2.5",
			cell: 5,
		},
		{
			name: "blank",
			grid: grid(
				"..",
				"..",
			),
			size: 10,
			path: "",
			cell: 5,
		},
		{
			name: "empty grid",
			grid: nil,
			size: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compress(tt.grid, tt.size)
			assert.Equal(t, tt.path, got.Path)
			assert.InDelta(t, tt.cell, got.CellSize, 1e-9)
		})
	}
}

func TestRows_Compress(t *testing.T) {
	g := grid("#.", ".#")
	assert.Equal(t, Compress(g, 8), Rows{}.Compress(g, 8))
}

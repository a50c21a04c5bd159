package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		d    string
		want []subpath
	}{
		{
			name: "row runs",
			d:    "M0 5 L20 5 M20 15 L30 15",
			want: []subpath{
				{points: []point{{0, 5}, {20, 5}}},
				{points: []point{{20, 15}, {30, 15}}},
			},
		},
		{
			name: "compact syntax",
			d:    "M0,2.5L10,2.5",
			want: []subpath{{points: []point{{0, 2.5}, {10, 2.5}}}},
		},
		{
			name: "implicit lineto",
			d:    "M0 0 1 0 1 1",
			want: []subpath{{points: []point{{0, 0}, {1, 0}, {1, 1}}}},
		},
		{
			name: "relative and closed",
			d:    "m1 1 l2 0 v2 h-2 z",
			want: []subpath{{points: []point{{1, 1}, {3, 1}, {3, 3}, {1, 3}}, closed: true}},
		},
		{
			name: "negative without separator",
			d:    "M-1-2L3-4",
			want: []subpath{{points: []point{{-1, -2}, {3, -4}}}},
		},
		{
			name: "empty",
			d:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePath(tt.d)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	for _, d := range []string{"C1 2 3 4 5 6", "5 5", "M1", "M1 x", "H3"} {
		_, err := parsePath(d)
		assert.Error(t, err, d)
	}
}

func TestBounds(t *testing.T) {
	paths, err := parsePath("M0 5 L20 5 M20 15 L30 15")
	require.NoError(t, err)

	minX, minY, maxX, maxY, ok := bounds(paths)
	assert.True(t, ok)
	assert.Equal(t, [4]float64{0, 5, 30, 15}, [4]float64{minX, minY, maxX, maxY})

	_, _, _, _, ok = bounds(nil)
	assert.False(t, ok)
}

package matrix

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want Level
	}{
		{"L", LevelL},
		{"m", LevelM},
		{" q ", LevelQ},
		{"H", LevelH},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got)
		assert.Equal(t, strings.ToUpper(strings.TrimSpace(c.in)), got.String())
	}

	_, err := ParseLevel("X")
	assert.True(t, errors.Is(err, ErrUnknownLevel))
}

func TestLevel_TextRoundTrip(t *testing.T) {
	var l Level
	require.NoError(t, l.UnmarshalText([]byte("h")))
	assert.Equal(t, LevelH, l)

	b, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "H", string(b))

	_, err = Level(9).MarshalText()
	assert.Error(t, err)
}

func TestGrid_At(t *testing.T) {
	g := NewGrid(3)
	g[1][2] = true

	assert.Equal(t, 3, g.Size())
	assert.True(t, g.At(2, 1))
	assert.False(t, g.At(1, 2))
	assert.False(t, g.At(-1, 0))
	assert.False(t, g.At(0, 3))
}

func testEncoder(t *testing.T, enc Encoder) {
	g, err := enc.Encode("https://github.com/Mictilt/qrsvg", LevelM)
	require.NoError(t, err)
	require.NotZero(t, g.Size())

	// version n has 17+4n modules per side
	assert.GreaterOrEqual(t, g.Size(), 21)
	assert.Zero(t, (g.Size()-17)%4)
	for _, row := range g {
		assert.Len(t, row, g.Size())
	}
	// the top left finder pattern starts with a dark 7 module run
	for x := 0; x < 7; x++ {
		assert.True(t, g.At(x, 0), "finder module %d", x)
	}
	assert.False(t, g.At(7, 0), "separator")

	g, err = enc.Encode("A", LevelL)
	require.NoError(t, err)
	assert.Equal(t, 21, g.Size(), "smallest version")

	_, err = enc.Encode("", LevelM)
	assert.True(t, errors.Is(err, ErrEmptyPayload))

	_, err = enc.Encode(strings.Repeat("x", 4000), LevelH)
	assert.Error(t, err, "payload over capacity")
}

func TestQRCode_Encode(t *testing.T) {
	testEncoder(t, QRCode{})
}

func TestCompact_Encode(t *testing.T) {
	testEncoder(t, Compact{})
}

func TestEncoderFunc(t *testing.T) {
	calls := 0
	enc := EncoderFunc(func(payload string, level Level) (Grid, error) {
		calls++
		return NewGrid(21), nil
	})

	g, err := enc.Encode("a", LevelL)
	require.NoError(t, err)
	assert.Equal(t, 21, g.Size())
	assert.Equal(t, 1, calls)
}

package matrix

import (
	"github.com/pkg/errors"
	skip2 "github.com/skip2/go-qrcode"
)

// Compact encodes with github.com/skip2/go-qrcode. Levels map L, M, Q, H to
// Low, Medium, High, Highest.
type Compact struct{}

var _ Encoder = Compact{}

// Encode implements Encoder.
func (Compact) Encode(payload string, level Level) (Grid, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}

	var rl skip2.RecoveryLevel
	switch level {
	case LevelL:
		rl = skip2.Low
	case LevelM:
		rl = skip2.Medium
	case LevelQ:
		rl = skip2.High
	case LevelH:
		rl = skip2.Highest
	default:
		return nil, errors.Wrapf(ErrUnknownLevel, "level %d", level)
	}

	q, err := skip2.New(payload, rl)
	if err != nil {
		return nil, errors.Wrap(err, "skip2.New")
	}
	// the quiet zone is drawn by the renderer
	q.DisableBorder = true

	bitmap := q.Bitmap()
	n := len(bitmap)
	if n == 0 {
		return nil, errors.New("encoder produced an empty matrix")
	}
	g := NewGrid(n)
	for y, row := range bitmap {
		if len(row) != n {
			return nil, errors.Errorf("matrix row %d has %d modules, want %d", y, len(row), n)
		}
		copy(g[y], row)
	}
	return g, nil
}

package matrix

import (
	"github.com/pkg/errors"
	"github.com/yeqown/go-qrcode/v2"
)

// QRCode encodes with github.com/yeqown/go-qrcode/v2. Mode selection is left
// to the library so numeric and alphanumeric payloads get the smallest
// version.
type QRCode struct{}

var _ Encoder = QRCode{}

// Encode implements Encoder.
func (QRCode) Encode(payload string, level Level) (Grid, error) {
	if payload == "" {
		return nil, ErrEmptyPayload
	}
	if !level.Valid() {
		return nil, errors.Wrapf(ErrUnknownLevel, "level %d", level)
	}

	qrc, err := qrcode.NewWith(payload, qrcodeLevel(level))
	if err != nil {
		return nil, errors.Wrap(err, "qrcode.NewWith")
	}

	w := &gridWriter{}
	if err = qrc.Save(w); err != nil {
		return nil, errors.Wrap(err, "capture matrix")
	}
	if w.grid.Size() == 0 {
		return nil, errors.New("encoder produced an empty matrix")
	}
	return w.grid, nil
}

func qrcodeLevel(l Level) qrcode.EncodeOption {
	switch l {
	case LevelL:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionLow)
	case LevelQ:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionQuart)
	case LevelH:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionHighest)
	default:
		return qrcode.WithErrorCorrectionLevel(qrcode.ErrorCorrectionMedium)
	}
}

// gridWriter implements qrcode.Writer, it keeps the matrix instead of
// drawing it.
type gridWriter struct {
	grid Grid
}

func (w *gridWriter) Write(mat qrcode.Matrix) error {
	n := mat.Width()
	if mat.Height() != n {
		return errors.Errorf("matrix is not square: %dx%d", mat.Width(), mat.Height())
	}

	w.grid = NewGrid(n)
	mat.Iterate(qrcode.IterDirection_ROW, func(x, y int, v qrcode.QRValue) {
		w.grid[y][x] = v.IsSet()
	})
	return nil
}

func (w *gridWriter) Close() error {
	return nil
}

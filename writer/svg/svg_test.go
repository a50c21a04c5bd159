package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mictilt/qrsvg/scene"
)

func testScene() *scene.Scene {
	return &scene.Scene{
		ViewBox: [4]float64{-10, -10, 120, 120},
		Width:   100,
		Height:  200,
		Defs: []scene.Node{
			&scene.LinearGradient{
				ID: "grad",
				X1: scene.Percent(0), Y1: scene.Percent(0), X2: scene.Percent(100), Y2: scene.Percent(100),
				Stops: []scene.Stop{
					{Offset: 0, Color: "rgb(255,0,0)", Opacity: 1},
					{Offset: 1, Color: "rgb(0,255,255)", Opacity: 1},
				},
			},
		},
		Children: []scene.Node{
			&scene.Rect{X: -10, Y: -10, Width: 120, Height: 220, Fill: scene.Solid("white")},
			&scene.Path{D: "M0 2 L4 2", Stroke: scene.URL("grad"), StrokeWidth: 4},
			&scene.Group{X: 38, Y: 38, Children: []scene.Node{
				&scene.Defs{Children: []scene.Node{
					&scene.ClipPath{ID: "clip-logo", Children: []scene.Node{
						&scene.Rect{Width: 20, Height: 20, RX: 4, RY: 4},
					}},
				}},
				&scene.Image{
					Width: 20, Height: 20,
					Href:                "https://example.com/a.png?x=1&y=2",
					PreserveAspectRatio: "xMidYMid slice",
					ClipPath:            "clip-logo",
				},
			}},
			&scene.Group{X: 50, Y: 125, Children: []scene.Node{
				&scene.Text{Content: "Tom & <Jerry>", Style: scene.Style{"text-anchor": "middle", "fill": "#101043"}},
			}},
		},
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testScene()))
	out := buf.String()

	assert.Contains(t, out, `width="100.000" height="200.000"`)
	assert.Contains(t, out, `viewBox="-10.000 -10.000 120.000 120.000"`)
	assert.Contains(t, out, `<linearGradient id="grad" x1="0%" y1="0%" x2="100%" y2="100%">`)
	assert.Contains(t, out, `<stop offset="0%" stop-color="rgb(255,0,0)" stop-opacity="1.00"/>`)
	assert.Contains(t, out, `<stop offset="100%" stop-color="rgb(0,255,255)" stop-opacity="1.00"/>`)
	assert.Contains(t, out, `<path d="M0 2 L4 2" stroke="url(#grad)" stroke-width="4.000"`)
	assert.Contains(t, out, `transform="translate(38.000,38.000)"`)
	assert.Contains(t, out, `<clipPath id="clip-logo"`)
	assert.Contains(t, out, `rx="4.000" ry="4.000"`)
	assert.Contains(t, out, `preserveAspectRatio="xMidYMid slice"`)
	assert.Contains(t, out, `xlink:href="https://example.com/a.png?x=1&amp;y=2"`)
	assert.Contains(t, out, `clip-path="url(#clip-logo)"`)
	assert.Contains(t, out, `fill="#101043" text-anchor="middle"`)
	assert.Contains(t, out, `Tom &amp; &lt;Jerry&gt;</text>`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))

	// well formed
	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
}

func TestEncode_Order(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testScene()))
	out := buf.String()

	defs := strings.Index(out, "<defs>")
	bg := strings.Index(out, `fill="white"`)
	path := strings.Index(out, "<path")
	img := strings.Index(out, "<image")
	text := strings.Index(out, "<text")
	assert.True(t, defs < bg && bg < path && path < img && img < text, "layers out of order:\n%s", out)
}

func TestEncode_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, scene.Empty()))
	assert.Zero(t, buf.Len())

	require.NoError(t, Encode(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestEncode_RawGradient(t *testing.T) {
	s := &scene.Scene{
		ViewBox: [4]float64{0, 0, 10, 10},
		Width:   10, Height: 10,
		Defs: []scene.Node{&scene.LinearGradient{
			ID: "g",
			X1: scene.Number(0), Y1: scene.Percent(12.5), X2: scene.Number(1), Y2: scene.Percent(100),
			Stops: []scene.Stop{{Offset: 0, Color: "red", Opacity: 1}, {Offset: 1, Color: "blue", Opacity: 0.5}},
		}},
		Children: []scene.Node{&scene.Rect{Width: 10, Height: 10, Fill: scene.URL("g")}},
	}

	var buf bytes.Buffer
	require.NoError(t, Encoder{Decimals: 2}.Encode(&buf, s))
	out := buf.String()
	assert.Contains(t, out, `<linearGradient id="g" x1="0" y1="12.5%" x2="1" y2="100%">`)
	assert.Contains(t, out, `<stop offset="1.00" stop-color="blue" stop-opacity="0.50"/>`)
	assert.Contains(t, out, `fill="url(#g)"`)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncode_WriteError(t *testing.T) {
	err := Encode(failingWriter{}, testScene())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

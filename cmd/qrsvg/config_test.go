package main

import (
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/scene"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qrsvg.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func quiet(t *testing.T) {
	t.Helper()
	prev := stderr
	stderr = io.Discard
	t.Cleanup(func() { stderr = prev })
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
payload = "hello"
size = 256
level = "H"
encoder = "compact"

[caption]
text = "scan me"
style = { fill = "navy" }

[logo]
url = "https://example.com/logo.png"
radius = 4

[gradient]
enabled = true
to = "navy"
direction = ["0%", "0%", "100%", "0%"]

[output]
path = "out.png"
scale = 2
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "hello", cfg.Payload)
	assert.Equal(t, 256.0, cfg.Size)
	assert.Equal(t, matrix.LevelH, cfg.Level)
	assert.Equal(t, "black", cfg.Color, "unset keys keep their defaults")
	assert.Equal(t, "scan me", cfg.Caption.Text)
	assert.Equal(t, "navy", cfg.Caption.Style["fill"])
	assert.Equal(t, 4.0, cfg.Logo.Radius)
	assert.True(t, cfg.Gradient.Enabled)
	assert.Equal(t, "rgb(255,0,0)", cfg.Gradient.From)
	assert.Equal(t, "navy", cfg.Gradient.To)
	require.Len(t, cfg.Gradient.Direction, 4)
	assert.Equal(t, scene.Percent(0), cfg.Gradient.Direction[3])

	enc, err := cfg.encoder()
	require.NoError(t, err)
	assert.Equal(t, matrix.Compact{}, enc)

	format, err := cfg.format()
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	logo, err := cfg.logo()
	require.NoError(t, err)
	href, _, err := logo.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/logo.png", href)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `colour = "red"`))
	assert.ErrorContains(t, err, "unknown keys")

	_, err = loadConfig(writeConfig(t, `level = "X"`))
	assert.ErrorContains(t, err, "unknown error correction level")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig().Size, cfg.Size)
}

func TestConfig_Format(t *testing.T) {
	for _, tc := range []struct {
		path, format, want string
	}{
		{"-", "", "svg"},
		{"code.svg", "", "svg"},
		{"code.JPG", "", "jpg"},
		{"code.svg", "png", "png"},
	} {
		cfg := defaultConfig()
		cfg.Output.Path, cfg.Output.Format = tc.path, tc.format
		got, err := cfg.format()
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.want, got, tc.path)
	}

	cfg := defaultConfig()
	cfg.Output.Path = "code.gif"
	_, err := cfg.format()
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	dir, err := parseDirection("0% 10, 100% 0.5")
	require.NoError(t, err)
	assert.Equal(t, []scene.Length{scene.Percent(0), scene.Number(10), scene.Percent(100), scene.Number(0.5)}, dir)

	_, err = parseDirection("0% 0%")
	assert.Error(t, err)
	_, err = parseDirection("0% 0% a b")
	assert.Error(t, err)
}

func TestApp_SVG(t *testing.T) {
	quiet(t)
	out := filepath.Join(t.TempDir(), "code.svg")
	cfg := writeConfig(t, `
size = 120
[caption]
text = "from config"
`)

	err := newApp().Run([]string{"qrsvg",
		"--config", cfg,
		"--caption", "scan me",
		"--gradient",
		"--unique-ids",
		"-o", out,
		"https://example.com",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, "scan me", "flags override the config file")
	assert.NotContains(t, svg, "from config")
	assert.Contains(t, svg, "<linearGradient")
	assert.Contains(t, svg, `id="qr-`)
}

func TestApp_PNG(t *testing.T) {
	quiet(t)
	out := filepath.Join(t.TempDir(), "code.png")

	err := newApp().Run([]string{"qrsvg", "--size", "50", "--scale", "2", "-o", out, "hello"})
	require.NoError(t, err)

	fd, err := os.Open(out)
	require.NoError(t, err)
	defer fd.Close()
	img, err := png.Decode(fd)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestApp_Errors(t *testing.T) {
	quiet(t)
	dir := t.TempDir()

	err := newApp().Run([]string{"qrsvg", "--level", "Z", "-o", filepath.Join(dir, "a.svg"), "x"})
	assert.ErrorIs(t, err, matrix.ErrUnknownLevel)

	err = newApp().Run([]string{"qrsvg", "--encoder", "zxing", "-o", filepath.Join(dir, "b.svg"), "x"})
	assert.Error(t, err)

	err = newApp().Run([]string{"qrsvg", "--size", "-1", "-o", filepath.Join(dir, "c.svg"), "x"})
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "c.svg"), "failed output is removed")
}

package main

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrsvg"
	"github.com/Mictilt/qrsvg/imgkit"
	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/scene"
	"github.com/Mictilt/qrsvg/writer/raster"
)

// Config mirrors RenderOptions plus the output settings. It is read from an
// optional TOML file; command line flags override it.
type Config struct {
	Payload    string       `toml:"payload"`
	Size       float64      `toml:"size"`
	Color      string       `toml:"color"`
	Background string       `toml:"background"`
	QuietZone  float64      `toml:"quiet_zone"`
	Level      matrix.Level `toml:"level"`
	Encoder    string       `toml:"encoder"`

	Caption Caption `toml:"caption"`
	Logo    Logo    `toml:"logo"`

	Gradient Gradient `toml:"gradient"`

	Output Output `toml:"output"`
}

// Caption is the [caption] table.
type Caption struct {
	Text      string            `toml:"text"`
	MarginTop float64           `toml:"margin_top"`
	Height    float64           `toml:"height"`
	Style     map[string]string `toml:"style"`
}

// Logo is the [logo] table.
type Logo struct {
	File       string  `toml:"file"`
	URL        string  `toml:"url"`
	Size       float64 `toml:"size"`
	Margin     float64 `toml:"margin"`
	Radius     float64 `toml:"radius"`
	Background string  `toml:"background"`
	// Threshold, when non-zero, reduces a file logo to black and white.
	Threshold uint8 `toml:"threshold"`
}

// Gradient is the [gradient] table.
type Gradient struct {
	Enabled   bool           `toml:"enabled"`
	From      string         `toml:"from"`
	To        string         `toml:"to"`
	Direction []scene.Length `toml:"direction"`
}

// Output is the [output] table.
type Output struct {
	Path      string  `toml:"path"`
	Format    string  `toml:"format"`
	Scale     float64 `toml:"scale"`
	Font      string  `toml:"font"`
	UniqueIDs bool    `toml:"unique_ids"`
}

// defaultConfig carries the library defaults so a partial file or no file
// at all still renders.
func defaultConfig() Config {
	o := qrsvg.DefaultOptions()
	return Config{
		Payload:    o.Payload,
		Size:       o.Size,
		Color:      o.Color,
		Background: o.BackgroundColor,
		QuietZone:  o.QuietZone,
		Level:      o.Level,
		Encoder:    "qrcode",
		Caption: Caption{
			MarginTop: o.CaptionMarginTop,
			Height:    o.CaptionHeight,
			Style:     o.CaptionStyle,
		},
		Logo: Logo{
			Margin:     o.LogoMargin,
			Radius:     o.LogoBorderRadius,
			Background: o.LogoBackgroundColor,
		},
		Gradient: Gradient{
			From:      o.GradientColors[0],
			To:        o.GradientColors[1],
			Direction: o.GradientDirection[:],
		},
		Output: Output{
			Path:  "-",
			Scale: 1,
		},
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("config %s: unknown keys %v", path, undecoded)
	}
	return cfg, nil
}

// applyFlags overrides cfg with every flag set on the command line.
func applyFlags(c *cli.Context, cfg *Config) error {
	if c.Args().Present() {
		cfg.Payload = strings.Join(c.Args().Slice(), " ")
	}

	setString := func(name string, dst *string) {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	setFloat := func(name string, dst *float64) {
		if c.IsSet(name) {
			*dst = c.Float64(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if c.IsSet(name) {
			*dst = c.Bool(name)
		}
	}

	setFloat("size", &cfg.Size)
	setString("color", &cfg.Color)
	setString("background", &cfg.Background)
	setFloat("quiet-zone", &cfg.QuietZone)
	setString("encoder", &cfg.Encoder)
	if c.IsSet("level") {
		l, err := matrix.ParseLevel(c.String("level"))
		if err != nil {
			return err
		}
		cfg.Level = l
	}

	setString("caption", &cfg.Caption.Text)
	setFloat("caption-margin", &cfg.Caption.MarginTop)
	setFloat("caption-height", &cfg.Caption.Height)
	if c.IsSet("caption-size") {
		cfg.Caption.Style = scene.Merge(cfg.Caption.Style, scene.Style{
			"font-size": scene.FormatFloat(c.Float64("caption-size")),
		})
	}

	setString("logo", &cfg.Logo.File)
	setString("logo-url", &cfg.Logo.URL)
	setFloat("logo-size", &cfg.Logo.Size)
	setFloat("logo-margin", &cfg.Logo.Margin)
	setFloat("logo-radius", &cfg.Logo.Radius)
	setString("logo-background", &cfg.Logo.Background)
	if c.IsSet("logo-threshold") {
		cfg.Logo.Threshold = uint8(c.Uint("logo-threshold"))
	}

	setBool("gradient", &cfg.Gradient.Enabled)
	setString("gradient-from", &cfg.Gradient.From)
	setString("gradient-to", &cfg.Gradient.To)
	if c.IsSet("gradient-direction") {
		dir, err := parseDirection(c.String("gradient-direction"))
		if err != nil {
			return err
		}
		cfg.Gradient.Direction = dir
	}

	setString("output", &cfg.Output.Path)
	setString("format", &cfg.Output.Format)
	setFloat("scale", &cfg.Output.Scale)
	setString("font", &cfg.Output.Font)
	setBool("unique-ids", &cfg.Output.UniqueIDs)
	return nil
}

// parseDirection reads "x1 y1 x2 y2", for example "0% 0% 100% 100%".
func parseDirection(s string) ([]scene.Length, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(fields) != 4 {
		return nil, errors.Errorf("gradient direction %q: want 4 values", s)
	}
	out := make([]scene.Length, 0, 4)
	for _, f := range fields {
		l, err := scene.ParseLength(f)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// format resolves the output format from the explicit setting or the
// output file extension; SVG is the default.
func (cfg Config) format() (string, error) {
	f := strings.ToLower(cfg.Output.Format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(cfg.Output.Path)), ".")
	}
	switch f {
	case "", "svg":
		return "svg", nil
	}
	if _, err := raster.ParseFormat(f); err != nil {
		return "", err
	}
	return f, nil
}

// encoder returns the matrix encoder named in the config.
func (cfg Config) encoder() (matrix.Encoder, error) {
	switch strings.ToLower(cfg.Encoder) {
	case "", "qrcode":
		return matrix.QRCode{}, nil
	case "compact":
		return matrix.Compact{}, nil
	}
	return nil, errors.Errorf("unknown encoder %q", cfg.Encoder)
}

// options converts the config into render options.
func (cfg Config) options() ([]qrsvg.Option, error) {
	if len(cfg.Gradient.Direction) != 4 {
		return nil, errors.Errorf("gradient direction: want 4 values, got %d", len(cfg.Gradient.Direction))
	}
	d := cfg.Gradient.Direction

	opts := []qrsvg.Option{
		qrsvg.WithSize(cfg.Size),
		qrsvg.WithColor(cfg.Color),
		qrsvg.WithBackgroundColor(cfg.Background),
		qrsvg.WithQuietZone(cfg.QuietZone),
		qrsvg.WithLevel(cfg.Level),
		qrsvg.WithCaption(cfg.Caption.Text),
		qrsvg.WithCaptionMarginTop(cfg.Caption.MarginTop),
		qrsvg.WithCaptionHeight(cfg.Caption.Height),
		qrsvg.WithCaptionStyle(cfg.Caption.Style),
		qrsvg.WithLogoSize(cfg.Logo.Size),
		qrsvg.WithLogoMargin(cfg.Logo.Margin),
		qrsvg.WithLogoBorderRadius(cfg.Logo.Radius),
		qrsvg.WithLogoBackgroundColor(cfg.Logo.Background),
		qrsvg.WithGradientDirection(d[0], d[1], d[2], d[3]),
	}
	if cfg.Gradient.Enabled {
		opts = append(opts, qrsvg.WithGradient(cfg.Gradient.From, cfg.Gradient.To))
	}

	logo, err := cfg.logo()
	if err != nil {
		return nil, err
	}
	if logo != nil {
		opts = append(opts, qrsvg.WithLogo(logo))
	}
	return opts, nil
}

// logo picks the configured logo source. A file wins over a URL. Files are
// read eagerly when a threshold is set so the bitmap can be reduced first.
func (cfg Config) logo() (qrsvg.Logo, error) {
	switch {
	case cfg.Logo.File != "" && cfg.Logo.Threshold > 0:
		img, err := imgkit.Read(cfg.Logo.File)
		if err != nil {
			return nil, errors.Wrap(err, "load logo")
		}
		return qrsvg.ImageLogo(imgkit.Binaryzation(img, cfg.Logo.Threshold)), nil
	case cfg.Logo.File != "":
		return qrsvg.FileLogo(cfg.Logo.File), nil
	case cfg.Logo.URL != "":
		return qrsvg.URLLogo(cfg.Logo.URL), nil
	}
	return nil, nil
}

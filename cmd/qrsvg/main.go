// Command qrsvg renders a payload as a QR code in SVG, PNG or JPEG.
//
// Settings come from an optional TOML file given with --config and are
// overridden by flags:
//
//	qrsvg --size 256 --caption "scan me" --logo logo.png -o code.svg https://example.com
//	qrsvg --config code.toml --format png --scale 4 -o code.png
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Mictilt/qrsvg"
	"github.com/Mictilt/qrsvg/scene"
	"github.com/Mictilt/qrsvg/writer/raster"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "qrsvg",
		Usage:     "render a QR code as SVG, PNG or JPEG",
		ArgsUsage: "[payload]",
		Flags:     flags(),
		Action:    run,
	}
}

func flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "read settings from a TOML `FILE`"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write to `FILE`, - for stdout"},
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "svg, png or jpeg; guessed from the output name"},
		&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log debug messages"},

		&cli.Float64Flag{Name: "size", Aliases: []string{"s"}, Usage: "symbol edge length"},
		&cli.StringFlag{Name: "color", Usage: "module colour"},
		&cli.StringFlag{Name: "background", Usage: "background colour"},
		&cli.Float64Flag{Name: "quiet-zone", Usage: "margin around the symbol"},
		&cli.StringFlag{Name: "level", Aliases: []string{"l"}, Usage: "error correction level: L, M, Q or H"},
		&cli.StringFlag{Name: "encoder", Usage: "matrix encoder: qrcode or compact"},

		&cli.StringFlag{Name: "caption", Usage: "text drawn below the symbol"},
		&cli.Float64Flag{Name: "caption-size", Usage: "caption font size"},
		&cli.Float64Flag{Name: "caption-margin", Usage: "gap between symbol and caption baseline"},
		&cli.Float64Flag{Name: "caption-height", Usage: "height of the caption band"},

		&cli.StringFlag{Name: "logo", Usage: "embed the PNG or JPEG `FILE` at the centre"},
		&cli.StringFlag{Name: "logo-url", Usage: "reference an external logo `URL`"},
		&cli.Float64Flag{Name: "logo-size", Usage: "logo edge length, a fifth of the size when unset"},
		&cli.Float64Flag{Name: "logo-margin", Usage: "padding between logo and its background"},
		&cli.Float64Flag{Name: "logo-radius", Usage: "corner radius of the logo"},
		&cli.StringFlag{Name: "logo-background", Usage: "colour behind the logo"},
		&cli.UintFlag{Name: "logo-threshold", Usage: "reduce a logo file to black and white at this grey level"},

		&cli.BoolFlag{Name: "gradient", Usage: "paint modules with a linear gradient"},
		&cli.StringFlag{Name: "gradient-from", Usage: "gradient start colour"},
		&cli.StringFlag{Name: "gradient-to", Usage: "gradient end colour"},
		&cli.StringFlag{Name: "gradient-direction", Usage: "gradient vector as \"x1 y1 x2 y2\""},

		&cli.Float64Flag{Name: "scale", Usage: "pixels per unit for png and jpeg"},
		&cli.StringFlag{Name: "font", Usage: "TrueType `FILE` for raster captions"},
		&cli.BoolFlag{Name: "unique-ids", Usage: "prefix element ids so several codes can share a page"},
	}
}

func run(c *cli.Context) error {
	level := log.InfoLevel
	if c.Bool("verbose") {
		level = log.DebugLevel
	}
	logger := newLogger(stderr, level)

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(c, &cfg); err != nil {
		return err
	}

	enc, err := cfg.encoder()
	if err != nil {
		return err
	}
	format, err := cfg.format()
	if err != nil {
		return err
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	ropts := []qrsvg.RendererOption{qrsvg.WithEncoder(enc), qrsvg.WithLogger(logger)}
	if cfg.Output.UniqueIDs {
		ropts = append(ropts, qrsvg.WithUniqueIDs())
	}
	r := qrsvg.New(ropts...)
	o := qrsvg.NewOptions(cfg.Payload, opts...)

	w, closeOutput, err := openOutput(cfg.Output.Path)
	if err != nil {
		return err
	}
	if err := write(w, r, o, format, cfg, logger); err != nil {
		closeOutput()
		if cfg.Output.Path != "" && cfg.Output.Path != "-" {
			os.Remove(cfg.Output.Path)
		}
		return err
	}
	if err := closeOutput(); err != nil {
		return errors.Wrapf(err, "close %s", cfg.Output.Path)
	}

	if cfg.Output.Path != "" && cfg.Output.Path != "-" {
		sym, err := r.Encode(o.Payload, o.Size, o.Level)
		if err != nil {
			return err
		}
		printSuccess("Rendered %s", format)
		printKeyValue("level", o.Level.String())
		printKeyValue("modules", fmt.Sprintf("%d", sym.Modules))
		printKeyValue("size", scene.FormatFloat(o.Size))
		printFile(cfg.Output.Path)
	}
	return nil
}

func write(w io.Writer, r *qrsvg.Renderer, o qrsvg.RenderOptions, format string, cfg Config, logger *log.Logger) error {
	if format == "svg" {
		return r.WriteSVG(w, o)
	}

	f, err := raster.ParseFormat(format)
	if err != nil {
		return err
	}
	s, err := r.Render(o)
	if err != nil {
		return err
	}
	img, err := raster.Render(s, raster.Options{
		Scale:    cfg.Output.Scale,
		FontFile: cfg.Output.Font,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return errors.Wrap(f.Encoder().Encode(w, img), "encode image")
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	fd, err := os.Create(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create %s", path)
	}
	return fd, fd.Close, nil
}

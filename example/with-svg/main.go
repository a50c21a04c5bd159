package main

import (
	"os"

	"github.com/Mictilt/qrsvg"
	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/scene"
)

func save(r *qrsvg.Renderer, path string, o qrsvg.RenderOptions) {
	fd, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer fd.Close()

	if err = r.WriteSVG(fd, o); err != nil {
		panic(err)
	}
}

func main() {
	r := qrsvg.New()
	base := qrsvg.NewOptions("https://github.com/Mictilt/qrsvg",
		qrsvg.WithSize(256),
		qrsvg.WithLevel(matrix.LevelQ),
	)

	save(r, "./qrcode.svg", base)

	// custom colours
	save(r, "./qrcode_colored.svg", base.With(
		qrsvg.WithColor("#FF0000"),
		qrsvg.WithBackgroundColor("#FFFFFF"),
	))

	// quiet zone
	save(r, "./qrcode_quiet.svg", base.With(qrsvg.WithQuietZone(16)))

	// diagonal gradient
	save(r, "./qrcode_gradient.svg", base.With(
		qrsvg.WithGradient("rgb(255,0,0)", "rgb(0,0,255)"),
		qrsvg.WithGradientDirection(scene.Percent(0), scene.Percent(0), scene.Percent(100), scene.Percent(100)),
	))

	// caption below the symbol
	save(r, "./qrcode_caption.svg", base.With(
		qrsvg.WithCaption("scan me"),
		qrsvg.WithCaptionStyle(scene.Style{"font-size": "24", "fill": "#333"}),
	))

	println("SVG files created successfully!")
}

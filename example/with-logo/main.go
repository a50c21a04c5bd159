package main

import (
	"image"
	"image/color"
	"os"

	"github.com/Mictilt/qrsvg"
	"github.com/Mictilt/qrsvg/matrix"
	"github.com/Mictilt/qrsvg/writer/raster"
)

// logo draws a two colour disc so the example needs no image files.
func logo() image.Image {
	const n = 64
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			dx, dy := x-n/2, y-n/2
			switch d := dx*dx + dy*dy; {
			case d < 12*12:
				img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			case d < 30*30:
				img.Set(x, y, color.NRGBA{R: 16, G: 16, B: 67, A: 255})
			}
		}
	}
	return img
}

func main() {
	r := qrsvg.New(qrsvg.WithUniqueIDs())
	o := qrsvg.NewOptions("https://github.com/Mictilt/qrsvg",
		qrsvg.WithSize(300),
		qrsvg.WithLevel(matrix.LevelH),
		qrsvg.WithLogoImage(logo()),
		qrsvg.WithLogoSize(80),
		qrsvg.WithLogoMargin(6),
		qrsvg.WithLogoBorderRadius(12),
		qrsvg.WithLogoBackgroundColor("white"),
		qrsvg.WithQuietZone(20),
	)

	fd, err := os.Create("./qrcode_with_logo.svg")
	if err != nil {
		panic(err)
	}
	defer fd.Close()
	if err = r.WriteSVG(fd, o); err != nil {
		panic(err)
	}

	// the same scene rasterised
	s, err := r.Render(o)
	if err != nil {
		panic(err)
	}
	img, err := raster.Render(s, raster.Options{Scale: 2})
	if err != nil {
		panic(err)
	}
	pngFile, err := os.Create("./qrcode_with_logo.png")
	if err != nil {
		panic(err)
	}
	defer pngFile.Close()
	if err = raster.FormatPNG.Encoder().Encode(pngFile, img); err != nil {
		panic(err)
	}

	println("logo examples created successfully!")
}

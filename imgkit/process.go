// Package imgkit holds the bitmap helpers used for logos: decoding,
// cover scaling, contrast reduction and data URL embedding.
package imgkit

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ErrNotDataURL is returned by DecodeDataURL for hrefs that do not embed an
// image.
var ErrNotDataURL = errors.New("not a base64 data url")

// Read decodes a PNG or JPEG file.
func Read(path string) (image.Image, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// Save writes img to path as PNG.
func Save(img image.Image, path string) error {
	fd, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer fd.Close()

	return errors.Wrapf(png.Encode(fd, img), "encode %s", path)
}

// Binaryzation maps every pixel to black or white around threshold. Alpha
// is kept so transparent logo corners stay transparent.
func Binaryzation(src image.Image, threshold uint8) image.Image {
	bounds := src.Bounds()
	gray := Gray(src)
	dst := image.NewNRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			v := uint8(0)
			if gray.GrayAt(x, y).Y > threshold {
				v = 255
			}
			dst.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: uint8(a >> 8)})
		}
	}
	return dst
}

// Gray converts src to grayscale.
func Gray(src image.Image) *image.Gray {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.SetGray(x, y, color.GrayModel.Convert(src.At(x, y)).(color.Gray))
		}
	}
	return gray
}

// Scale resamples src into rect, ApproxBiLinear when scale is nil.
func Scale(src image.Image, rect image.Rectangle, scale draw.Scaler) image.Image {
	if scale == nil {
		scale = draw.ApproxBiLinear
	}

	dst := image.NewNRGBA(rect)
	scale.Scale(dst, rect, src, src.Bounds(), draw.Over, nil)
	return dst
}

// CoverRect returns the centred sub rectangle of bounds that has the aspect
// ratio w:h, the part kept when an image is scaled to fill a w×h box and its
// overflow cropped.
func CoverRect(bounds image.Rectangle, w, h int) image.Rectangle {
	sw, sh := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || sw == 0 || sh == 0 {
		return bounds
	}

	// compare sw/sh against w/h without division
	if sw*h > sh*w {
		cw := sh * w / h
		off := (sw - cw) / 2
		return image.Rect(bounds.Min.X+off, bounds.Min.Y, bounds.Min.X+off+cw, bounds.Max.Y)
	}
	ch := sw * h / w
	off := (sh - ch) / 2
	return image.Rect(bounds.Min.X, bounds.Min.Y+off, bounds.Max.X, bounds.Min.Y+off+ch)
}

// Cover scales src to fill a w×h image keeping its aspect ratio and
// cropping the overflow equally on both sides.
func Cover(src image.Image, w, h int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, CoverRect(src.Bounds(), w, h), draw.Over, nil)
	return dst
}

// EncodePNG returns img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(err, "png.Encode")
	}
	return buf.Bytes(), nil
}

// DataURL embeds img as a base64 PNG data URL.
func DataURL(img image.Image) (string, error) {
	b, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(b), nil
}

// DecodeDataURL decodes an image embedded in a base64 data URL.
func DecodeDataURL(href string) (image.Image, error) {
	const prefix = "data:image/"
	if !strings.HasPrefix(href, prefix) {
		return nil, ErrNotDataURL
	}
	comma := strings.IndexByte(href, ',')
	if comma < 0 || !strings.HasSuffix(href[:comma], ";base64") {
		return nil, ErrNotDataURL
	}

	raw, err := base64.StdEncoding.DecodeString(href[comma+1:])
	if err != nil {
		return nil, errors.Wrap(err, "decode base64")
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

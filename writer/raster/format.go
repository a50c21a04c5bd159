package raster

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Format of an encoded bitmap.
type Format uint8

const (
	// FormatPNG as default output file format.
	FormatPNG Format = iota
	// FormatJPEG .
	FormatJPEG
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat accepts "png", "jpeg" or "jpg".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return FormatPNG, errors.Wrapf(ErrUnknownFormat, "format %q", s)
}

// ImageEncoder is an interface which describes the rule how to encode
// image.Image into io.Writer
type ImageEncoder interface {
	// Encode specify which format to encode image into io.Writer.
	Encode(w io.Writer, img image.Image) error
}

// Encoder returns the ImageEncoder for f.
func (f Format) Encoder() ImageEncoder {
	if f == FormatJPEG {
		return jpegEncoder{}
	}
	return pngEncoder{}
}

type jpegEncoder struct{}

// Encode flattens transparency onto white, JPEG has no alpha channel.
func (j jpegEncoder) Encode(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: 95})
}

type pngEncoder struct{}

func (p pngEncoder) Encode(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return errors.Wrap(pngEncoder{}.Encode(w, img), "encode png")
}

// EncodeJPEG writes img as JPEG.
func EncodeJPEG(w io.Writer, img image.Image) error {
	return errors.Wrap(jpegEncoder{}.Encode(w, img), "encode jpeg")
}

package qrsvg

import (
	"image"

	"github.com/pkg/errors"

	"github.com/Mictilt/qrsvg/imgkit"
)

// Logo is the image drawn over the centre of the symbol.
type Logo interface {
	// Resolve returns the href of the image element and, when the logo is
	// backed by a bitmap, the bitmap itself.
	Resolve() (href string, img image.Image, err error)
}

// ImageLogo embeds img as a base64 PNG data URL.
func ImageLogo(img image.Image) Logo {
	return imageLogo{img: img}
}

// URLLogo references an external image by URL without loading it.
func URLLogo(href string) Logo {
	return urlLogo(href)
}

// FileLogo reads a PNG or JPEG file when the scene is rendered.
func FileLogo(path string) Logo {
	return fileLogo(path)
}

type imageLogo struct {
	img image.Image
}

func (l imageLogo) Resolve() (string, image.Image, error) {
	if l.img == nil {
		return "", nil, errors.New("nil logo image")
	}
	href, err := imgkit.DataURL(l.img)
	if err != nil {
		return "", nil, errors.Wrap(err, "embed logo")
	}
	return href, l.img, nil
}

type urlLogo string

func (l urlLogo) Resolve() (string, image.Image, error) {
	if l == "" {
		return "", nil, errors.New("empty logo url")
	}
	return string(l), nil, nil
}

type fileLogo string

func (l fileLogo) Resolve() (string, image.Image, error) {
	img, err := imgkit.Read(string(l))
	if err != nil {
		return "", nil, errors.Wrap(err, "load logo")
	}
	return imageLogo{img: img}.Resolve()
}

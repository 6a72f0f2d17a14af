package sprite

import (
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeRGBA decodes any registered image format into a tightly packed RGBA buffer.
func DecodeRGBA(r io.Reader, flipY bool) (*image.NRGBA, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}

	bounds := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if !flipY {
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
		return nrgba, nil
	}
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			nrgba.Set(x, bounds.Dy()-y-1, img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return nrgba, nil
}

// LoadRGBA opens filePath and decodes it with DecodeRGBA.
func LoadRGBA(filePath string, flipY bool) (*image.NRGBA, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", filePath)
	}
	defer file.Close()
	img, err := DecodeRGBA(file, flipY)
	if err != nil {
		return nil, errors.Wrapf(err, "load image %s", filePath)
	}
	return img, nil
}

package attachment

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
)

func normalizeImage(file RawFile) (Record, error) {
	imgErr := newError(file.Name, ErrImage, fmt.Sprintf(
		"Error processing image file %s. Please ensure it's a valid image format (JPG, JPEG, or PNG).",
		file.Name))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(file.Data))
	if err != nil || (format != "jpeg" && format != "png") {
		return Record{}, imgErr
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxImagePixels {
		return Record{}, imgErr
	}

	src, _, err := image.Decode(bytes.NewReader(file.Data))
	if err != nil {
		return Record{}, imgErr
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, opaque(src)); err != nil {
		return Record{}, imgErr
	}

	return Record{
		Name:    file.Name,
		Kind:    KindImage,
		Content: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// opaque copies src into an RGBA image with the alpha channel discarded.
func opaque(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-b.Min.X, y-b.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return dst
}

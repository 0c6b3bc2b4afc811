package gallery

import (
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/imageinfo"
)

// Decoder turns downloaded bytes into an image.
// It is the boundary where callers plug in real decoding or validation.
type Decoder interface {
	Decode(ref domain.ImageReference, data []byte) (*domain.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(ref domain.ImageReference, data []byte) (*domain.Image, error)

// Decode calls fn(ref, data).
func (fn DecoderFunc) Decode(ref domain.ImageReference, data []byte) (*domain.Image, error) {
	return fn(ref, data)
}

// InspectDecoder keeps the bytes as they are and fills in header metadata when the
// format is recognised. Unrecognised bytes are not an error.
var InspectDecoder Decoder = DecoderFunc(func(ref domain.ImageReference, data []byte) (*domain.Image, error) {
	img := &domain.Image{
		Reference: ref,
		Data:      data,
		Size:      len(data),
	}

	info, err := imageinfo.Inspect(data)
	if err != nil {
		img.ContentType = imageinfo.Sniff(data)
		return img, nil
	}

	img.Format = info.Format
	img.ContentType = info.ContentType
	img.Width = info.Width
	img.Height = info.Height
	return img, nil
})

// Package imageinfo inspects raw image bytes without fully decoding them.
package imageinfo

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp"
)

// Info describes an image header.
type Info struct {
	Format      string
	ContentType string
	Width       int
	Height      int
}

// Inspect reads the image header from data.
// Parameters:
//   - data: raw image bytes (gif, jpeg, png or webp).
// Returns:
//   - *Info: detected format and dimensions.
//   - error: non-nil if the header cannot be read.
func Inspect(data []byte) (*Info, error) {
	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	return &Info{
		Format:      format,
		ContentType: ContentType(format),
		Width:       config.Width,
		Height:      config.Height,
	}, nil
}

// ContentType maps an image format to its MIME type.
func ContentType(format string) string {
	switch format {
	case "jpeg", "jpg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// Sniff falls back to content sniffing when the header is not a supported image.
func Sniff(data []byte) string {
	return http.DetectContentType(data)
}

// Extension returns the file extension used when storing an image of the given format.
func Extension(format string) string {
	switch format {
	case "jpeg":
		return "jpg"
	case "":
		return "bin"
	default:
		return format
	}
}

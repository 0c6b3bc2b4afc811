package imageinfo

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestInspect(t *testing.T) {
	info, err := Inspect(encodePNG(t, 3, 2))
	require.NoError(t, err)
	require.Equal(t, "png", info.Format)
	require.Equal(t, "image/png", info.ContentType)
	require.Equal(t, 3, info.Width)
	require.Equal(t, 2, info.Height)
}

func TestInspectRejectsGarbage(t *testing.T) {
	_, err := Inspect([]byte("definitely not an image"))
	require.Error(t, err)
	require.Equal(t, "text/plain; charset=utf-8", Sniff([]byte("definitely not an image")))
}

func TestExtension(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"jpeg", "jpg"},
		{"png", "png"},
		{"webp", "webp"},
		{"", "bin"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.want, Extension(tc.format), tc.format)
	}
}

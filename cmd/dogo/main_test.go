package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/source/localdir"
)

// newLocalFetcher serves a single 4x2 PNG named dog.png.
func newLocalFetcher(t *testing.T) *gallery.Fetcher {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 2))))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dog.png"), buf.Bytes(), 0o644))

	return gallery.NewFetcher(localdir.NewAdapter(dir), nil)
}

func TestRunBrowse(t *testing.T) {
	fetcher := newLocalFetcher(t)
	var out bytes.Buffer

	in := strings.NewReader("p\nn\nn\nprevious\ns\nbogus\nx\nq\nn\n")
	require.NoError(t, runBrowse(context.Background(), fetcher, in, &out))

	text := out.String()
	require.Contains(t, text, "error: "+domain.ErrOutOfRange.Error())
	require.Contains(t, text, "cursor -> 0\n")
	require.Contains(t, text, "cursor -> 1\n")
	require.Contains(t, text, "png 4x2")
	require.Contains(t, text, "cursor 0 of 2\n")
	require.Contains(t, text, "cursor -> -1\n")

	// q stops before the trailing n.
	snap := fetcher.Snapshot()
	require.Equal(t, -1, snap.Cursor)
	require.Zero(t, snap.Len())
}

func TestRunBrowseStopsAtEOF(t *testing.T) {
	fetcher := newLocalFetcher(t)
	var out bytes.Buffer

	require.NoError(t, runBrowse(context.Background(), fetcher, strings.NewReader("n\n"), &out))
	require.Equal(t, 0, fetcher.Snapshot().Cursor)
}

func TestRunBatchWritesFiles(t *testing.T) {
	fetcher := newLocalFetcher(t)
	outDir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	require.NoError(t, runBatch(context.Background(), fetcher, 3, outDir, nil, &out))

	for i := 0; i < 3; i++ {
		_, err := os.Stat(filepath.Join(outDir, fmt.Sprintf("%03d-dog.png", i)))
		require.NoError(t, err)
	}
	require.Equal(t, 3, strings.Count(out.String(), "\n"))
	require.Equal(t, -1, fetcher.Snapshot().Cursor)
}

func TestRunBatchInvalidCount(t *testing.T) {
	fetcher := newLocalFetcher(t)

	err := runBatch(context.Background(), fetcher, 0, "", nil, &bytes.Buffer{})
	require.ErrorIs(t, err, domain.ErrInvalidCount)
	require.Equal(t, 2, exitCode(err))
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 2, exitCode(fmt.Errorf("wrap: %w", domain.ErrOutOfRange)))
	require.Equal(t, 3, exitCode(fmt.Errorf("wrap: %w", domain.ErrTransport)))
	require.Equal(t, 4, exitCode(domain.ErrDecode))
	require.Equal(t, 1, exitCode(fmt.Errorf("boom")))
}

func TestFileName(t *testing.T) {
	require.Equal(t, "007-n02088094_1003.jpg", fileName(&domain.Image{
		Reference: "https://images.dog.ceo/breeds/hound-afghan/n02088094_1003.jpg",
		Index:     7,
	}))
	require.Equal(t, "001-raw.webp", fileName(&domain.Image{
		Reference: "https://img.test/raw",
		Index:     1,
		Format:    "webp",
	}))
}

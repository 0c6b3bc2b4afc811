package app

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/timmy/dogo/internal/config"
	"github.com/timmy/dogo/internal/source/dogceo"
	"github.com/timmy/dogo/internal/source/localdir"
)

func TestNewSource(t *testing.T) {
	src, err := NewSource(&config.FetcherConfig{Source: "dogceo", BaseURL: "http://localhost/api"})
	require.NoError(t, err)
	require.Equal(t, dogceo.SourceID, src.GetSourceID())

	src, err = NewSource(&config.FetcherConfig{Source: "localdir", LocalPath: t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, localdir.SourceID, src.GetSourceID())

	_, err = NewSource(&config.FetcherConfig{Source: "ftp"})
	require.Error(t, err)
}

func TestNewFetcherAppliesLimits(t *testing.T) {
	f, err := NewFetcher(&config.FetcherConfig{Source: "localdir", LocalPath: t.TempDir(), MaxBatch: 7})
	require.NoError(t, err)
	require.Equal(t, 7, f.MaxBatch())
	require.Equal(t, -1, f.Snapshot().Cursor)
}

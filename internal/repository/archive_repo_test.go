package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/timmy/dogo/internal/config"
	"github.com/timmy/dogo/internal/domain"
	"gorm.io/gorm"
)

func newTestRepo(t *testing.T) *ArchiveRepository {
	t.Helper()

	db, err := InitDB(&config.DatabaseConfig{
		Driver:      "sqlite",
		Path:        filepath.Join(t.TempDir(), "archive.db"),
		AutoMigrate: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return NewArchiveRepository(db)
}

func TestArchiveRepositoryUpsertByHash(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &domain.ArchivedImage{
		ID:         "a",
		Reference:  "https://img.test/1.jpg",
		StorageKey: "ab/abcd.jpg",
		MD5Hash:    "abcd",
		Format:     "jpeg",
	}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &domain.ArchivedImage{
		ID:         "b",
		Reference:  "https://img.test/2.jpg",
		StorageKey: "ab/abcd.jpg",
		MD5Hash:    "abcd",
		Format:     "jpeg",
	}
	require.NoError(t, repo.Upsert(ctx, second))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	got, err := repo.GetByMD5Hash(ctx, "abcd")
	require.NoError(t, err)
	require.Equal(t, "a", got.ID)
	require.Equal(t, "https://img.test/2.jpg", got.Reference)
}

func TestArchiveRepositoryGetMissing(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByMD5Hash(context.Background(), "missing")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestArchiveRepositoryListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, hash := range []string{"h0", "h1", "h2"} {
		require.NoError(t, repo.Upsert(ctx, &domain.ArchivedImage{
			ID:         hash,
			Reference:  "https://img.test/" + hash + ".jpg",
			StorageKey: hash,
			MD5Hash:    hash,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	images, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, images, 2)
	require.Equal(t, "h2", images[0].MD5Hash)
	require.Equal(t, "h1", images[1].MD5Hash)

	images, err = repo.List(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, images, 1)
	require.Equal(t, "h0", images[0].MD5Hash)
}

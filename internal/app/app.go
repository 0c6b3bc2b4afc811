// Package app wires configuration into the gallery, its source and the archive.
// Both binaries build their dependencies through it.
package app

import (
	"context"
	"fmt"

	"github.com/timmy/dogo/internal/config"
	"github.com/timmy/dogo/internal/gallery"
	"github.com/timmy/dogo/internal/logger"
	"github.com/timmy/dogo/internal/repository"
	"github.com/timmy/dogo/internal/service"
	"github.com/timmy/dogo/internal/source"
	"github.com/timmy/dogo/internal/source/dogceo"
	"github.com/timmy/dogo/internal/source/localdir"
	"github.com/timmy/dogo/internal/storage"
)

// NewSource builds the image source selected by cfg.Source.
func NewSource(cfg *config.FetcherConfig) (source.Source, error) {
	switch cfg.Source {
	case dogceo.SourceID:
		return dogceo.NewAdapter(&dogceo.Config{
			BaseURL:   cfg.BaseURL,
			Timeout:   cfg.Timeout,
			UserAgent: cfg.UserAgent,
		}), nil
	case localdir.SourceID:
		return localdir.NewAdapter(cfg.LocalPath), nil
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}
}

// NewFetcher builds a gallery fetcher over the configured source.
func NewFetcher(cfg *config.FetcherConfig) (*gallery.Fetcher, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	return gallery.NewFetcher(src, &gallery.Config{
		MaxBatch:    cfg.MaxBatch,
		Concurrency: cfg.Concurrency,
	}), nil
}

// NewArchive connects the database and object storage behind the archive service.
// The returned close func releases the database connection.
// Parameters:
//   - ctx: context for storage setup.
//   - cfg: full configuration (database and storage sections).
//   - log: logger handed to the service.
// Returns:
//   - *service.ArchiveService: ready archive service.
//   - func() error: closes the database.
//   - error: non-nil if any dependency cannot be initialized.
func NewArchive(ctx context.Context, cfg *config.Config, log *logger.Logger) (*service.ArchiveService, func() error, error) {
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB instance: %w", err)
	}

	objectStorage, err := storage.NewStorage(ctx, &storage.S3Config{
		Type:      storage.StorageType(cfg.Storage.Type),
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if err := objectStorage.EnsureBucket(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ensure storage bucket: %w", err)
	}

	return service.NewArchiveService(repository.NewArchiveRepository(db), objectStorage, log), sqlDB.Close, nil
}

package service

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/dogo/internal/domain"
	"github.com/timmy/dogo/internal/imageinfo"
	"github.com/timmy/dogo/internal/logger"
	"github.com/timmy/dogo/internal/repository"
	"github.com/timmy/dogo/internal/storage"
)

// ErrNothingToArchive is returned when an image carries no bytes.
var ErrNothingToArchive = errors.New("image has no data to archive")

// ArchiveService copies fetched images into object storage and records them.
type ArchiveService struct {
	repo    *repository.ArchiveRepository
	storage storage.ObjectStorage
	logger  *logger.Logger
}

// NewArchiveService creates a new archive service.
func NewArchiveService(repo *repository.ArchiveRepository, objectStorage storage.ObjectStorage, log *logger.Logger) *ArchiveService {
	if log == nil {
		log = logger.GetDefault()
	}
	return &ArchiveService{
		repo:    repo,
		storage: objectStorage,
		logger:  log.WithField(logger.FieldComponent, "archive"),
	}
}

// log returns a logger from context if available, otherwise the service logger
func (s *ArchiveService) log(ctx context.Context) *logger.Logger {
	if logger.GetComponent(ctx) != "" {
		return logger.FromContext(ctx)
	}
	return s.logger
}

// Archive stores the image bytes under their content hash and upserts the record.
// Bytes already present in storage are not uploaded again.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - img: downloaded image; Data must be non-empty.
// Returns:
//   - *domain.ArchivedImage: the persisted record.
//   - error: non-nil if upload or persistence fails.
func (s *ArchiveService) Archive(ctx context.Context, img *domain.Image) (*domain.ArchivedImage, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, ErrNothingToArchive
	}
	start := time.Now()

	md5Hash := calculateMD5(img.Data)

	format := img.Format
	contentType := img.ContentType
	if contentType == "" {
		if format != "" {
			contentType = imageinfo.ContentType(format)
		} else {
			contentType = imageinfo.Sniff(img.Data)
		}
	}

	storageKey := fmt.Sprintf("%s/%s.%s", md5Hash[:2], md5Hash, imageinfo.Extension(format))

	existsInStorage, err := s.storage.Exists(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to check storage existence: %w", err)
	}

	uploaded := false
	if !existsInStorage {
		if err := s.storage.Upload(ctx, storageKey, bytes.NewReader(img.Data), int64(len(img.Data)), contentType); err != nil {
			return nil, fmt.Errorf("failed to upload to storage: %w", err)
		}
		uploaded = true
	} else {
		s.log(ctx).WithField("storage_key", storageKey).Debug("File already exists in storage, skipping upload")
	}

	now := time.Now()
	record := &domain.ArchivedImage{
		ID:          uuid.New().String(),
		Reference:   img.Reference.String(),
		StorageKey:  storageKey,
		StorageURL:  s.storage.GetURL(storageKey),
		MD5Hash:     md5Hash,
		Format:      format,
		ContentType: contentType,
		Width:       img.Width,
		Height:      img.Height,
		FileSize:    int64(len(img.Data)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Upsert(ctx, record); err != nil {
		if uploaded {
			if delErr := s.storage.Delete(ctx, storageKey); delErr != nil {
				s.log(ctx).WithField("storage_key", storageKey).WithError(delErr).Error("Failed to rollback storage upload")
			}
		}
		return nil, fmt.Errorf("failed to save to database: %w", err)
	}

	// The upsert keeps the original ID when the hash was seen before.
	saved, err := s.repo.GetByMD5Hash(ctx, md5Hash)
	if err != nil {
		return nil, fmt.Errorf("failed to reload archived image: %w", err)
	}

	logger.With(logger.Fields{
		logger.FieldReference: saved.Reference,
		"storage_key":         storageKey,
		"uploaded":            uploaded,
	}).WithSize(len(img.Data)).WithDuration(start).Info(ctx, "Image archived")

	return saved, nil
}

// List returns archived images, newest first, and the total count.
func (s *ArchiveService) List(ctx context.Context, limit, offset int) ([]domain.ArchivedImage, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	images, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list archived images: %w", err)
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count archived images: %w", err)
	}
	return images, total, nil
}

func calculateMD5(data []byte) string {
	hash := md5.Sum(data)
	return hex.EncodeToString(hash[:])
}

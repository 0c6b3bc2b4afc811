package repository

import (
	"context"

	"github.com/timmy/dogo/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArchiveRepository handles archived image records.
type ArchiveRepository struct {
	db *gorm.DB
}

// NewArchiveRepository creates a new ArchiveRepository.
func NewArchiveRepository(db *gorm.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// Upsert inserts an archived image, or refreshes the existing row with the
// same content hash.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - img: record to create or update.
// Returns:
//   - error: non-nil if the upsert fails.
func (r *ArchiveRepository) Upsert(ctx context.Context, img *domain.ArchivedImage) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "md5_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"reference", "storage_key", "storage_url", "updated_at",
		}),
	}).Create(img).Error
}

// GetByMD5Hash retrieves an archived image by content hash.
// Returns gorm.ErrRecordNotFound when nothing matches.
func (r *ArchiveRepository) GetByMD5Hash(ctx context.Context, md5Hash string) (*domain.ArchivedImage, error) {
	var img domain.ArchivedImage
	if err := r.db.WithContext(ctx).First(&img, "md5_hash = ?", md5Hash).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

// List returns archived images, newest first.
func (r *ArchiveRepository) List(ctx context.Context, limit, offset int) ([]domain.ArchivedImage, error) {
	var images []domain.ArchivedImage
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// Count returns the number of archived images.
func (r *ArchiveRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.ArchivedImage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

package domain

import "time"

// ArchivedImage records an image that was copied into object storage.
// Rows are keyed by content hash, so archiving the same bytes twice updates one row.
type ArchivedImage struct {
	ID          string    `gorm:"type:text;primaryKey" json:"id"`
	Reference   string    `gorm:"type:text;not null" json:"reference"`
	StorageKey  string    `gorm:"type:text;not null" json:"storage_key"`
	StorageURL  string    `gorm:"type:text" json:"storage_url"`
	MD5Hash     string    `gorm:"type:text;uniqueIndex:idx_archived_images_md5" json:"md5_hash"`
	Format      string    `json:"format"`
	ContentType string    `json:"content_type"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for ArchivedImage.
func (ArchivedImage) TableName() string {
	return "archived_images"
}

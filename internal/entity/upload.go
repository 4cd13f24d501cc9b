package entity

import "time"

// UploadedImage is an uploaded binary. Base64Data holds the payload for the
// database backend; StorageURL is set instead when a remote provider keeps it.
type UploadedImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"size:255;uniqueIndex;not null" json:"filename"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	FileType     string    `gorm:"size:50;not null" json:"file_type"`
	Base64Data   string    `gorm:"type:text" json:"-"`
	StorageURL   string    `gorm:"type:text" json:"storage_url,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (UploadedImage) TableName() string {
	return "uploaded_images"
}

package repository

import (
	"context"

	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
)

const metadataColumns = "id, filename, original_name, file_size, file_type, storage_url, created_at"

type UploadRepository interface {
	Create(ctx context.Context, image *entity.UploadedImage) error
	FindByFilename(ctx context.Context, filename string) (*entity.UploadedImage, error)
	// FindByID loads metadata only.
	FindByID(ctx context.Context, id uint) (*entity.UploadedImage, error)
	// FindRecent lists metadata newest first.
	FindRecent(ctx context.Context, limit int) ([]entity.UploadedImage, error)
	Count(ctx context.Context) (int64, error)
	DeleteByFilename(ctx context.Context, filename string) (int64, error)
}

type uploadRepository struct {
	db *gorm.DB
}

func NewUploadRepository(db *gorm.DB) UploadRepository {
	return &uploadRepository{db: db}
}

func (r *uploadRepository) Create(ctx context.Context, image *entity.UploadedImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *uploadRepository) FindByFilename(ctx context.Context, filename string) (*entity.UploadedImage, error) {
	var image entity.UploadedImage
	if err := r.db.WithContext(ctx).Where("filename = ?", filename).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *uploadRepository) FindByID(ctx context.Context, id uint) (*entity.UploadedImage, error) {
	var image entity.UploadedImage
	if err := r.db.WithContext(ctx).Select(metadataColumns).First(&image, id).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *uploadRepository) FindRecent(ctx context.Context, limit int) ([]entity.UploadedImage, error) {
	var images []entity.UploadedImage
	err := r.db.WithContext(ctx).
		Select(metadataColumns).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&images).Error
	return images, err
}

func (r *uploadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.UploadedImage{}).Count(&count).Error
	return count, err
}

func (r *uploadRepository) DeleteByFilename(ctx context.Context, filename string) (int64, error) {
	res := r.db.WithContext(ctx).Where("filename = ?", filename).Delete(&entity.UploadedImage{})
	return res.RowsAffected, res.Error
}

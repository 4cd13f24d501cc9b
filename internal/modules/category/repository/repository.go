package repository

import (
	"context"

	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	FindAll(ctx context.Context) ([]entity.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// RefreshArticleCount sets article_count to the number of published
	// tutorials filed under slug.
	RefreshArticleCount(ctx context.Context, slug string) error
	Count(ctx context.Context) (int64, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	if err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Category{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *categoryRepository) RefreshArticleCount(ctx context.Context, slug string) error {
	published := r.db.Model(&entity.Tutorial{}).
		Select("COUNT(*)").
		Where("category = ? AND status = ?", slug, entity.TutorialStatusPublished)

	return r.db.WithContext(ctx).
		Model(&entity.Category{}).
		Where("slug = ?", slug).
		Update("article_count", published).Error
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Category{}).Count(&count).Error
	return count, err
}

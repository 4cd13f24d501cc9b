package repository

import (
	"context"

	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *entity.ContactMessage) error
	FindRecent(ctx context.Context, limit int) ([]entity.ContactMessage, error)
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, msg *entity.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepository) FindRecent(ctx context.Context, limit int) ([]entity.ContactMessage, error) {
	var msgs []entity.ContactMessage
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&msgs).Error
	return msgs, err
}

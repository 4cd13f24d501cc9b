package repository

import (
	"context"
	"time"

	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.AdminSession) error
	// FindValid returns gorm.ErrRecordNotFound unless the session exists and
	// expires after now.
	FindValid(ctx context.Context, sessionID string, now time.Time) (*entity.AdminSession, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.AdminSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindValid(ctx context.Context, sessionID string, now time.Time) (*entity.AdminSession, error) {
	var session entity.AdminSession
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND expires_at > ?", sessionID, now).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&entity.AdminSession{})
	return res.RowsAffected, res.Error
}

func (r *sessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&entity.AdminSession{}).Error
}

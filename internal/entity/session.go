package entity

import "time"

type AdminSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:128;uniqueIndex;not null" json:"-"`
	Username  string    `gorm:"size:50;not null" json:"username"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expires_at"`
}

func (AdminSession) TableName() string {
	return "admin_sessions"
}

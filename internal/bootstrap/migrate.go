package bootstrap

import (
	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.AdminSession{},
		&entity.IPProfile{},
		&entity.PlatformStat{},
		&entity.IPWork{},
		&entity.Achievement{},
		&entity.AnalyticsSnapshot{},
		&entity.Category{},
		&entity.Tutorial{},
		&entity.UploadedImage{},
		&entity.ContactMessage{},
	)
}

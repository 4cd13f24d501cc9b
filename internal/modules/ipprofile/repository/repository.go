package repository

import (
	"context"
	"time"

	"clabs.com/website/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlatformSummary struct {
	IPID           uint  `gorm:"column:ip_id"`
	PlatformCount  int64 `gorm:"column:platform_count"`
	TotalFollowers int64 `gorm:"column:total_followers"`
}

type WorkSummary struct {
	IPID       uint  `gorm:"column:ip_id"`
	WorksCount int64 `gorm:"column:works_count"`
	TotalViews int64 `gorm:"column:total_views"`
}

type Repository interface {
	CreateProfile(ctx context.Context, profile *entity.IPProfile) error
	FindProfileByID(ctx context.Context, id uint) (*entity.IPProfile, error)
	FindProfileBySlug(ctx context.Context, slug string) (*entity.IPProfile, error)
	// ExistsBySlug ignores the profile with excludeID; pass 0 to check all.
	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)
	ListProfiles(ctx context.Context) ([]entity.IPProfile, error)
	CountProfiles(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, profile *entity.IPProfile) (int64, error)
	// DeleteProfile removes the profile and everything owned by it.
	DeleteProfile(ctx context.Context, id uint) (int64, error)

	PlatformSummaries(ctx context.Context) (map[uint]PlatformSummary, error)
	WorkSummaries(ctx context.Context) (map[uint]WorkSummary, error)

	UpsertPlatformStat(ctx context.Context, stat *entity.PlatformStat) error
	UpdatePlatformStat(ctx context.Context, stat *entity.PlatformStat) (int64, error)
	DeletePlatformStat(ctx context.Context, id uint) (int64, error)
	FindPlatformStats(ctx context.Context, ipID uint) ([]entity.PlatformStat, error)

	CreateWork(ctx context.Context, work *entity.IPWork) error
	UpdateWork(ctx context.Context, work *entity.IPWork) (int64, error)
	DeleteWork(ctx context.Context, id uint) (int64, error)
	FindWorks(ctx context.Context, ipID uint) ([]entity.IPWork, error)
	FindPublishedWorks(ctx context.Context, limit int) ([]entity.IPWork, error)

	FindAchievements(ctx context.Context, ipID uint) ([]entity.Achievement, error)
	FindAnalytics(ctx context.Context, ipID uint, limit int) ([]entity.AnalyticsSnapshot, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProfile(ctx context.Context, profile *entity.IPProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *repository) FindProfileByID(ctx context.Context, id uint) (*entity.IPProfile, error) {
	var profile entity.IPProfile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) FindProfileBySlug(ctx context.Context, slug string) (*entity.IPProfile, error) {
	var profile entity.IPProfile
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *repository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entity.IPProfile{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) ListProfiles(ctx context.Context) ([]entity.IPProfile, error) {
	var profiles []entity.IPProfile
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&profiles).Error
	return profiles, err
}

func (r *repository) CountProfiles(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.IPProfile{}).Count(&count).Error
	return count, err
}

func (r *repository) UpdateProfile(ctx context.Context, p *entity.IPProfile) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.IPProfile{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":            p.Name,
		"slug":            p.Slug,
		"display_name":    p.DisplayName,
		"title":           p.Title,
		"slogan":          p.Slogan,
		"bio":             p.Bio,
		"avatar_url":      p.AvatarURL,
		"banner_url":      p.BannerURL,
		"cover_image_url": p.CoverImageURL,
		"location":        p.Location,
		"languages":       p.Languages,
		"specialties":     p.Specialties,
		"social_links":    p.SocialLinks,
		"status":          p.Status,
		"updated_at":      time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteProfile(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []any{
			&entity.PlatformStat{},
			&entity.IPWork{},
			&entity.Achievement{},
			&entity.AnalyticsSnapshot{},
		}
		for _, model := range owned {
			if err := tx.Where("ip_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&entity.IPProfile{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	return affected, err
}

func (r *repository) PlatformSummaries(ctx context.Context) (map[uint]PlatformSummary, error) {
	var rows []PlatformSummary
	err := r.db.WithContext(ctx).Model(&entity.PlatformStat{}).
		Select("ip_id, COUNT(*) AS platform_count, COALESCE(SUM(followers_count), 0) AS total_followers").
		Group("ip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]PlatformSummary, len(rows))
	for _, row := range rows {
		out[row.IPID] = row
	}
	return out, nil
}

func (r *repository) WorkSummaries(ctx context.Context) (map[uint]WorkSummary, error) {
	var rows []WorkSummary
	err := r.db.WithContext(ctx).Model(&entity.IPWork{}).
		Select("ip_id, COUNT(*) AS works_count, COALESCE(SUM(view_count), 0) AS total_views").
		Where("status = ?", entity.WorkStatusPublished).
		Group("ip_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]WorkSummary, len(rows))
	for _, row := range rows {
		out[row.IPID] = row
	}
	return out, nil
}

// UpsertPlatformStat writes the row for (ip_id, platform_name), replacing the
// numbers of an existing one.
func (r *repository) UpsertPlatformStat(ctx context.Context, stat *entity.PlatformStat) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "ip_id"}, {Name: "platform_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"platform_url", "followers_count", "engagement_rate", "monthly_views", "total_views", "updated_at",
		}),
	}).Create(stat).Error
}

func (r *repository) UpdatePlatformStat(ctx context.Context, s *entity.PlatformStat) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.PlatformStat{}).Where("id = ?", s.ID).Updates(map[string]any{
		"platform_name":   s.PlatformName,
		"platform_url":    s.PlatformURL,
		"followers_count": s.FollowersCount,
		"engagement_rate": s.EngagementRate,
		"monthly_views":   s.MonthlyViews,
		"total_views":     s.TotalViews,
		"updated_at":      time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *repository) DeletePlatformStat(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.PlatformStat{}, id)
	return res.RowsAffected, res.Error
}

func (r *repository) FindPlatformStats(ctx context.Context, ipID uint) ([]entity.PlatformStat, error) {
	var stats []entity.PlatformStat
	err := r.db.WithContext(ctx).
		Where("ip_id = ?", ipID).
		Order("followers_count DESC, id ASC").
		Find(&stats).Error
	return stats, err
}

func (r *repository) CreateWork(ctx context.Context, work *entity.IPWork) error {
	return r.db.WithContext(ctx).Create(work).Error
}

func (r *repository) UpdateWork(ctx context.Context, w *entity.IPWork) (int64, error) {
	res := r.db.WithContext(ctx).Model(&entity.IPWork{}).Where("id = ?", w.ID).Updates(map[string]any{
		"title":         w.Title,
		"description":   w.Description,
		"type":          w.Type,
		"url":           w.URL,
		"thumbnail_url": w.ThumbnailURL,
		"view_count":    w.ViewCount,
		"like_count":    w.LikeCount,
		"status":        w.Status,
		"featured":      w.Featured,
		"updated_at":    time.Now(),
	})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteWork(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&entity.IPWork{}, id)
	return res.RowsAffected, res.Error
}

func (r *repository) FindWorks(ctx context.Context, ipID uint) ([]entity.IPWork, error) {
	var works []entity.IPWork
	err := r.db.WithContext(ctx).
		Where("ip_id = ?", ipID).
		Order("featured DESC, created_at DESC, id DESC").
		Find(&works).Error
	return works, err
}

func (r *repository) FindPublishedWorks(ctx context.Context, limit int) ([]entity.IPWork, error) {
	var works []entity.IPWork
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.WorkStatusPublished).
		Order("featured DESC, view_count DESC, id DESC").
		Limit(limit).
		Find(&works).Error
	return works, err
}

func (r *repository) FindAchievements(ctx context.Context, ipID uint) ([]entity.Achievement, error) {
	var achievements []entity.Achievement
	err := r.db.WithContext(ctx).
		Where("ip_id = ?", ipID).
		Order("display_order ASC, id ASC").
		Find(&achievements).Error
	return achievements, err
}

func (r *repository) FindAnalytics(ctx context.Context, ipID uint, limit int) ([]entity.AnalyticsSnapshot, error) {
	var snapshots []entity.AnalyticsSnapshot
	err := r.db.WithContext(ctx).
		Where("ip_id = ?", ipID).
		Order("date DESC").
		Limit(limit).
		Find(&snapshots).Error
	return snapshots, err
}

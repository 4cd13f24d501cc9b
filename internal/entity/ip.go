package entity

import (
	"time"

	"gorm.io/datatypes"
)

const (
	IPStatusActive   = "active"
	IPStatusInactive = "inactive"
	IPStatusArchived = "archived"
)

const (
	WorkStatusDraft     = "draft"
	WorkStatusPublished = "published"
	WorkStatusHidden    = "hidden"
)

// IPProfile is a managed creator identity.
type IPProfile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"size:100;not null" json:"name"`
	Slug          string         `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	DisplayName   string         `gorm:"size:100;not null" json:"display_name"`
	Title         string         `gorm:"size:200" json:"title"`
	Slogan        string         `gorm:"size:255" json:"slogan"`
	Bio           string         `gorm:"type:text" json:"bio"`
	AvatarURL     string         `gorm:"type:text" json:"avatar_url"`
	BannerURL     string         `gorm:"type:text" json:"banner_url"`
	CoverImageURL string         `gorm:"type:text" json:"cover_image_url"`
	Location      string         `gorm:"size:100" json:"location"`
	Languages     datatypes.JSON `json:"languages"`
	Specialties   datatypes.JSON `json:"specialties"`
	SocialLinks   datatypes.JSON `json:"social_links"`
	Status        string         `gorm:"size:20;not null;index" json:"status"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (IPProfile) TableName() string {
	return "ip_profiles"
}

// PlatformStat holds one profile's audience numbers on one platform.
type PlatformStat struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	IPID           uint      `gorm:"column:ip_id;not null;uniqueIndex:idx_ip_platform,priority:1" json:"ip_id"`
	PlatformName   string    `gorm:"size:50;not null;uniqueIndex:idx_ip_platform,priority:2" json:"platform_name"`
	PlatformURL    string    `gorm:"type:text" json:"platform_url"`
	FollowersCount int64     `gorm:"not null" json:"followers_count"`
	EngagementRate float64   `gorm:"not null" json:"engagement_rate"`
	MonthlyViews   int64     `gorm:"not null" json:"monthly_views"`
	TotalViews     int64     `gorm:"not null" json:"total_views"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PlatformStat) TableName() string {
	return "ip_platform_stats"
}

type IPWork struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	IPID         uint      `gorm:"column:ip_id;not null;index" json:"ip_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Type         string    `gorm:"size:20;not null" json:"type"`
	URL          string    `gorm:"type:text" json:"url"`
	ThumbnailURL string    `gorm:"type:text" json:"thumbnail_url"`
	ViewCount    int64     `gorm:"not null" json:"view_count"`
	LikeCount    int64     `gorm:"not null" json:"like_count"`
	Status       string    `gorm:"size:20;not null;index" json:"status"`
	Featured     bool      `gorm:"not null" json:"featured"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (IPWork) TableName() string {
	return "ip_works"
}

type Achievement struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	IPID            uint       `gorm:"column:ip_id;not null;index" json:"ip_id"`
	Title           string     `gorm:"size:200;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Icon            string     `gorm:"size:50" json:"icon"`
	BadgeColor      string     `gorm:"size:20" json:"badge_color"`
	AchievementDate *time.Time `json:"achievement_date"`
	DisplayOrder    int        `gorm:"not null" json:"display_order"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Achievement) TableName() string {
	return "ip_achievements"
}

// AnalyticsSnapshot is a dated sample of a profile's totals. Rows are
// written by external tooling.
type AnalyticsSnapshot struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	IPID           uint      `gorm:"column:ip_id;not null;index:idx_ip_date,priority:1" json:"ip_id"`
	Date           time.Time `gorm:"not null;index:idx_ip_date,priority:2" json:"date"`
	Followers      int64     `gorm:"not null" json:"followers"`
	Views          int64     `gorm:"not null" json:"views"`
	EngagementRate float64   `gorm:"not null" json:"engagement_rate"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AnalyticsSnapshot) TableName() string {
	return "ip_analytics"
}

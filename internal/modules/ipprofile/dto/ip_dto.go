package dto

type CreateProfileRequest struct {
	Name          string            `json:"name" binding:"required,max=100"`
	Slug          string            `json:"slug" binding:"required,max=100,slug"`
	DisplayName   string            `json:"display_name" binding:"required,max=100"`
	Title         string            `json:"title" binding:"max=200"`
	Slogan        string            `json:"slogan" binding:"max=255"`
	Bio           string            `json:"bio"`
	AvatarURL     string            `json:"avatar_url"`
	BannerURL     string            `json:"banner_url"`
	CoverImageURL string            `json:"cover_image_url"`
	Location      string            `json:"location" binding:"max=100"`
	Languages     []string          `json:"languages"`
	Specialties   []string          `json:"specialties"`
	SocialLinks   map[string]string `json:"social_links"`
	Status        string            `json:"status" binding:"omitempty,oneof=active inactive archived"`
}

// UpdateProfileRequest replaces every column, so every field must be sent.
type UpdateProfileRequest struct {
	Name          *string            `json:"name" binding:"required,min=1,max=100"`
	Slug          *string            `json:"slug" binding:"required,max=100,slug"`
	DisplayName   *string            `json:"display_name" binding:"required,min=1,max=100"`
	Title         *string            `json:"title" binding:"required,max=200"`
	Slogan        *string            `json:"slogan" binding:"required,max=255"`
	Bio           *string            `json:"bio" binding:"required"`
	AvatarURL     *string            `json:"avatar_url" binding:"required"`
	BannerURL     *string            `json:"banner_url" binding:"required"`
	CoverImageURL *string            `json:"cover_image_url" binding:"required"`
	Location      *string            `json:"location" binding:"required,max=100"`
	Languages     *[]string          `json:"languages" binding:"required"`
	Specialties   *[]string          `json:"specialties" binding:"required"`
	SocialLinks   *map[string]string `json:"social_links" binding:"required"`
	Status        *string            `json:"status" binding:"required,oneof=active inactive archived"`
}

type ProfileResponse struct {
	ID            uint              `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	DisplayName   string            `json:"display_name"`
	Title         string            `json:"title"`
	Slogan        string            `json:"slogan"`
	Bio           string            `json:"bio"`
	AvatarURL     string            `json:"avatar_url"`
	BannerURL     string            `json:"banner_url"`
	CoverImageURL string            `json:"cover_image_url"`
	Location      string            `json:"location"`
	Languages     []string          `json:"languages"`
	Specialties   []string          `json:"specialties"`
	SocialLinks   map[string]string `json:"social_links"`
	Status        string            `json:"status"`
	CreatedAt     string            `json:"created_at"`
	UpdatedAt     string            `json:"updated_at"`
}

// ProfileSummaryResponse is a list row with audience and works totals.
type ProfileSummaryResponse struct {
	ProfileResponse
	PlatformCount  int64 `json:"platform_count"`
	TotalFollowers int64 `json:"total_followers"`
	WorksCount     int64 `json:"works_count"`
	TotalViews     int64 `json:"total_views"`
}

type SavePlatformRequest struct {
	IPID           uint    `json:"ip_id" binding:"required,min=1"`
	PlatformName   string  `json:"platform_name" binding:"required,max=50"`
	PlatformURL    string  `json:"platform_url"`
	FollowersCount int64   `json:"followers_count" binding:"min=0"`
	EngagementRate float64 `json:"engagement_rate" binding:"min=0"`
	MonthlyViews   int64   `json:"monthly_views" binding:"min=0"`
	TotalViews     int64   `json:"total_views" binding:"min=0"`
}

type UpdatePlatformRequest struct {
	PlatformName   *string  `json:"platform_name" binding:"required,min=1,max=50"`
	PlatformURL    *string  `json:"platform_url" binding:"required"`
	FollowersCount *int64   `json:"followers_count" binding:"required,min=0"`
	EngagementRate *float64 `json:"engagement_rate" binding:"required,min=0"`
	MonthlyViews   *int64   `json:"monthly_views" binding:"required,min=0"`
	TotalViews     *int64   `json:"total_views" binding:"required,min=0"`
}

type PlatformResponse struct {
	ID             uint    `json:"id"`
	IPID           uint    `json:"ip_id"`
	PlatformName   string  `json:"platform_name"`
	PlatformURL    string  `json:"platform_url"`
	FollowersCount int64   `json:"followers_count"`
	EngagementRate float64 `json:"engagement_rate"`
	MonthlyViews   int64   `json:"monthly_views"`
	TotalViews     int64   `json:"total_views"`
	UpdatedAt      string  `json:"updated_at"`
}

type CreateWorkRequest struct {
	IPID         uint   `json:"ip_id" binding:"required,min=1"`
	Title        string `json:"title" binding:"required,max=200"`
	Description  string `json:"description"`
	Type         string `json:"type" binding:"omitempty,max=20"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ViewCount    int64  `json:"view_count" binding:"min=0"`
	LikeCount    int64  `json:"like_count" binding:"min=0"`
	Status       string `json:"status" binding:"omitempty,oneof=draft published hidden"`
	Featured     bool   `json:"featured"`
}

type UpdateWorkRequest struct {
	Title        *string `json:"title" binding:"required,min=1,max=200"`
	Description  *string `json:"description" binding:"required"`
	Type         *string `json:"type" binding:"required,min=1,max=20"`
	URL          *string `json:"url" binding:"required"`
	ThumbnailURL *string `json:"thumbnail_url" binding:"required"`
	ViewCount    *int64  `json:"view_count" binding:"required,min=0"`
	LikeCount    *int64  `json:"like_count" binding:"required,min=0"`
	Status       *string `json:"status" binding:"required,oneof=draft published hidden"`
	Featured     *bool   `json:"featured" binding:"required"`
}

type WorkResponse struct {
	ID           uint   `json:"id"`
	IPID         uint   `json:"ip_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
	ViewCount    int64  `json:"view_count"`
	LikeCount    int64  `json:"like_count"`
	Status       string `json:"status"`
	Featured     bool   `json:"featured"`
	CreatedAt    string `json:"created_at"`
}

type AchievementResponse struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Icon            string `json:"icon"`
	BadgeColor      string `json:"badge_color"`
	AchievementDate string `json:"achievement_date,omitempty"`
}

type SnapshotResponse struct {
	Date           string  `json:"date"`
	Followers      int64   `json:"followers"`
	Views          int64   `json:"views"`
	EngagementRate float64 `json:"engagement_rate"`
}

type AnalyticsResponse struct {
	Profile           ProfileResponse       `json:"profile"`
	Platforms         []PlatformResponse    `json:"platforms"`
	Snapshots         []SnapshotResponse    `json:"snapshots"`
	Achievements      []AchievementResponse `json:"achievements"`
	TotalFollowers    int64                 `json:"total_followers"`
	TotalMonthlyViews int64                 `json:"total_monthly_views"`
	AvgEngagement     float64               `json:"avg_engagement"`
}

type IDRequest struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

package ipprofile

import (
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/ipprofile/dto"
	"clabs.com/website/pkg/jsonfield"
)

func ToProfileResponse(p *entity.IPProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		DisplayName:   p.DisplayName,
		Title:         p.Title,
		Slogan:        p.Slogan,
		Bio:           p.Bio,
		AvatarURL:     p.AvatarURL,
		BannerURL:     p.BannerURL,
		CoverImageURL: p.CoverImageURL,
		Location:      p.Location,
		Languages:     jsonfield.StringSlice(p.Languages),
		Specialties:   jsonfield.StringSlice(p.Specialties),
		SocialLinks:   jsonfield.StringMap(p.SocialLinks),
		Status:        p.Status,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
}

func ToPlatformResponse(s *entity.PlatformStat) dto.PlatformResponse {
	return dto.PlatformResponse{
		ID:             s.ID,
		IPID:           s.IPID,
		PlatformName:   s.PlatformName,
		PlatformURL:    s.PlatformURL,
		FollowersCount: s.FollowersCount,
		EngagementRate: s.EngagementRate,
		MonthlyViews:   s.MonthlyViews,
		TotalViews:     s.TotalViews,
		UpdatedAt:      formatTime(s.UpdatedAt),
	}
}

func ToWorkResponse(w *entity.IPWork) dto.WorkResponse {
	return dto.WorkResponse{
		ID:           w.ID,
		IPID:         w.IPID,
		Title:        w.Title,
		Description:  w.Description,
		Type:         w.Type,
		URL:          w.URL,
		ThumbnailURL: w.ThumbnailURL,
		ViewCount:    w.ViewCount,
		LikeCount:    w.LikeCount,
		Status:       w.Status,
		Featured:     w.Featured,
		CreatedAt:    formatTime(w.CreatedAt),
	}
}

func ToAchievementResponse(a *entity.Achievement) dto.AchievementResponse {
	res := dto.AchievementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		BadgeColor:  a.BadgeColor,
	}
	if a.AchievementDate != nil {
		res.AchievementDate = a.AchievementDate.Format(time.DateOnly)
	}
	return res
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

package ipprofile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/ipprofile/dto"
	"clabs.com/website/internal/modules/ipprofile/repository"
	"clabs.com/website/pkg/apperror"
	"clabs.com/website/pkg/jsonfield"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const analyticsWindow = 30

var (
	ErrProfileNotFound  = apperror.NotFound("ip profile not found")
	ErrPlatformNotFound = apperror.NotFound("platform stats not found")
	ErrWorkNotFound     = apperror.NotFound("work not found")
	ErrSlugTaken        = apperror.BadRequest("slug already exists, choose another one")
)

type ProfileService interface {
	CreateProfile(ctx context.Context, req dto.CreateProfileRequest) (uint, error)
	GetProfile(ctx context.Context, id uint) (*dto.ProfileResponse, error)
	ListProfiles(ctx context.Context) ([]dto.ProfileSummaryResponse, error)
	CountProfiles(ctx context.Context) (int64, error)
	UpdateProfile(ctx context.Context, id uint, req dto.UpdateProfileRequest) error
	DeleteProfile(ctx context.Context, id uint) error

	SavePlatform(ctx context.Context, req dto.SavePlatformRequest) error
	UpdatePlatform(ctx context.Context, id uint, req dto.UpdatePlatformRequest) error
	DeletePlatform(ctx context.Context, id uint) error
	ListPlatforms(ctx context.Context, ipID uint) ([]dto.PlatformResponse, error)

	CreateWork(ctx context.Context, req dto.CreateWorkRequest) (uint, error)
	UpdateWork(ctx context.Context, id uint, req dto.UpdateWorkRequest) error
	DeleteWork(ctx context.Context, id uint) error
	ListWorks(ctx context.Context, ipID uint) ([]dto.WorkResponse, error)
	ListPublishedWorks(ctx context.Context, limit int) ([]dto.WorkResponse, error)

	Analytics(ctx context.Context, id uint) (*dto.AnalyticsResponse, error)
}

type profileService struct {
	repo   repository.Repository
	logger *zap.Logger
}

func NewProfileService(repo repository.Repository, logger *zap.Logger) ProfileService {
	return &profileService{repo: repo, logger: logger}
}

func (s *profileService) CreateProfile(ctx context.Context, req dto.CreateProfileRequest) (uint, error) {
	exists, err := s.repo.ExistsBySlug(ctx, req.Slug, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrSlugTaken
	}

	status := req.Status
	if status == "" {
		status = entity.IPStatusActive
	}

	profile := &entity.IPProfile{
		Name:          strings.TrimSpace(req.Name),
		Slug:          req.Slug,
		DisplayName:   strings.TrimSpace(req.DisplayName),
		Title:         req.Title,
		Slogan:        req.Slogan,
		Bio:           req.Bio,
		AvatarURL:     req.AvatarURL,
		BannerURL:     req.BannerURL,
		CoverImageURL: req.CoverImageURL,
		Location:      req.Location,
		Languages:     jsonfield.FromSlice(req.Languages),
		Specialties:   jsonfield.FromSlice(req.Specialties),
		SocialLinks:   jsonfield.FromMap(req.SocialLinks),
		Status:        status,
	}
	if err := s.repo.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, ErrSlugTaken
		}
		return 0, fmt.Errorf("create ip profile: %w", err)
	}

	s.logger.Info("ip profile created", zap.Uint("id", profile.ID), zap.String("slug", profile.Slug))
	return profile.ID, nil
}

func (s *profileService) GetProfile(ctx context.Context, id uint) (*dto.ProfileResponse, error) {
	profile, err := s.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	res := ToProfileResponse(profile)
	return &res, nil
}

func (s *profileService) ListProfiles(ctx context.Context) ([]dto.ProfileSummaryResponse, error) {
	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	platforms, err := s.repo.PlatformSummaries(ctx)
	if err != nil {
		return nil, err
	}
	works, err := s.repo.WorkSummaries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProfileSummaryResponse, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out = append(out, dto.ProfileSummaryResponse{
			ProfileResponse: ToProfileResponse(p),
			PlatformCount:   platforms[p.ID].PlatformCount,
			TotalFollowers:  platforms[p.ID].TotalFollowers,
			WorksCount:      works[p.ID].WorksCount,
			TotalViews:      works[p.ID].TotalViews,
		})
	}
	return out, nil
}

func (s *profileService) CountProfiles(ctx context.Context) (int64, error) {
	return s.repo.CountProfiles(ctx)
}

func (s *profileService) UpdateProfile(ctx context.Context, id uint, req dto.UpdateProfileRequest) error {
	taken, err := s.repo.ExistsBySlug(ctx, *req.Slug, id)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}

	profile := &entity.IPProfile{
		ID:            id,
		Name:          strings.TrimSpace(*req.Name),
		Slug:          *req.Slug,
		DisplayName:   strings.TrimSpace(*req.DisplayName),
		Title:         *req.Title,
		Slogan:        *req.Slogan,
		Bio:           *req.Bio,
		AvatarURL:     *req.AvatarURL,
		BannerURL:     *req.BannerURL,
		CoverImageURL: *req.CoverImageURL,
		Location:      *req.Location,
		Languages:     jsonfield.FromSlice(*req.Languages),
		Specialties:   jsonfield.FromSlice(*req.Specialties),
		SocialLinks:   jsonfield.FromMap(*req.SocialLinks),
		Status:        *req.Status,
	}

	n, err := s.repo.UpdateProfile(ctx, profile)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("update ip profile %d: %w", id, err)
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id uint) error {
	n, err := s.repo.DeleteProfile(ctx, id)
	if err != nil {
		return fmt.Errorf("delete ip profile %d: %w", id, err)
	}
	if n == 0 {
		return ErrProfileNotFound
	}
	s.logger.Info("ip profile deleted", zap.Uint("id", id))
	return nil
}

func (s *profileService) SavePlatform(ctx context.Context, req dto.SavePlatformRequest) error {
	if _, err := s.findProfile(ctx, req.IPID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return apperror.BadRequest("ip_id does not reference an existing profile")
		}
		return err
	}

	stat := &entity.PlatformStat{
		IPID:           req.IPID,
		PlatformName:   strings.TrimSpace(req.PlatformName),
		PlatformURL:    req.PlatformURL,
		FollowersCount: req.FollowersCount,
		EngagementRate: req.EngagementRate,
		MonthlyViews:   req.MonthlyViews,
		TotalViews:     req.TotalViews,
	}
	if err := s.repo.UpsertPlatformStat(ctx, stat); err != nil {
		return fmt.Errorf("save platform stats: %w", err)
	}
	return nil
}

func (s *profileService) UpdatePlatform(ctx context.Context, id uint, req dto.UpdatePlatformRequest) error {
	n, err := s.repo.UpdatePlatformStat(ctx, &entity.PlatformStat{
		ID:             id,
		PlatformName:   strings.TrimSpace(*req.PlatformName),
		PlatformURL:    *req.PlatformURL,
		FollowersCount: *req.FollowersCount,
		EngagementRate: *req.EngagementRate,
		MonthlyViews:   *req.MonthlyViews,
		TotalViews:     *req.TotalViews,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.BadRequest("platform already recorded for this profile")
		}
		return fmt.Errorf("update platform stats %d: %w", id, err)
	}
	if n == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

func (s *profileService) DeletePlatform(ctx context.Context, id uint) error {
	n, err := s.repo.DeletePlatformStat(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlatformNotFound
	}
	return nil
}

func (s *profileService) ListPlatforms(ctx context.Context, ipID uint) ([]dto.PlatformResponse, error) {
	stats, err := s.repo.FindPlatformStats(ctx, ipID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlatformResponse, 0, len(stats))
	for i := range stats {
		out = append(out, ToPlatformResponse(&stats[i]))
	}
	return out, nil
}

func (s *profileService) CreateWork(ctx context.Context, req dto.CreateWorkRequest) (uint, error) {
	if _, err := s.findProfile(ctx, req.IPID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return 0, apperror.BadRequest("ip_id does not reference an existing profile")
		}
		return 0, err
	}

	work := &entity.IPWork{
		IPID:         req.IPID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		Type:         defaultString(req.Type, "video"),
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		ViewCount:    req.ViewCount,
		LikeCount:    req.LikeCount,
		Status:       defaultString(req.Status, entity.WorkStatusPublished),
		Featured:     req.Featured,
	}
	if err := s.repo.CreateWork(ctx, work); err != nil {
		return 0, fmt.Errorf("create work: %w", err)
	}
	return work.ID, nil
}

func (s *profileService) UpdateWork(ctx context.Context, id uint, req dto.UpdateWorkRequest) error {
	n, err := s.repo.UpdateWork(ctx, &entity.IPWork{
		ID:           id,
		Title:        strings.TrimSpace(*req.Title),
		Description:  *req.Description,
		Type:         *req.Type,
		URL:          *req.URL,
		ThumbnailURL: *req.ThumbnailURL,
		ViewCount:    *req.ViewCount,
		LikeCount:    *req.LikeCount,
		Status:       *req.Status,
		Featured:     *req.Featured,
	})
	if err != nil {
		return fmt.Errorf("update work %d: %w", id, err)
	}
	if n == 0 {
		return ErrWorkNotFound
	}
	return nil
}

func (s *profileService) DeleteWork(ctx context.Context, id uint) error {
	n, err := s.repo.DeleteWork(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrWorkNotFound
	}
	return nil
}

func (s *profileService) ListWorks(ctx context.Context, ipID uint) ([]dto.WorkResponse, error) {
	if _, err := s.findProfile(ctx, ipID); err != nil {
		return nil, err
	}
	works, err := s.repo.FindWorks(ctx, ipID)
	if err != nil {
		return nil, err
	}
	return toWorkResponses(works), nil
}

func (s *profileService) ListPublishedWorks(ctx context.Context, limit int) ([]dto.WorkResponse, error) {
	works, err := s.repo.FindPublishedWorks(ctx, limit)
	if err != nil {
		return nil, err
	}
	return toWorkResponses(works), nil
}

func (s *profileService) Analytics(ctx context.Context, id uint) (*dto.AnalyticsResponse, error) {
	profile, err := s.findProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	stats, err := s.repo.FindPlatformStats(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.repo.FindAnalytics(ctx, id, analyticsWindow)
	if err != nil {
		return nil, err
	}
	achievements, err := s.repo.FindAchievements(ctx, id)
	if err != nil {
		return nil, err
	}

	res := &dto.AnalyticsResponse{
		Profile:      ToProfileResponse(profile),
		Platforms:    make([]dto.PlatformResponse, 0, len(stats)),
		Snapshots:    make([]dto.SnapshotResponse, 0, len(snapshots)),
		Achievements: make([]dto.AchievementResponse, 0, len(achievements)),
	}

	var engagementSum float64
	for i := range stats {
		res.Platforms = append(res.Platforms, ToPlatformResponse(&stats[i]))
		res.TotalFollowers += stats[i].FollowersCount
		res.TotalMonthlyViews += stats[i].MonthlyViews
		engagementSum += stats[i].EngagementRate
	}
	if len(stats) > 0 {
		res.AvgEngagement = engagementSum / float64(len(stats))
	}

	for _, snap := range snapshots {
		res.Snapshots = append(res.Snapshots, dto.SnapshotResponse{
			Date:           snap.Date.Format("2006-01-02"),
			Followers:      snap.Followers,
			Views:          snap.Views,
			EngagementRate: snap.EngagementRate,
		})
	}
	for i := range achievements {
		res.Achievements = append(res.Achievements, ToAchievementResponse(&achievements[i]))
	}
	return res, nil
}

func (s *profileService) findProfile(ctx context.Context, id uint) (*entity.IPProfile, error) {
	profile, err := s.repo.FindProfileByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func toWorkResponses(works []entity.IPWork) []dto.WorkResponse {
	out := make([]dto.WorkResponse, 0, len(works))
	for i := range works {
		out = append(out, ToWorkResponse(&works[i]))
	}
	return out
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

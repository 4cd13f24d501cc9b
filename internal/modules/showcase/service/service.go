package showcase

import (
	"context"
	"errors"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/ipprofile/dto"
	"clabs.com/website/internal/modules/ipprofile/repository"
	ipprofile "clabs.com/website/internal/modules/ipprofile/service"
	"clabs.com/website/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrProfileNotFound = apperror.NotFound("ip profile not found")

// Reader is the read side a showcase page needs.
type Reader interface {
	ProfileBySlug(ctx context.Context, slug string) (*entity.IPProfile, error)
	PlatformStats(ctx context.Context, ipID uint) ([]entity.PlatformStat, error)
	// Works returns only works visible to the public.
	Works(ctx context.Context, ipID uint) ([]entity.IPWork, error)
	Achievements(ctx context.Context, ipID uint) ([]entity.Achievement, error)
}

type repositoryReader struct {
	repo repository.Repository
}

func NewRepositoryReader(repo repository.Repository) Reader {
	return &repositoryReader{repo: repo}
}

func (r *repositoryReader) ProfileBySlug(ctx context.Context, slug string) (*entity.IPProfile, error) {
	profile, err := r.repo.FindProfileBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	return profile, err
}

func (r *repositoryReader) PlatformStats(ctx context.Context, ipID uint) ([]entity.PlatformStat, error) {
	return r.repo.FindPlatformStats(ctx, ipID)
}

func (r *repositoryReader) Works(ctx context.Context, ipID uint) ([]entity.IPWork, error) {
	works, err := r.repo.FindWorks(ctx, ipID)
	if err != nil {
		return nil, err
	}
	published := works[:0]
	for _, w := range works {
		if w.Status == entity.WorkStatusPublished {
			published = append(published, w)
		}
	}
	return published, nil
}

func (r *repositoryReader) Achievements(ctx context.Context, ipID uint) ([]entity.Achievement, error) {
	return r.repo.FindAchievements(ctx, ipID)
}

// View is everything rendered on a public IP page.
type View struct {
	Profile           dto.ProfileResponse
	Platforms         []dto.PlatformResponse
	Works             []dto.WorkResponse
	Achievements      []dto.AchievementResponse
	TotalFollowers    int64
	TotalMonthlyViews int64
	AvgEngagement     float64
	// FromFixtures marks views built from the static fallback.
	FromFixtures bool
}

type ShowcaseService interface {
	Get(ctx context.Context, slug string) (*View, error)
}

type showcaseService struct {
	live     Reader
	fallback Reader
	logger   *zap.Logger
}

// NewShowcaseService reads from live first and uses fallback when the
// profile is missing there or any live read fails. fallback may be nil.
func NewShowcaseService(live, fallback Reader, logger *zap.Logger) ShowcaseService {
	return &showcaseService{live: live, fallback: fallback, logger: logger}
}

func (s *showcaseService) Get(ctx context.Context, slug string) (*View, error) {
	view, err := build(ctx, s.live, slug)
	if err == nil {
		return view, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		s.logger.Warn("live showcase read failed, using fixtures", zap.String("slug", slug), zap.Error(err))
	}
	if s.fallback == nil {
		return nil, err
	}

	view, fbErr := build(ctx, s.fallback, slug)
	if fbErr != nil {
		if errors.Is(fbErr, ErrProfileNotFound) {
			return nil, err
		}
		return nil, fbErr
	}
	view.FromFixtures = true
	return view, nil
}

func build(ctx context.Context, r Reader, slug string) (*View, error) {
	profile, err := r.ProfileBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	platforms, err := r.PlatformStats(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	works, err := r.Works(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	achievements, err := r.Achievements(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	view := &View{
		Profile:      ipprofile.ToProfileResponse(profile),
		Platforms:    make([]dto.PlatformResponse, 0, len(platforms)),
		Works:        make([]dto.WorkResponse, 0, len(works)),
		Achievements: make([]dto.AchievementResponse, 0, len(achievements)),
	}

	var engagementSum float64
	var engagementCount int
	for i := range platforms {
		p := &platforms[i]
		view.Platforms = append(view.Platforms, ipprofile.ToPlatformResponse(p))
		view.TotalFollowers += p.FollowersCount
		view.TotalMonthlyViews += p.MonthlyViews
		if p.EngagementRate > 0 {
			engagementSum += p.EngagementRate
			engagementCount++
		}
	}
	if engagementCount > 0 {
		view.AvgEngagement = engagementSum / float64(engagementCount)
	}

	for i := range works {
		view.Works = append(view.Works, ipprofile.ToWorkResponse(&works[i]))
	}
	for i := range achievements {
		view.Achievements = append(view.Achievements, ipprofile.ToAchievementResponse(&achievements[i]))
	}
	return view, nil
}

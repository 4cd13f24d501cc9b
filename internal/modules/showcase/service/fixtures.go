package showcase

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"clabs.com/website/internal/bootstrap"
	"clabs.com/website/internal/entity"
	"clabs.com/website/pkg/jsonfield"
	"github.com/BurntSushi/toml"
)

//go:embed fixtures.toml
var defaultFixtures []byte

type fixtureFile struct {
	Profiles []fixtureProfile `toml:"profile"`
}

type fixtureProfile struct {
	ID          uint              `toml:"id"`
	Slug        string            `toml:"slug"`
	Name        string            `toml:"name"`
	DisplayName string            `toml:"display_name"`
	Title       string            `toml:"title"`
	Slogan      string            `toml:"slogan"`
	Bio         string            `toml:"bio"`
	AvatarURL   string            `toml:"avatar_url"`
	BannerURL   string            `toml:"banner_url"`
	Location    string            `toml:"location"`
	Languages   []string          `toml:"languages"`
	Specialties []string          `toml:"specialties"`
	SocialLinks map[string]string `toml:"social_links"`
	Platforms   []fixturePlatform `toml:"platform"`
	Works       []fixtureWork     `toml:"work"`
}

type fixturePlatform struct {
	Name           string  `toml:"name"`
	URL            string  `toml:"url"`
	Followers      int64   `toml:"followers"`
	MonthlyViews   int64   `toml:"monthly_views"`
	TotalViews     int64   `toml:"total_views"`
	EngagementRate float64 `toml:"engagement_rate"`
}

type fixtureWork struct {
	Title        string `toml:"title"`
	Description  string `toml:"description"`
	Type         string `toml:"type"`
	URL          string `toml:"url"`
	ThumbnailURL string `toml:"thumbnail_url"`
	ViewCount    int64  `toml:"view_count"`
	Featured     bool   `toml:"featured"`
}

// Fixtures serves showcase profiles from a static TOML document. It
// implements Reader so it can stand in for the database.
type Fixtures struct {
	seeds  []bootstrap.IPSeed
	bySlug map[string]int
	byID   map[uint]int
}

func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixturesFile reads fixtures from path, or the embedded set when path is empty.
func LoadFixturesFile(path string) (*Fixtures, error) {
	if path == "" {
		return DefaultFixtures()
	}

	var file fixtureFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures %s: %w", path, err)
	}
	return newFixtures(file)
}

func ParseFixtures(data []byte) (*Fixtures, error) {
	var file fixtureFile
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return newFixtures(file)
}

func newFixtures(file fixtureFile) (*Fixtures, error) {
	f := &Fixtures{
		bySlug: make(map[string]int, len(file.Profiles)),
		byID:   make(map[uint]int, len(file.Profiles)),
	}

	for i, p := range file.Profiles {
		if p.Slug == "" {
			return nil, fmt.Errorf("fixture profile %d has no slug", i)
		}
		if _, dup := f.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate fixture slug %q", p.Slug)
		}
		if p.ID == 0 {
			return nil, fmt.Errorf("fixture profile %q has no id", p.Slug)
		}
		if _, dup := f.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate fixture id %d", p.ID)
		}

		f.bySlug[p.Slug] = len(f.seeds)
		f.byID[p.ID] = len(f.seeds)
		f.seeds = append(f.seeds, p.toSeed())
	}
	return f, nil
}

func (p fixtureProfile) toSeed() bootstrap.IPSeed {
	seed := bootstrap.IPSeed{
		Profile: entity.IPProfile{
			ID:          p.ID,
			Name:        p.Name,
			Slug:        p.Slug,
			DisplayName: p.DisplayName,
			Title:       p.Title,
			Slogan:      p.Slogan,
			Bio:         p.Bio,
			AvatarURL:   p.AvatarURL,
			BannerURL:   p.BannerURL,
			Location:    p.Location,
			Languages:   jsonfield.FromSlice(p.Languages),
			Specialties: jsonfield.FromSlice(p.Specialties),
			SocialLinks: jsonfield.FromMap(p.SocialLinks),
			Status:      entity.IPStatusActive,
		},
	}

	for i, pl := range p.Platforms {
		seed.Platforms = append(seed.Platforms, entity.PlatformStat{
			ID:             uint(i + 1),
			IPID:           p.ID,
			PlatformName:   pl.Name,
			PlatformURL:    pl.URL,
			FollowersCount: pl.Followers,
			EngagementRate: pl.EngagementRate,
			MonthlyViews:   pl.MonthlyViews,
			TotalViews:     pl.TotalViews,
		})
	}

	for i, w := range p.Works {
		workType := w.Type
		if workType == "" {
			workType = "video"
		}
		seed.Works = append(seed.Works, entity.IPWork{
			ID:           uint(i + 1),
			IPID:         p.ID,
			Title:        w.Title,
			Description:  w.Description,
			Type:         workType,
			URL:          w.URL,
			ThumbnailURL: w.ThumbnailURL,
			ViewCount:    w.ViewCount,
			Status:       entity.WorkStatusPublished,
			Featured:     w.Featured,
		})
	}
	return seed
}

// Seeds returns copies of every fixture profile for database seeding.
func (f *Fixtures) Seeds() []bootstrap.IPSeed {
	out := make([]bootstrap.IPSeed, len(f.seeds))
	for i, s := range f.seeds {
		out[i] = bootstrap.IPSeed{
			Profile:   s.Profile,
			Platforms: append([]entity.PlatformStat(nil), s.Platforms...),
			Works:     append([]entity.IPWork(nil), s.Works...),
		}
	}
	return out
}

// Slugs lists fixture profiles in document order. The home page features them.
func (f *Fixtures) Slugs() []string {
	out := make([]string, 0, len(f.seeds))
	for _, s := range f.seeds {
		out = append(out, s.Profile.Slug)
	}
	return out
}

func (f *Fixtures) ProfileBySlug(_ context.Context, slug string) (*entity.IPProfile, error) {
	i, ok := f.bySlug[slug]
	if !ok {
		return nil, ErrProfileNotFound
	}
	profile := f.seeds[i].Profile
	return &profile, nil
}

func (f *Fixtures) PlatformStats(_ context.Context, ipID uint) ([]entity.PlatformStat, error) {
	i, ok := f.byID[ipID]
	if !ok {
		return nil, nil
	}
	return append([]entity.PlatformStat(nil), f.seeds[i].Platforms...), nil
}

func (f *Fixtures) Works(_ context.Context, ipID uint) ([]entity.IPWork, error) {
	i, ok := f.byID[ipID]
	if !ok {
		return nil, nil
	}
	return append([]entity.IPWork(nil), f.seeds[i].Works...), nil
}

func (f *Fixtures) Achievements(context.Context, uint) ([]entity.Achievement, error) {
	return nil, nil
}

package ipprofile

import (
	"context"
	"errors"
	"testing"
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/ipprofile/dto"
	"clabs.com/website/internal/modules/ipprofile/repository"
	"clabs.com/website/internal/testutil"
	"clabs.com/website/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (ProfileService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewProfileService(repository.NewRepository(db), zap.NewNop()), db
}

func ptr[T any](v T) *T { return &v }

func createProfile(t *testing.T, svc ProfileService, slug string) uint {
	t.Helper()
	id, err := svc.CreateProfile(context.Background(), dto.CreateProfileRequest{
		Name:        "Test " + slug,
		Slug:        slug,
		DisplayName: "Display " + slug,
		Languages:   []string{"中文"},
	})
	if err != nil {
		t.Fatalf("CreateProfile(%s) error = %v", slug, err)
	}
	return id
}

func fullUpdate(slug string) dto.UpdateProfileRequest {
	return dto.UpdateProfileRequest{
		Name:          ptr("Lana"),
		Slug:          ptr(slug),
		DisplayName:   ptr("Lana Yang"),
		Title:         ptr("Web3 投资专家"),
		Slogan:        ptr(""),
		Bio:           ptr("bio"),
		AvatarURL:     ptr(""),
		BannerURL:     ptr(""),
		CoverImageURL: ptr(""),
		Location:      ptr("Singapore"),
		Languages:     ptr([]string{"English"}),
		Specialties:   ptr([]string{"DeFi"}),
		SocialLinks:   ptr(map[string]string{"twitter": "https://twitter.com/lanayangcrypto"}),
		Status:        ptr("inactive"),
	}
}

func TestCreateProfileSlugUniqueness(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	createProfile(t, svc, "giant-cutie")

	_, err := svc.CreateProfile(ctx, dto.CreateProfileRequest{Name: "Other", Slug: "giant-cutie", DisplayName: "Other"})
	if !errors.Is(err, apperror.ErrBadRequest) {
		t.Fatalf("duplicate slug error = %v, want bad request", err)
	}

	var count int64
	db.Model(&entity.IPProfile{}).Count(&count)
	if count != 1 {
		t.Errorf("profile count = %d, want 1", count)
	}
}

func TestCreateProfileDefaults(t *testing.T) {
	svc, _ := newTestService(t)
	id := createProfile(t, svc, "lana")

	got, err := svc.GetProfile(context.Background(), id)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if got.Status != entity.IPStatusActive {
		t.Errorf("Status = %q, want active", got.Status)
	}
	if len(got.Specialties) != 0 || got.Specialties == nil {
		t.Errorf("Specialties = %#v, want empty slice", got.Specialties)
	}
	if got.SocialLinks == nil {
		t.Error("SocialLinks should be an empty map")
	}
}

func TestUpdateProfileOverwritesEveryField(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "lana")

	if err := svc.UpdateProfile(ctx, id, fullUpdate("lana-yang")); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	got, err := svc.GetProfile(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Slug != "lana-yang" || got.Status != "inactive" || got.Location != "Singapore" {
		t.Errorf("profile not overwritten: %+v", got)
	}
	if len(got.Languages) != 1 || got.Languages[0] != "English" {
		t.Errorf("Languages = %v", got.Languages)
	}
	if got.SocialLinks["twitter"] == "" {
		t.Errorf("SocialLinks = %v", got.SocialLinks)
	}
}

func TestUpdateProfileErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	first := createProfile(t, svc, "giant-cutie")
	createProfile(t, svc, "lana")

	if err := svc.UpdateProfile(ctx, first, fullUpdate("lana")); !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("slug collision error = %v, want bad request", err)
	}
	// keeping its own slug is fine
	if err := svc.UpdateProfile(ctx, first, fullUpdate("giant-cutie")); err != nil {
		t.Errorf("own slug error = %v", err)
	}
	if err := svc.UpdateProfile(ctx, 999, fullUpdate("ghost")); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing profile error = %v, want not found", err)
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "giant-cutie")
	other := createProfile(t, svc, "lana")

	if err := svc.SavePlatform(ctx, dto.SavePlatformRequest{IPID: id, PlatformName: "Twitter", FollowersCount: 216000}); err != nil {
		t.Fatal(err)
	}
	if err := svc.SavePlatform(ctx, dto.SavePlatformRequest{IPID: other, PlatformName: "TikTok", FollowersCount: 89000}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateWork(ctx, dto.CreateWorkRequest{IPID: id, Title: "Intro"}); err != nil {
		t.Fatal(err)
	}
	db.Create(&entity.Achievement{IPID: id, Title: "100K"})
	db.Create(&entity.AnalyticsSnapshot{IPID: id, Date: time.Now(), Followers: 1})

	if err := svc.DeleteProfile(ctx, id); err != nil {
		t.Fatalf("DeleteProfile() error = %v", err)
	}

	for name, model := range map[string]any{
		"platforms":    &entity.PlatformStat{},
		"works":        &entity.IPWork{},
		"achievements": &entity.Achievement{},
		"analytics":    &entity.AnalyticsSnapshot{},
	} {
		var count int64
		db.Model(model).Where("ip_id = ?", id).Count(&count)
		if count != 0 {
			t.Errorf("%s left behind: %d rows", name, count)
		}
	}

	var remaining int64
	db.Model(&entity.PlatformStat{}).Where("ip_id = ?", other).Count(&remaining)
	if remaining != 1 {
		t.Errorf("other profile lost its platforms")
	}

	if err := svc.DeleteProfile(ctx, id); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete error = %v, want not found", err)
	}
}

func TestSavePlatformUpserts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "giant-cutie")

	req := dto.SavePlatformRequest{IPID: id, PlatformName: "YouTube", FollowersCount: 72100, EngagementRate: 8.9}
	if err := svc.SavePlatform(ctx, req); err != nil {
		t.Fatal(err)
	}
	req.FollowersCount = 80000
	if err := svc.SavePlatform(ctx, req); err != nil {
		t.Fatalf("second SavePlatform() error = %v", err)
	}

	var stats []entity.PlatformStat
	db.Where("ip_id = ?", id).Find(&stats)
	if len(stats) != 1 {
		t.Fatalf("platform rows = %d, want 1", len(stats))
	}
	if stats[0].FollowersCount != 80000 {
		t.Errorf("FollowersCount = %d, want 80000", stats[0].FollowersCount)
	}

	if err := svc.SavePlatform(ctx, dto.SavePlatformRequest{IPID: 999, PlatformName: "X"}); !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("unknown ip_id error = %v, want bad request", err)
	}
}

func TestUpdateAndDeletePlatform(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "lana")
	if err := svc.SavePlatform(ctx, dto.SavePlatformRequest{IPID: id, PlatformName: "YouTube"}); err != nil {
		t.Fatal(err)
	}
	var stat entity.PlatformStat
	db.Where("ip_id = ?", id).First(&stat)

	update := dto.UpdatePlatformRequest{
		PlatformName:   ptr("YouTube"),
		PlatformURL:    ptr("https://youtube.com/@LanaYangcrypto"),
		FollowersCount: ptr(int64(156000)),
		EngagementRate: ptr(12.3),
		MonthlyViews:   ptr(int64(15200000)),
		TotalViews:     ptr(int64(0)),
	}
	if err := svc.UpdatePlatform(ctx, stat.ID, update); err != nil {
		t.Fatalf("UpdatePlatform() error = %v", err)
	}
	if err := svc.UpdatePlatform(ctx, 999, update); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing platform error = %v", err)
	}

	platforms, _ := svc.ListPlatforms(ctx, id)
	if len(platforms) != 1 || platforms[0].FollowersCount != 156000 {
		t.Fatalf("platforms = %+v", platforms)
	}

	if err := svc.DeletePlatform(ctx, stat.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeletePlatform(ctx, stat.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
}

func TestWorksLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "lana")

	workID, err := svc.CreateWork(ctx, dto.CreateWorkRequest{IPID: id, Title: "Bitcoin outlook", ViewCount: 1200})
	if err != nil {
		t.Fatalf("CreateWork() error = %v", err)
	}

	works, err := svc.ListWorks(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(works) != 1 || works[0].Type != "video" || works[0].Status != entity.WorkStatusPublished {
		t.Fatalf("defaults not applied: %+v", works)
	}

	err = svc.UpdateWork(ctx, workID, dto.UpdateWorkRequest{
		Title:        ptr("Bitcoin outlook 2026"),
		Description:  ptr(""),
		Type:         ptr("live"),
		URL:          ptr("https://youtube.com/watch?v=1"),
		ThumbnailURL: ptr(""),
		ViewCount:    ptr(int64(0)),
		LikeCount:    ptr(int64(0)),
		Status:       ptr("hidden"),
		Featured:     ptr(false),
	})
	if err != nil {
		t.Fatalf("UpdateWork() error = %v", err)
	}

	published, _ := svc.ListPublishedWorks(ctx, 10)
	if len(published) != 0 {
		t.Errorf("hidden work listed as published")
	}

	list, _ := svc.ListProfiles(ctx)
	if len(list) != 1 || list[0].WorksCount != 0 {
		t.Errorf("works summary should only count published works: %+v", list)
	}

	if err := svc.DeleteWork(ctx, workID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteWork(ctx, workID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
	if _, err := svc.ListWorks(ctx, 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("works of missing profile error = %v", err)
	}
}

func TestListProfilesAggregates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "giant-cutie")
	createProfile(t, svc, "empty")

	for _, p := range []dto.SavePlatformRequest{
		{IPID: id, PlatformName: "YouTube 行业", FollowersCount: 72100},
		{IPID: id, PlatformName: "Twitter", FollowersCount: 216000},
	} {
		if err := svc.SavePlatform(ctx, p); err != nil {
			t.Fatal(err)
		}
	}
	for _, views := range []int64{100, 250} {
		if _, err := svc.CreateWork(ctx, dto.CreateWorkRequest{IPID: id, Title: "w", ViewCount: views}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := svc.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
	byslug := map[string]dto.ProfileSummaryResponse{}
	for _, p := range list {
		byslug[p.Slug] = p
	}

	gc := byslug["giant-cutie"]
	if gc.PlatformCount != 2 || gc.TotalFollowers != 288100 || gc.WorksCount != 2 || gc.TotalViews != 350 {
		t.Errorf("giant-cutie aggregates = %+v", gc)
	}
	empty := byslug["empty"]
	if empty.PlatformCount != 0 || empty.TotalFollowers != 0 {
		t.Errorf("empty aggregates = %+v", empty)
	}
}

func TestMalformedJSONColumnsDoNotBreakReads(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "broken")

	db.Exec("UPDATE ip_profiles SET social_links = ?, languages = ? WHERE id = ?", "not json", "[oops", id)

	got, err := svc.GetProfile(ctx, id)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if len(got.SocialLinks) != 0 || len(got.Languages) != 0 {
		t.Errorf("malformed columns should read as empty: %+v", got)
	}

	if _, err := svc.ListProfiles(ctx); err != nil {
		t.Fatalf("ListProfiles() error = %v", err)
	}
}

func TestAnalytics(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	id := createProfile(t, svc, "lana")

	_ = svc.SavePlatform(ctx, dto.SavePlatformRequest{IPID: id, PlatformName: "YouTube", FollowersCount: 156000, EngagementRate: 12, MonthlyViews: 100})
	_ = svc.SavePlatform(ctx, dto.SavePlatformRequest{IPID: id, PlatformName: "TikTok", FollowersCount: 89000, EngagementRate: 16, MonthlyViews: 50})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 35; i++ {
		db.Create(&entity.AnalyticsSnapshot{IPID: id, Date: base.AddDate(0, 0, i), Followers: int64(i)})
	}

	res, err := svc.Analytics(ctx, id)
	if err != nil {
		t.Fatalf("Analytics() error = %v", err)
	}
	if res.TotalFollowers != 245000 || res.TotalMonthlyViews != 150 || res.AvgEngagement != 14 {
		t.Errorf("totals = %d/%d/%v", res.TotalFollowers, res.TotalMonthlyViews, res.AvgEngagement)
	}
	if res.Platforms[0].PlatformName != "YouTube" {
		t.Errorf("platforms should be ordered by followers")
	}
	if len(res.Snapshots) != 30 {
		t.Fatalf("snapshots = %d, want 30", len(res.Snapshots))
	}
	if res.Snapshots[0].Date != "2026-02-04" {
		t.Errorf("latest snapshot first, got %s", res.Snapshots[0].Date)
	}

	if _, err := svc.Analytics(ctx, 999); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing profile error = %v", err)
	}
}

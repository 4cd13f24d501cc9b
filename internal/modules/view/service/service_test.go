package view

import (
	"context"
	"os"
	"testing"
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/tutorial/repository"
	"clabs.com/website/internal/testutil"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func seedTutorial(t *testing.T, db *gorm.DB) uint {
	t.Helper()
	tut := entity.Tutorial{Title: "t", Slug: "t", Content: "c", Category: "basics", Difficulty: "beginner", ReadTime: 1, Status: entity.TutorialStatusPublished}
	if err := db.Create(&tut).Error; err != nil {
		t.Fatalf("seed tutorial: %v", err)
	}
	return tut.ID
}

func views(t *testing.T, db *gorm.DB, id uint) int64 {
	t.Helper()
	var tut entity.Tutorial
	if err := db.First(&tut, id).Error; err != nil {
		t.Fatalf("load tutorial: %v", err)
	}
	return tut.Views
}

func TestDirectViewService(t *testing.T) {
	db := testutil.NewDB(t)
	id := seedTutorial(t, db)
	svc := NewDirectViewService(repository.NewTutorialRepository(db))

	for i := 0; i < 3; i++ {
		if err := svc.IncrementView(context.Background(), id, "10.0.0.1"); err != nil {
			t.Fatalf("IncrementView() error = %v", err)
		}
	}
	if got := views(t, db, id); got != 3 {
		t.Errorf("views = %d, want 3", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.StartViewSyncWorker(ctx)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

func TestKeys(t *testing.T) {
	if got := viewsKey(12); got != "tutorial:views:12" {
		t.Errorf("viewsKey = %q", got)
	}
	if got := viewerKeyFor(12, "10.0.0.1"); got != "tutorial:viewer:12:10.0.0.1" {
		t.Errorf("viewerKeyFor = %q", got)
	}
}

// Runs against a real redis when TEST_REDIS_URL is set.
func TestRedisViewServiceSync(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("ParseURL() error = %v", err)
	}
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })

	db := testutil.NewDB(t)
	id := seedTutorial(t, db)
	ctx := context.Background()
	rdb.Del(ctx, pendingKey, viewsKey(id), viewerKeyFor(id, "a"), viewerKeyFor(id, "b"))

	svc := NewViewService(rdb, repository.NewTutorialRepository(db), time.Minute, zap.NewNop()).(*viewService)
	for _, viewer := range []string{"a", "a", "b", ""} {
		if err := svc.IncrementView(ctx, id, viewer); err != nil {
			t.Fatalf("IncrementView() error = %v", err)
		}
	}

	svc.syncViewsToDB(ctx)
	if got := views(t, db, id); got != 3 {
		t.Errorf("views = %d, want 3 (repeat viewer deduplicated)", got)
	}
	if n, _ := rdb.SCard(ctx, pendingKey).Result(); n != 0 {
		t.Errorf("pending set size = %d", n)
	}
}

package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clabs.com/website/internal/modules/tutorial/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	pendingKey     = "pending:tutorial_views"
	viewerCooldown = time.Hour
)

type ViewService interface {
	// IncrementView counts one read of a tutorial. viewerKey identifies the
	// reader for de-duplication and may be empty.
	IncrementView(ctx context.Context, tutorialID uint, viewerKey string) error
	// StartViewSyncWorker blocks until ctx is done.
	StartViewSyncWorker(ctx context.Context)
}

func viewsKey(tutorialID uint) string {
	return fmt.Sprintf("tutorial:views:%d", tutorialID)
}

func viewerKeyFor(tutorialID uint, viewer string) string {
	return fmt.Sprintf("tutorial:viewer:%d:%s", tutorialID, viewer)
}

type viewService struct {
	redisClient  *redis.Client
	tutorialRepo repository.TutorialRepository
	interval     time.Duration
	logger       *zap.Logger
}

func NewViewService(redisClient *redis.Client, tutorialRepo repository.TutorialRepository, interval time.Duration, logger *zap.Logger) ViewService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &viewService{
		redisClient:  redisClient,
		tutorialRepo: tutorialRepo,
		interval:     interval,
		logger:       logger,
	}
}

func (s *viewService) IncrementView(ctx context.Context, tutorialID uint, viewer string) error {
	if viewer != "" {
		first, err := s.redisClient.SetNX(ctx, viewerKeyFor(tutorialID, viewer), "viewed", viewerCooldown).Result()
		if err != nil {
			return fmt.Errorf("failed to mark viewer: %w", err)
		}
		if !first {
			return nil
		}
	}

	pipe := s.redisClient.TxPipeline()
	pipe.Incr(ctx, viewsKey(tutorialID))
	pipe.SAdd(ctx, pendingKey, strconv.FormatUint(uint64(tutorialID), 10))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to increment view: %w", err)
	}
	return nil
}

func (s *viewService) syncViewsToDB(ctx context.Context) {
	ids, err := s.redisClient.SMembers(ctx, pendingKey).Result()
	if err != nil {
		s.logger.Error("failed to read pending tutorial views", zap.Error(err))
		return
	}
	if len(ids) == 0 {
		return
	}

	synced := 0
	for _, raw := range ids {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.logger.Warn("invalid pending tutorial id", zap.String("id", raw))
			s.redisClient.SRem(ctx, pendingKey, raw)
			continue
		}

		// remove from pending before draining so concurrent increments re-add it
		if err := s.redisClient.SRem(ctx, pendingKey, raw).Err(); err != nil {
			s.logger.Error("failed to clear pending tutorial view", zap.String("id", raw), zap.Error(err))
			continue
		}

		count, err := s.redisClient.GetDel(ctx, viewsKey(uint(id))).Int64()
		if errors.Is(err, redis.Nil) || count == 0 {
			continue
		}
		if err != nil {
			s.logger.Error("failed to read tutorial view count", zap.Uint64("id", id), zap.Error(err))
			continue
		}

		if err := s.tutorialRepo.AddViews(ctx, uint(id), count); err != nil {
			s.logger.Error("failed to persist tutorial views", zap.Uint64("id", id), zap.Error(err))
			// put the views back for the next sync
			s.redisClient.IncrBy(ctx, viewsKey(uint(id)), count)
			s.redisClient.SAdd(ctx, pendingKey, raw)
			continue
		}
		synced++
	}

	s.logger.Info("synced tutorial views", zap.Int("tutorials", synced))
}

func (s *viewService) StartViewSyncWorker(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.syncViewsToDB(ctx)
		case <-ctx.Done():
			// final flush with a fresh context so shutdown does not drop counts
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s.syncViewsToDB(flushCtx)
			cancel()
			return
		}
	}
}

type directViewService struct {
	tutorialRepo repository.TutorialRepository
}

// NewDirectViewService writes every view straight to the database.
func NewDirectViewService(tutorialRepo repository.TutorialRepository) ViewService {
	return &directViewService{tutorialRepo: tutorialRepo}
}

func (s *directViewService) IncrementView(ctx context.Context, tutorialID uint, _ string) error {
	return s.tutorialRepo.AddViews(ctx, tutorialID, 1)
}

func (s *directViewService) StartViewSyncWorker(ctx context.Context) {
	<-ctx.Done()
}

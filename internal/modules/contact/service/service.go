package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/contact/dto"
	"clabs.com/website/internal/modules/contact/repository"
	"clabs.com/website/pkg/ratelimiter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	rateLimitAction = "contact"
	submitInterval  = 30 * time.Second
)

type ContactService interface {
	Submit(ctx context.Context, req dto.ContactRequest, clientIP string) error
	Recent(ctx context.Context, limit int) ([]entity.ContactMessage, error)
}

type contactService struct {
	repo   repository.ContactRepository
	redis  *redis.Client
	logger *zap.Logger
}

// NewContactService stores submissions. redisClient may be nil, which
// disables per-address throttling.
func NewContactService(repo repository.ContactRepository, redisClient *redis.Client, logger *zap.Logger) ContactService {
	return &contactService{repo: repo, redis: redisClient, logger: logger}
}

func (s *contactService) Submit(ctx context.Context, req dto.ContactRequest, clientIP string) error {
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redis, clientIP, rateLimitAction, submitInterval)
	if err != nil {
		s.logger.Warn("contact rate limit check failed", zap.Error(err))
	} else if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redis, clientIP, rateLimitAction)
		return &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("please wait %d seconds before sending another message", int(ttl.Seconds())+1),
			RetryAfter: ttl,
		}
	}

	msg := &entity.ContactMessage{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Company:  strings.TrimSpace(req.Company),
		Project:  req.Project,
		Message:  strings.TrimSpace(req.Message),
		ClientIP: clientIP,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return fmt.Errorf("store contact message: %w", err)
	}

	s.logger.Info("contact form submitted",
		zap.Uint("id", msg.ID),
		zap.String("email", msg.Email),
		zap.String("company", msg.Company),
		zap.String("project", msg.Project),
	)
	return nil
}

func (s *contactService) Recent(ctx context.Context, limit int) ([]entity.ContactMessage, error) {
	return s.repo.FindRecent(ctx, limit)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/session/repository"
	"clabs.com/website/pkg/apperror"
	"clabs.com/website/pkg/ratelimiter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = apperror.Unauthorized("invalid username or password")

type AuthService interface {
	// Login verifies credentials and opens a session. clientKey identifies the
	// caller for login throttling.
	Login(ctx context.Context, username, password, clientKey string) (*entity.AdminSession, error)
	// Logout removes the session. Unknown or empty tokens are not an error.
	Logout(ctx context.Context, sessionID string) error
	Validate(ctx context.Context, sessionID string) (bool, error)
}

type Options struct {
	TTL            time.Duration
	LoginRateLimit time.Duration
	Redis          *redis.Client
	Now            func() time.Time
	NewToken       func() (string, error)
}

type authService struct {
	repo      repository.SessionRepository
	verifier  Verifier
	logger    *zap.Logger
	redis     *redis.Client
	ttl       time.Duration
	rateLimit time.Duration
	now       func() time.Time
	newToken  func() (string, error)
}

func NewAuthService(repo repository.SessionRepository, verifier Verifier, logger *zap.Logger, opts Options) AuthService {
	s := &authService{
		repo:      repo,
		verifier:  verifier,
		logger:    logger,
		redis:     opts.Redis,
		ttl:       opts.TTL,
		rateLimit: opts.LoginRateLimit,
		now:       opts.Now,
		newToken:  opts.NewToken,
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newToken == nil {
		s.newToken = NewToken
	}
	return s
}

func (s *authService) Login(ctx context.Context, username, password, clientKey string) (*entity.AdminSession, error) {
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redis, clientKey, "login", s.rateLimit)
	if err != nil {
		// a broken limiter must not lock the administrator out
		s.logger.Warn("login rate limit unavailable", zap.Error(err))
		allowed = true
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redis, clientKey, "login")
		return nil, &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("too many login attempts, please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	if !s.verifier.Verify(username, password) {
		s.logger.Info("admin login rejected", zap.String("username", username), zap.String("client", clientKey))
		return nil, ErrInvalidCredentials
	}
	_ = ratelimiter.ClearRateLimit(ctx, s.redis, clientKey, "login")

	now := s.now()
	if removed, err := s.repo.DeleteExpired(ctx, now); err != nil {
		return nil, fmt.Errorf("purge expired sessions: %w", err)
	} else if removed > 0 {
		s.logger.Debug("expired sessions purged", zap.Int64("count", removed))
	}

	token, err := s.newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	session := &entity.AdminSession{
		SessionID: token,
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("admin login", zap.String("username", username))
	return session, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.repo.Delete(ctx, sessionID)
}

func (s *authService) Validate(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	_, err := s.repo.FindValid(ctx, sessionID, s.now())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

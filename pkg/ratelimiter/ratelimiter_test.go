package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"clabs.com/website/pkg/apperror"
)

func TestNilClientNeverLimits(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		allowed, err := CheckAndSetRateLimit(ctx, nil, "10.0.0.1", "login", time.Minute)
		if err != nil || !allowed {
			t.Fatalf("attempt %d: allowed=%v err=%v", i, allowed, err)
		}
	}
	if err := ClearRateLimit(ctx, nil, "10.0.0.1", "login"); err != nil {
		t.Fatalf("ClearRateLimit() error = %v", err)
	}
}

func TestRateLimitErrorUnwrapsToSentinel(t *testing.T) {
	var err error = &RateLimitError{Message: "slow down", RetryAfter: time.Second}
	if !errors.Is(err, apperror.ErrRateLimitExceeded) {
		t.Fatal("RateLimitError should match ErrRateLimitExceeded")
	}
	if got := apperror.Message(err); got != "slow down" {
		t.Errorf("Message() = %q", got)
	}
}

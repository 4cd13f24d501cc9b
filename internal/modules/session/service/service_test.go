package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clabs.com/website/internal/entity"
	"clabs.com/website/internal/modules/session/repository"
	"clabs.com/website/internal/testutil"
	"clabs.com/website/pkg/apperror"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type staticVerifier struct {
	username, password string
}

func (v staticVerifier) Verify(username, password string) bool {
	return username == v.username && password == v.password
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestService(t *testing.T) (AuthService, *gorm.DB, *fakeClock) {
	t.Helper()
	db := testutil.NewDB(t)
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)}
	svc := NewAuthService(
		repository.NewSessionRepository(db),
		staticVerifier{username: "admin", password: "clabs2024"},
		zap.NewNop(),
		Options{TTL: 24 * time.Hour, Now: clock.Now},
	)
	return svc, db, clock
}

func TestLoginCreatesSession(t *testing.T) {
	svc, db, clock := newTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin", "clabs2024", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(session.SessionID) != 64 {
		t.Errorf("session id length = %d, want 64", len(session.SessionID))
	}
	if !session.ExpiresAt.Equal(clock.t.Add(24 * time.Hour)) {
		t.Errorf("ExpiresAt = %v", session.ExpiresAt)
	}

	var count int64
	db.Model(&entity.AdminSession{}).Count(&count)
	if count != 1 {
		t.Errorf("session rows = %d, want 1", count)
	}

	ok, err := svc.Validate(ctx, session.SessionID)
	if err != nil || !ok {
		t.Fatalf("Validate() = %v, %v", ok, err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, db, _ := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"wrong username", "root", "clabs2024"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tt.username, tt.password, "127.0.0.1")
			if !errors.Is(err, apperror.ErrUnauthorized) {
				t.Fatalf("Login() error = %v, want unauthorized", err)
			}
		})
	}

	var count int64
	db.Model(&entity.AdminSession{}).Count(&count)
	if count != 0 {
		t.Errorf("failed logins created %d sessions", count)
	}
}

func TestSessionExpiry(t *testing.T) {
	svc, db, clock := newTestService(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "admin", "clabs2024", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	clock.t = clock.t.Add(25 * time.Hour)
	ok, err := svc.Validate(ctx, first.SessionID)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if ok {
		t.Fatal("expired session should not validate")
	}

	// the next login purges expired rows
	if _, err := svc.Login(ctx, "admin", "clabs2024", "127.0.0.1"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	var count int64
	db.Model(&entity.AdminSession{}).Where("session_id = ?", first.SessionID).Count(&count)
	if count != 0 {
		t.Error("expired session row should have been deleted")
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Login(ctx, "admin", "clabs2024", "127.0.0.1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Logout(ctx, session.SessionID); err != nil {
			t.Fatalf("Logout() #%d error = %v", i+1, err)
		}
	}
	if err := svc.Logout(ctx, ""); err != nil {
		t.Fatalf("Logout(empty) error = %v", err)
	}

	ok, _ := svc.Validate(ctx, session.SessionID)
	if ok {
		t.Fatal("session should be invalid after logout")
	}
	if ok, _ := svc.Validate(ctx, ""); ok {
		t.Fatal("empty token should never validate")
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		query  string
		cookie string
		want   string
		logout string
	}{
		{"header wins", "h", "q", "c", "h", "h"},
		{"query before cookie", "", "q", "c", "q", "c"},
		{"cookie only", "", "", "c", "c", "c"},
		{"nothing", "", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/admin"
			if tt.query != "" {
				target += "?session=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(HeaderName, tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tt.cookie})
			}

			if got := TokenFromRequest(req); got != tt.want {
				t.Errorf("TokenFromRequest() = %q, want %q", got, tt.want)
			}
			if got := LogoutToken(req); got != tt.logout {
				t.Errorf("LogoutToken() = %q, want %q", got, tt.logout)
			}
		})
	}
}

func TestBcryptVerifier(t *testing.T) {
	v, err := NewPasswordVerifier("admin", "s3cret")
	if err != nil {
		t.Fatalf("NewPasswordVerifier() error = %v", err)
	}
	if !v.Verify("admin", "s3cret") {
		t.Error("valid credentials rejected")
	}
	if v.Verify("admin", "S3cret") || v.Verify("Admin", "s3cret") {
		t.Error("invalid credentials accepted")
	}

	if _, err := NewBcryptVerifier("admin", "not-a-hash"); err == nil {
		t.Error("NewBcryptVerifier() should reject a malformed hash")
	}
}

package session

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

const (
	HeaderName = "x-session-id"
	QueryName  = "session"
	CookieName = "admin-session"
)

// NewToken returns 32 random bytes, hex encoded.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// TokenFromRequest reads the session token from the header, then the query
// string, then the cookie.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(HeaderName); token != "" {
		return token
	}
	if token := r.URL.Query().Get(QueryName); token != "" {
		return token
	}
	return tokenFromCookie(r)
}

// LogoutToken reads the token from the header, then the cookie.
func LogoutToken(r *http.Request) string {
	if token := r.Header.Get(HeaderName); token != "" {
		return token
	}
	return tokenFromCookie(r)
}

func tokenFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

package session

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Verifier checks administrator credentials.
type Verifier interface {
	Verify(username, password string) bool
}

type bcryptVerifier struct {
	username string
	hash     []byte
}

// NewBcryptVerifier accepts a stored bcrypt hash for the single admin account.
func NewBcryptVerifier(username, passwordHash string) (Verifier, error) {
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &bcryptVerifier{username: username, hash: []byte(passwordHash)}, nil
}

// NewPasswordVerifier hashes a plain development password at startup.
func NewPasswordVerifier(username, password string) (Verifier, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &bcryptVerifier{username: username, hash: hash}, nil
}

func (v *bcryptVerifier) Verify(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
	return userOK && passOK
}

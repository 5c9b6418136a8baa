package model

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"camargue/shared/model"
)

const (
	TableName  = "verification_tokens"
	EntityName = "verification_token"

	FieldID        = "id"
	FieldUserID    = "user_id"
	FieldToken     = "token"
	FieldExpiresAt = "expires_at"
)

const tokenBytes = 32

type VerificationToken struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
	model.Metadata
}

// Expired reports whether the token is past its expiry at the given time.
func (t *VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// NewToken returns a URL-safe random token suitable for verification links.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate verification token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

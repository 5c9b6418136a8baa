package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"camargue/infras/jwt"
	"camargue/internal/domains/auth/model"
	userModel "camargue/internal/domains/user/model"
	notifModel "camargue/internal/notifications/model"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *RegisterRequest) ToUserModel(actor, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		Email:      strings.ToLower(r.Email),
		Password:   hashedPassword,
		IsVerified: false,
		Active:     true,
		Metadata:   gModel.NewMetadata(timezone.Now(), actor),
	}
}

func (r *RegisterRequest) ToTokenModel(userID, token string, expiresAt time.Time) model.VerificationToken {
	return model.VerificationToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		Metadata:  gModel.NewMetadata(timezone.Now(), userID),
	}
}

type RegisterResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	// Verification carries the pending notification for the web layer to
	// dispatch once the registration has been committed. Never serialized.
	Verification notifModel.VerificationRequestedEvent `json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type VerifyEmailResponse struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

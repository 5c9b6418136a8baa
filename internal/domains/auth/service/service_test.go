package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"camargue/config"
	"camargue/infras/jwt"
	jwtMocks "camargue/infras/jwt/mocks"
	"camargue/infras/otel/mocks"
	authMocks "camargue/internal/domains/auth/mocks"
	authModel "camargue/internal/domains/auth/model"
	"camargue/internal/domains/auth/model/dto"
	"camargue/internal/domains/auth/service"
	userMocks "camargue/internal/domains/user/mocks"
	userModel "camargue/internal/domains/user/model"
	gDto "camargue/shared/dto"
	"camargue/shared/failure"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

// bcrypt hash of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func newService(t *testing.T) (
	service.Auth,
	*userMocks.MockUser,
	*authMocks.MockVerificationToken,
	*jwtMocks.MockJWT,
) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockTokenRepo := authMocks.NewMockVerificationToken(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Auth.VerificationTokenTTLHours = 24

	svc := service.New(mockUserRepo, mockTokenRepo, cfg, mockOtel, mockJWT)

	return svc, mockUserRepo, mockTokenRepo, mockJWT
}

func validUser() userModel.User {
	return userModel.User{
		ID:         "user-id-123",
		Email:      "skipper@example.com",
		Password:   passwordHash,
		IsVerified: true,
		Active:     true,
		Metadata:   gModel.NewMetadata(timezone.Now(), "system"),
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(user *userMocks.MockUser, token *authMocks.MockVerificationToken)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				Email:    "skipper@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, token *authMocks.MockVerificationToken) {
				user.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				user.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				token.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			req: dto.RegisterRequest{
				Email:    "skipper@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, _ *authMocks.MockVerificationToken) {
				user.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "weak password",
			req: dto.RegisterRequest{
				Email:    "skipper@example.com",
				Password: "short",
			},
			setupMock: func(user *userMocks.MockUser, _ *authMocks.MockVerificationToken) {
				user.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUserRepo, mockTokenRepo, _ := newService(t)
			tt.setupMock(mockUserRepo, mockTokenRepo)

			res, err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Email, res.Email)
			assert.NotEmpty(t, res.UserID)
			assert.NotEmpty(t, res.Verification.Token)
			assert.Contains(t, res.Verification.VerifyURL, res.Verification.Token)
		})
	}
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	svc, mockUserRepo, mockTokenRepo, _ := newService(t)

	var stored userModel.User

	mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user userModel.User) error {
			stored = user

			return nil
		})
	mockTokenRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "Skipper@Example.COM",
		Password: "password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "skipper@example.com", stored.Email)
	assert.Equal(t, "skipper@example.com", res.Email)
	assert.Equal(t, "skipper@example.com", res.Verification.Email)
}

func TestAuthService_Register_RacingDuplicate(t *testing.T) {
	// A concurrent registration that wins the race surfaces through the
	// unique index, not the existence pre-check. The loser must see the
	// same answer as a plain duplicate.
	svc, mockUserRepo, mockTokenRepo, _ := newService(t)

	mockUserRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	mockUserRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	mockTokenRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Register(context.Background(), dto.RegisterRequest{
		Email:    "skipper@example.com",
		Password: "password",
	})

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "email already registered")
}

func TestAuthService_VerifyEmail(t *testing.T) {
	user := validUser()
	user.IsVerified = false

	t.Run("successful verification", func(t *testing.T) {
		svc, mockUserRepo, mockTokenRepo, _ := newService(t)

		verification := authModel.VerificationToken{
			ID:        "token-id-1",
			UserID:    user.ID,
			Token:     "opaque-token",
			ExpiresAt: timezone.Now().Add(time.Hour),
		}

		mockTokenRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(verification, nil)
		mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
		mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		mockTokenRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.VerifyEmail(context.Background(), "opaque-token")

		assert.NoError(t, err)
		assert.True(t, res.Verified)
		assert.Equal(t, user.Email, res.Email)
	})

	t.Run("unknown token", func(t *testing.T) {
		svc, _, mockTokenRepo, _ := newService(t)

		mockTokenRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(authModel.VerificationToken{}, nil)

		_, err := svc.VerifyEmail(context.Background(), "no-such-token")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("expired token is deleted and rejected", func(t *testing.T) {
		svc, _, mockTokenRepo, _ := newService(t)

		verification := authModel.VerificationToken{
			ID:        "token-id-2",
			UserID:    user.ID,
			Token:     "stale-token",
			ExpiresAt: timezone.Now().Add(-time.Hour),
		}

		mockTokenRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(verification, nil)
		mockTokenRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.VerifyEmail(context.Background(), "stale-token")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(user *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful login",
			req: dto.LoginRequest{
				Email:    "skipper@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				jwtSvc.EXPECT().
					GenerateTokenPair("user-id-123", "skipper@example.com", true).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				user.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantErr: false,
		},
		{
			name: "last login write failure does not fail login",
			req: dto.LoginRequest{
				Email:    "skipper@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				jwtSvc.EXPECT().
					GenerateTokenPair("user-id-123", "skipper@example.com", true).
					Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
				user.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantErr: false,
		},
		{
			name: "non-existent email",
			req: dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req: dto.LoginRequest{
				Email:    "skipper@example.com",
				Password: "wrong-password",
			},
			setupMock: func(user *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "unverified account refused distinctly",
			req: dto.LoginRequest{
				Email:    "skipper@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				unverified := validUser()
				unverified.IsVerified = false

				user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(unverified, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "deactivated account",
			req: dto.LoginRequest{
				Email:    "skipper@example.com",
				Password: "password",
			},
			setupMock: func(user *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				inactive := validUser()
				inactive.Active = false

				user.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockUserRepo, _, mockJWT := newService(t)
			tt.setupMock(mockUserRepo, mockJWT)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access-token", res.AccessToken)
			assert.Equal(t, "refresh-token", res.RefreshToken)
		})
	}
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	// The stored form is lowercase, so a mixed-case login must look up the
	// lowercased address.
	svc, mockUserRepo, _, mockJWT := newService(t)

	mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (userModel.User, error) {
			emailValue := filter.Filters[0].(gDto.Filter).Value

			assert.Equal(t, "skipper@example.com", emailValue)

			return validUser(), nil
		})
	mockJWT.EXPECT().
		GenerateTokenPair("user-id-123", "skipper@example.com", true).
		Return(&jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)
	mockUserRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	res, err := svc.Login(context.Background(), dto.LoginRequest{
		Email:    "Skipper@Example.COM",
		Password: "password",
	})

	assert.NoError(t, err)
	assert.Equal(t, "access-token", res.AccessToken)
}

func TestAuthService_Login_GenericMessage(t *testing.T) {
	// Unknown email and wrong password must be indistinguishable to the caller.
	svc, mockUserRepo, _, _ := newService(t)

	mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
	_, errUnknown := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "password"})

	mockUserRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
	_, errWrongPass := svc.Login(context.Background(), dto.LoginRequest{Email: "skipper@example.com", Password: "wrong-password"})

	assert.Error(t, errUnknown)
	assert.Error(t, errWrongPass)
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("successful refresh", func(t *testing.T) {
		svc, _, _, mockJWT := newService(t)

		mockJWT.EXPECT().
			RefreshTokens("valid-refresh-token").
			Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "valid-refresh-token"})

		assert.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		svc, _, _, mockJWT := newService(t)

		mockJWT.EXPECT().
			RefreshTokens("garbage").
			Return(nil, jwt.ErrInvalidToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "garbage"})

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

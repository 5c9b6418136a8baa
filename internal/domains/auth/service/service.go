package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"camargue/config"
	"camargue/infras/jwt"
	"camargue/infras/otel"
	"camargue/internal/domains/auth/model"
	"camargue/internal/domains/auth/model/dto"
	"camargue/internal/domains/auth/repository"
	userModel "camargue/internal/domains/user/model"
	userRepo "camargue/internal/domains/user/repository"
	notifModel "camargue/internal/notifications/model"
	"camargue/shared"
	"camargue/shared/constant"
	gDto "camargue/shared/dto"
	"camargue/shared/failure"
	"camargue/shared/password"
	"camargue/shared/timezone"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) (dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, token string) (dto.VerifyEmailResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	tokenRepo  repository.VerificationToken
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(
	userRepo userRepo.User,
	tokenRepo repository.VerificationToken,
	cfg *config.Config,
	otel otel.Otel,
	jwt jwt.JWT,
) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (res dto.RegisterResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	exists, err := s.userRepo.Exist(ctx, emailFilter(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if exists {
		return res, failure.BadRequestFromString("email already registered") //nolint:wrapcheck
	}

	if err = password.CheckStrength(req.Password); err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(constant.ContextGuest, hashedPassword)

	if err = s.userRepo.Insert(ctx, user); err != nil {
		// A concurrent registration can slip past the existence check; the
		// unique index on email is the arbiter and the loser answers the
		// same way a plain duplicate does.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
			return res, failure.BadRequestFromString("email already registered") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := model.NewToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate verification token")

		return res, fmt.Errorf("failed to generate verification token: %w", err)
	}

	ttl := time.Duration(s.cfg.Auth.VerificationTokenTTLHours) * time.Hour
	verification := req.ToTokenModel(user.ID, token, timezone.Now().Add(ttl))

	if err = s.tokenRepo.Insert(ctx, verification); err != nil {
		log.Error().Err(err).Msg("failed to store verification token")

		return res, fmt.Errorf("failed to store verification token: %w", err)
	}

	res.UserID = user.ID
	res.Email = user.Email

	// The handler dispatches the notification once the registration has
	// succeeded; the service only prepares the event.
	res.Verification = notifModel.VerificationRequestedEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     token,
		VerifyURL: fmt.Sprintf("%s/v1/auth/verify-email?token=%s", s.cfg.App.BaseURL, token),
		ExpiresAt: verification.ExpiresAt,
	}

	return res, nil
}

func (s *serviceImpl) VerifyEmail(ctx context.Context, token string) (res dto.VerifyEmailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".VerifyEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenFilter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldToken,
				Operator: gDto.FilterOperatorEq,
				Value:    token,
				Table:    model.TableName,
			},
		},
	}

	verification, err := s.tokenRepo.Get(ctx, tokenFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up verification token")

		return res, fmt.Errorf("failed to look up verification token: %w", err)
	}

	if verification.ID == constant.Empty {
		return res, failure.BadRequestFromString("invalid or expired verification token") //nolint:wrapcheck
	}

	if verification.Expired(timezone.Now()) {
		if err := s.tokenRepo.Delete(ctx, tokenFilter); err != nil {
			log.Error().Err(err).Msg("failed to delete expired verification token")
		}

		return res, failure.BadRequestFromString("invalid or expired verification token") //nolint:wrapcheck
	}

	userFilter := shared.FilterByID(verification.UserID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, userFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user for verification")

		return res, fmt.Errorf("failed to get user for verification: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.BadRequestFromString("invalid or expired verification token") //nolint:wrapcheck
	}

	updatedFields := map[string]any{
		userModel.FieldIsVerified: true,
		constant.FieldModifiedAt:  timezone.Now(),
		constant.FieldModifiedBy:  user.ID,
	}

	if err = s.userRepo.Update(ctx, updatedFields, userFilter); err != nil {
		log.Error().Err(err).Msg("failed to mark user as verified")

		return res, fmt.Errorf("failed to mark user as verified: %w", err)
	}

	if err := s.tokenRepo.Delete(ctx, tokenFilter); err != nil {
		log.Error().Err(err).Msg("failed to delete used verification token")
	}

	res.Email = user.Email
	res.Verified = true

	return res, nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := emailFilter(req.Email)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	// Unknown email and wrong password answer identically.
	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized("invalid email or password") //nolint:wrapcheck
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized("invalid email or password") //nolint:wrapcheck
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated") //nolint:wrapcheck
	}

	if !user.IsVerified {
		return res, failure.VerificationRequiredError //nolint:wrapcheck
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.IsVerified)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	// Best effort: the timestamp is bookkeeping, the login already succeeded.
	lastLogin := dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}
	updatedFields := shared.TransformFields(lastLogin, user.ID)

	if err := s.userRepo.Update(ctx, updatedFields, filter); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token") //nolint:wrapcheck
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

// emailFilter lowercases its argument so lookups match the normalized form
// stored at registration.
func emailFilter(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    userModel.FieldEmail,
				Operator: gDto.FilterOperatorEq,
				Value:    strings.ToLower(email),
				Table:    userModel.TableName,
			},
		},
	}
}

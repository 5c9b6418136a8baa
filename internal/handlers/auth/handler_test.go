package auth_test

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"camargue/infras/otel/mocks"
	authMocks "camargue/internal/domains/auth/mocks"
	"camargue/internal/domains/auth/model/dto"
	"camargue/internal/handlers/auth"
	notifMocks "camargue/internal/notifications/mocks"
	notifModel "camargue/internal/notifications/model"
	"camargue/shared/failure"
)

func newHandler(t *testing.T) (auth.Handler, *authMocks.MockAuth, *notifMocks.MockDispatcher) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockService := authMocks.NewMockAuth(ctrl)
	mockDispatcher := notifMocks.NewMockDispatcher(ctrl)

	handler := auth.New(mockService, mockDispatcher, mocks.NewOtel())

	return handler, mockService, mockDispatcher
}

func registerRequest() *http.Request {
	body := bytes.NewBufferString(`{"email":"skipper@example.com","password":"password123"}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/register", body)
	req.Header.Set("Content-Type", "application/json")

	return req
}

func TestAuthHandler_Register(t *testing.T) {
	verification := notifModel.VerificationRequestedEvent{
		UserID:    "user-id-123",
		Email:     "skipper@example.com",
		Token:     "opaque-token",
		VerifyURL: "http://localhost:8080/v1/auth/verify-email?token=opaque-token",
	}

	registered := dto.RegisterResponse{
		UserID:       "user-id-123",
		Email:        "skipper@example.com",
		Verification: verification,
	}

	t.Run("successful registration dispatches the verification event", func(t *testing.T) {
		handler, mockService, mockDispatcher := newHandler(t)

		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered, nil)
		mockDispatcher.EXPECT().VerificationRequested(gomock.Any(), verification).Return(nil)

		rec := httptest.NewRecorder()
		handler.Register(rec, registerRequest())

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "user-id-123")
		// The verification token travels only through the notification, never
		// the response body.
		assert.NotContains(t, rec.Body.String(), "opaque-token")
	})

	t.Run("notification failure does not fail registration", func(t *testing.T) {
		handler, mockService, mockDispatcher := newHandler(t)

		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).Return(registered, nil)
		mockDispatcher.EXPECT().VerificationRequested(gomock.Any(), verification).Return(errors.New("broker down"))

		rec := httptest.NewRecorder()
		handler.Register(rec, registerRequest())

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("failed registration dispatches nothing", func(t *testing.T) {
		handler, mockService, mockDispatcher := newHandler(t)

		mockService.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(dto.RegisterResponse{}, failure.BadRequestFromString("email already registered"))
		mockDispatcher.EXPECT().VerificationRequested(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		handler.Register(rec, registerRequest())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

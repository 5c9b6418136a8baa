package booking_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"camargue/infras/otel/mocks"
	"camargue/internal/domains/booking/model/dto"
	serviceMocks "camargue/internal/domains/booking/service/mocks"
	"camargue/internal/handlers/booking"
	notifMocks "camargue/internal/notifications/mocks"
	notifModel "camargue/internal/notifications/model"
	"camargue/shared/constant"
	"camargue/shared/failure"
)

func newHandler(t *testing.T) (booking.Handler, *serviceMocks.MockBooking, *notifMocks.MockDispatcher) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockService := serviceMocks.NewMockBooking(ctrl)
	mockDispatcher := notifMocks.NewMockDispatcher(ctrl)

	handler := booking.New(mockService, mockDispatcher, nil, mocks.NewOtel())

	return handler, mockService, mockDispatcher
}

func createRequest(userID, email string) *http.Request {
	body := bytes.NewBufferString(`{"start_date":"2031-08-01","end_date":"2031-08-08"}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings", body)
	req.Header.Set("Content-Type", "application/json")

	ctx := context.WithValue(req.Context(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return req.WithContext(ctx)
}

func TestBookingHandler_CreateBooking(t *testing.T) {
	created := dto.BookingResponse{
		ID:        "booking-1",
		UserID:    "user-1",
		StartDate: "2031-08-01",
		EndDate:   "2031-08-08",
		Status:    "confirmed",
	}

	confirmation := notifModel.BookingConfirmedEvent{
		BookingID: "booking-1",
		UserID:    "user-1",
		Email:     "skipper@example.com",
		StartDate: "2031-08-01",
		EndDate:   "2031-08-08",
	}

	t.Run("successful creation dispatches the confirmation event", func(t *testing.T) {
		handler, mockService, mockDispatcher := newHandler(t)

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
		mockDispatcher.EXPECT().BookingConfirmed(gomock.Any(), confirmation).Return(nil)

		rec := httptest.NewRecorder()
		handler.CreateBooking(rec, createRequest("user-1", "skipper@example.com"))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "booking-1")
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		handler, mockService, mockDispatcher := newHandler(t)

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
		mockDispatcher.EXPECT().BookingConfirmed(gomock.Any(), confirmation).Return(errors.New("broker down"))

		rec := httptest.NewRecorder()
		handler.CreateBooking(rec, createRequest("user-1", "skipper@example.com"))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("failed creation dispatches nothing", func(t *testing.T) {
		handler, mockService, mockDispatcher := newHandler(t)

		mockService.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, failure.Conflict("requested dates are no longer available"))
		mockDispatcher.EXPECT().BookingConfirmed(gomock.Any(), gomock.Any()).Times(0)

		rec := httptest.NewRecorder()
		handler.CreateBooking(rec, createRequest("user-1", "skipper@example.com"))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestBookingHandler_CancelBooking(t *testing.T) {
	t.Run("unknown booking answers not found", func(t *testing.T) {
		handler, mockService, _ := newHandler(t)

		mockService.EXPECT().Cancel(gomock.Any(), gomock.Any()).Return(false, nil)

		req := httptest.NewRequest(http.MethodDelete, "/v1/bookings/no-such-booking", nil)

		rec := httptest.NewRecorder()
		handler.CancelBooking(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"camargue/config"
	"camargue/infras/otel/mocks"
	bookingMocks "camargue/internal/domains/booking/mocks"
	"camargue/internal/domains/booking/model"
	"camargue/internal/domains/booking/model/dto"
	"camargue/internal/domains/booking/service"
	"camargue/shared/cache"
	"camargue/shared/constant"
	"camargue/shared/failure"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

// stubCache is a pass-through cache: every read misses, writes succeed.
// Cache invalidation runs on detached goroutines, so a gomock cache would
// race with the controller teardown.
type stubCache struct{}

func (stubCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (stubCache) Get(_ context.Context, _ string, _ any) error        { return cache.Nil }
func (stubCache) Delete(_ context.Context, _ string) error            { return nil }
func (stubCache) Clear(_ context.Context, _ string) error             { return nil }

func newService(t *testing.T) (
	service.Booking,
	*bookingMocks.MockBooking,
) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	svc := service.New(mockRepo, cfg, stubCache{}, mockOtel)

	return svc, mockRepo
}

func authedContext(userID, email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserEmail, email)
}

func futureDate(days int) string {
	return timezone.FormatDate(timezone.Today().AddDate(0, 0, days))
}

func TestBookingService_CheckAvailability(t *testing.T) {
	t.Run("free range is available", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)

		res := svc.CheckAvailability(context.Background(), "2025-08-08", "2025-08-15")

		assert.True(t, res.Available)
	})

	t.Run("overlapping range is unavailable", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)

		res := svc.CheckAvailability(context.Background(), "2025-08-01", "2025-08-08")

		assert.False(t, res.Available)
	})

	t.Run("inverted range is unavailable without a storage call", func(t *testing.T) {
		svc, _ := newService(t)

		res := svc.CheckAvailability(context.Background(), "2025-08-08", "2025-08-01")

		assert.False(t, res.Available)
	})

	t.Run("empty range is unavailable", func(t *testing.T) {
		svc, _ := newService(t)

		res := svc.CheckAvailability(context.Background(), "2025-08-08", "2025-08-08")

		assert.False(t, res.Available)
	})

	t.Run("malformed date is unavailable", func(t *testing.T) {
		svc, _ := newService(t)

		res := svc.CheckAvailability(context.Background(), "next tuesday", "2025-08-08")

		assert.False(t, res.Available)
	})

	t.Run("storage error fails closed", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("connection refused"))

		res := svc.CheckAvailability(context.Background(), "2025-08-01", "2025-08-08")

		assert.False(t, res.Available)
	})
}

func TestBookingService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
		mockRepo.EXPECT().CreateConfirmed(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(7), EndDate: futureDate(14)}

		res, err := svc.Create(authedContext("user-1", "skipper@example.com"), req)

		assert.NoError(t, err)
		assert.Equal(t, "user-1", res.UserID)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
		assert.Equal(t, req.StartDate, res.StartDate)
		assert.Equal(t, req.EndDate, res.EndDate)
	})

	t.Run("booking starting today is allowed", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
		mockRepo.EXPECT().CreateConfirmed(gomock.Any(), gomock.Any()).Return(nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(0), EndDate: futureDate(3)}

		_, err := svc.Create(authedContext("user-1", "skipper@example.com"), req)

		assert.NoError(t, err)
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		svc, _ := newService(t)

		req := dto.CreateBookingRequest{StartDate: futureDate(7), EndDate: futureDate(14)}

		_, err := svc.Create(context.Background(), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("past start date rejected before any other check", func(t *testing.T) {
		svc, _ := newService(t)

		// End before start too, but the past-date failure must win.
		req := dto.CreateBookingRequest{StartDate: futureDate(-7), EndDate: futureDate(-10)}

		_, err := svc.Create(authedContext("user-1", "skipper@example.com"), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "past")
	})

	t.Run("end date not after start date", func(t *testing.T) {
		svc, _ := newService(t)

		req := dto.CreateBookingRequest{StartDate: futureDate(7), EndDate: futureDate(7)}

		_, err := svc.Create(authedContext("user-1", "skipper@example.com"), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "end date")
	})

	t.Run("overlapping dates answer conflict, not validation failure", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)

		req := dto.CreateBookingRequest{StartDate: futureDate(7), EndDate: futureDate(14)}

		_, err := svc.Create(authedContext("user-1", "skipper@example.com"), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("conflict detected inside the transaction is passed through", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().CountOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
		mockRepo.EXPECT().CreateConfirmed(gomock.Any(), gomock.Any()).
			Return(failure.Conflict("requested dates are no longer available"))

		req := dto.CreateBookingRequest{StartDate: futureDate(7), EndDate: futureDate(14)}

		_, err := svc.Create(authedContext("user-1", "skipper@example.com"), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	confirmed := func() model.Booking {
		return model.Booking{
			ID:        "booking-1",
			UserID:    "user-1",
			StartDate: timezone.Today().AddDate(0, 0, 7),
			EndDate:   timezone.Today().AddDate(0, 0, 14),
			Status:    model.StatusConfirmed,
			Metadata:  gModel.NewMetadata(timezone.Now(), "user-1"),
		}
	}

	t.Run("owner cancels confirmed reservation", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(confirmed(), nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		cancelled, err := svc.Cancel(authedContext("user-1", "skipper@example.com"), "booking-1")

		assert.NoError(t, err)
		assert.True(t, cancelled)
	})

	t.Run("missing reservation reports false", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		cancelled, err := svc.Cancel(authedContext("user-1", "skipper@example.com"), "no-such-booking")

		assert.NoError(t, err)
		assert.False(t, cancelled)
	})

	t.Run("foreign reservation reports false, same as missing", func(t *testing.T) {
		svc, mockRepo := newService(t)

		foreign := confirmed()
		foreign.UserID = "someone-else"

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(foreign, nil)

		cancelled, err := svc.Cancel(authedContext("user-1", "skipper@example.com"), "booking-1")

		assert.NoError(t, err)
		assert.False(t, cancelled)
	})

	t.Run("cancelling twice is a success no-op", func(t *testing.T) {
		svc, mockRepo := newService(t)

		already := confirmed()
		already.Status = model.StatusCancelled

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(already, nil)

		cancelled, err := svc.Cancel(authedContext("user-1", "skipper@example.com"), "booking-1")

		assert.NoError(t, err)
		assert.True(t, cancelled)
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Cancel(context.Background(), "booking-1")

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestBookingService_Calendar(t *testing.T) {
	t.Run("lists reservations intersecting the year, ascending, never available", func(t *testing.T) {
		svc, mockRepo := newService(t)

		newYearsCruise := model.Booking{
			ID:        "booking-ny",
			UserID:    "user-2",
			StartDate: time.Date(2024, time.December, 28, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.January, 4, 0, 0, 0, 0, time.UTC),
			Status:    model.StatusConfirmed,
		}
		summerCruise := model.Booking{
			ID:        "booking-summer",
			UserID:    "user-1",
			StartDate: time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, time.August, 8, 0, 0, 0, 0, time.UTC),
			Status:    model.StatusCancelled,
		}

		mockRepo.EXPECT().
			ListYear(gomock.Any(), time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)).
			Return([]model.Booking{newYearsCruise, summerCruise}, nil)

		res := svc.Calendar(context.Background(), 2025)

		assert.Equal(t, 2025, res.Year)
		assert.Len(t, res.Bookings, 2)
		assert.Equal(t, "booking-ny", res.Bookings[0].ID)
		assert.Equal(t, "booking-summer", res.Bookings[1].ID)

		for _, entry := range res.Bookings {
			assert.False(t, entry.IsAvailable)
		}
	})

	t.Run("storage failure degrades to an empty listing", func(t *testing.T) {
		svc, mockRepo := newService(t)

		mockRepo.EXPECT().ListYear(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		res := svc.Calendar(context.Background(), 2025)

		assert.Equal(t, 2025, res.Year)
		assert.Empty(t, res.Bookings)
	})
}

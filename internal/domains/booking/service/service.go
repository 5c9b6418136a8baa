package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"camargue/config"
	"camargue/infras/otel"
	"camargue/internal/domains/booking/model"
	"camargue/internal/domains/booking/model/dto"
	"camargue/internal/domains/booking/repository"
	"camargue/shared"
	"camargue/shared/cache"
	"camargue/shared/constant"
	"camargue/shared/failure"
	"camargue/shared/timezone"
)

const (
	cacheCalendarBooking = "booking:calendar"
)

type Booking interface {
	CheckAvailability(ctx context.Context, startDate, endDate string) dto.AvailabilityResponse
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (bool, error)
	Calendar(ctx context.Context, year int) dto.CalendarResponse
}

type serviceImpl struct {
	repo  repository.Booking
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(
	repo repository.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// CheckAvailability is a pure read: it never reserves anything and a
// positive answer can be stale by the time a create lands. Storage errors
// fail closed to unavailable.
func (s *serviceImpl) CheckAvailability(ctx context.Context, startDate, endDate string) (res dto.AvailabilityResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()

	res.StartDate = startDate
	res.EndDate = endDate
	res.Available = false

	start, err := timezone.ParseDate(startDate)
	if err != nil {
		log.Warn().Str("start_date", startDate).Msg("availability check with malformed start date")

		return res
	}

	end, err := timezone.ParseDate(endDate)
	if err != nil {
		log.Warn().Str("end_date", endDate).Msg("availability check with malformed end date")

		return res
	}

	// An empty or inverted range can never be available.
	if !end.After(start) {
		return res
	}

	overlapping, err := s.repo.CountOverlapping(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to count overlapping reservations, reporting unavailable")
		scope.TraceError(err)

		return res
	}

	res.Available = overlapping == 0

	return res
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	booking, err := req.ToModel(userID)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	// Validation order is fixed: past date, then range shape, then availability.
	if booking.StartDate.Before(timezone.Today()) {
		return res, failure.BadRequestFromString("start date cannot be in the past") //nolint:wrapcheck
	}

	if !booking.EndDate.After(booking.StartDate) {
		return res, failure.BadRequestFromString("end date must be after start date") //nolint:wrapcheck
	}

	overlapping, err := s.repo.CountOverlapping(ctx, booking.StartDate, booking.EndDate)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	if overlapping > 0 {
		return res, failure.Conflict("requested dates are no longer available") //nolint:wrapcheck
	}

	if err = s.repo.CreateConfirmed(ctx, booking); err != nil {
		if failure.IsConflict(err) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheCalendarBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

// Cancel reports false for both a missing reservation and one owned by
// another user, so callers cannot probe for foreign reservation IDs.
// Cancelling an already-cancelled reservation succeeds without effect.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (cancelled bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return false, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return false, fmt.Errorf("failed to get reservation: %w", err)
	}

	if booking.ID == constant.Empty || booking.UserID != userID {
		return false, nil
	}

	if booking.Status == model.StatusCancelled {
		return true, nil
	}

	updatedFields := map[string]any{
		model.FieldStatus:        string(model.StatusCancelled),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: userID,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return false, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheCalendarBooking)
	}()

	return true, nil
}

// Calendar lists every reservation touching the given year, start date
// ascending. A storage failure degrades to an empty listing rather than an
// error so the public calendar page always renders.
func (s *serviceImpl) Calendar(ctx context.Context, year int) (res dto.CalendarResponse) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()

	cacheKey := shared.BuildCacheKey(cacheCalendarBooking, strconv.Itoa(year))

	err := s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation calendar")

		return res
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	models, err := s.repo.ListYear(ctx, yearStart, yearEnd)
	if err != nil {
		log.Error().Err(err).Int("year", year).Msg("failed to list reservations for calendar, returning empty listing")
		scope.TraceError(err)

		res.FromModels(year, nil)

		return res
	}

	res.FromModels(year, models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation calendar to cache")
		}
	}()

	return res
}

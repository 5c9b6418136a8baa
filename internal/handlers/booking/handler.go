package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"camargue/infras/otel"
	"camargue/internal/domains/booking/model/dto"
	"camargue/internal/domains/booking/service"
	"camargue/internal/notifications"
	notifModel "camargue/internal/notifications/model"
	"camargue/shared/constant"
	"camargue/shared/failure"
	"camargue/shared/validator"
	"camargue/transport/http/middleware"
	"camargue/transport/http/response"
)

type Handler struct {
	service    service.Booking
	dispatcher notifications.Dispatcher
	auth       middleware.Auth
	otel       otel.Otel
}

func New(service service.Booking, dispatcher notifications.Dispatcher, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		dispatcher: dispatcher,
		auth:       auth,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/bookings", func(r chi.Router) {
		r.Get("/availability", handler.CheckAvailability)
		r.Get("/calendar/{year}", handler.GetCalendar)

		r.Group(func(r chi.Router) {
			r.Use(handler.auth.Auth)
			r.Use(handler.auth.Verified)

			r.Post("/", handler.CreateBooking)
			r.Delete("/{id}", handler.CancelBooking)
		})
	})
}

// CheckAvailability reports whether the boat is free for a date range.
// @Summary Check boat availability
// @Description Check whether the boat is free for the given date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD, exclusive)"
// @Success 200 {object} response.Data[dto.AvailabilityResponse] "Availability result"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/availability [get]
func (handler *Handler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	startDate := r.URL.Query().Get(constant.RequestParamStart)
	endDate := r.URL.Query().Get(constant.RequestParamEnd)

	res := handler.service.CheckAvailability(ctx, startDate, endDate)

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book the boat for the given date range.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	event := notifModel.BookingConfirmedEvent{
		BookingID: res.ID,
		UserID:    res.UserID,
		Email:     email,
		StartDate: res.StartDate,
		EndDate:   res.EndDate,
	}

	// Best effort: the reservation stands even if the notification is lost.
	if err := handler.dispatcher.BookingConfirmed(ctx, event); err != nil {
		log.Error().Err(err).Str("booking_id", res.ID).Msg("failed to dispatch booking confirmed notification")
	}

	scope.AddEvent("Booking created successfully by user " + res.UserID)

	response.WithJSON(w, http.StatusCreated, res)
}

// CancelBooking cancels one of the caller's bookings.
// @Summary Cancel a booking
// @Description Cancel a booking owned by the authenticated user.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.CancelBookingResponse] "Booking cancelled successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cancelled, err := handler.service.Cancel(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	// Unknown IDs and other users' bookings look the same to the caller.
	if !cancelled {
		err := failure.NotFound("booking not found")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking cancelled successfully by user " + user)

	response.WithJSON(w, http.StatusOK, dto.CancelBookingResponse{ID: id, Cancelled: true})
}

// GetCalendar lists the bookings touching a calendar year.
// @Summary Get the booking calendar for a year
// @Description List bookings that intersect the given calendar year, earliest first.
// @Tags Booking
// @Accept json
// @Produce json
// @Param year path int true "Calendar year"
// @Success 200 {object} response.Data[dto.CalendarResponse] "Calendar for the year"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/calendar/{year} [get]
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	year, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamYear))
	if err != nil {
		err := failure.BadRequestFromString("year must be a number")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res := handler.service.Calendar(ctx, year)

	scope.AddEvent("Calendar retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

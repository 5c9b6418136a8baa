package dto

import (
	"github.com/google/uuid"

	"camargue/internal/domains/booking/model"
	gDto "camargue/shared/dto"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

type CreateBookingRequest struct {
	StartDate string `json:"start_date" validate:"required,calendardate"`
	EndDate   string `json:"end_date"   validate:"required,calendardate"`
}

func (c *CreateBookingRequest) ToModel(userID string) (model.Booking, error) {
	startDate, err := timezone.ParseDate(c.StartDate)
	if err != nil {
		return model.Booking{}, err
	}

	endDate, err := timezone.ParseDate(c.EndDate)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    model.StatusConfirmed,
		Metadata:  gModel.NewMetadata(timezone.Now(), userID),
	}, nil
}

type BookingResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.StartDate = timezone.FormatDate(model.StartDate)
	r.EndDate = timezone.FormatDate(model.EndDate)
	r.Status = string(model.Status)
	r.Metadata.FromModel(model.Metadata)
}

type AvailabilityResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"is_available"`
}

type CancelBookingResponse struct {
	ID        string `json:"id"`
	Cancelled bool   `json:"cancelled"`
}

// CalendarEntry is a public calendar row. IsAvailable is always false:
// listed ranges are taken regardless of who owns them.
type CalendarEntry struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Status      string `json:"status"`
	IsAvailable bool   `json:"is_available"`
}

type CalendarResponse struct {
	Year     int             `json:"year"`
	Bookings []CalendarEntry `json:"bookings"`
}

func (r *CalendarResponse) FromModels(year int, models []model.Booking) {
	r.Year = year

	r.Bookings = make([]CalendarEntry, len(models))
	for i, mod := range models {
		r.Bookings[i] = CalendarEntry{
			ID:          mod.ID,
			UserID:      mod.UserID,
			StartDate:   timezone.FormatDate(mod.StartDate),
			EndDate:     timezone.FormatDate(mod.EndDate),
			Status:      string(mod.Status),
			IsAvailable: false,
		}
	}
}

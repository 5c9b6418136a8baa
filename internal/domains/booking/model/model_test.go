package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"camargue/internal/domains/booking/model"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func TestBooking_Overlaps(t *testing.T) {
	booked := model.Booking{
		StartDate: date("2025-08-01"),
		EndDate:   date("2025-08-08"),
		Status:    model.StatusConfirmed,
	}

	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{
			name:  "identical range overlaps",
			start: "2025-08-01",
			end:   "2025-08-08",
			want:  true,
		},
		{
			name:  "range starting on checkout day does not overlap",
			start: "2025-08-08",
			end:   "2025-08-15",
			want:  false,
		},
		{
			name:  "range ending on arrival day does not overlap",
			start: "2025-07-25",
			end:   "2025-08-01",
			want:  false,
		},
		{
			name:  "contained range overlaps",
			start: "2025-08-03",
			end:   "2025-08-05",
			want:  true,
		},
		{
			name:  "containing range overlaps",
			start: "2025-07-25",
			end:   "2025-08-20",
			want:  true,
		},
		{
			name:  "partial overlap at the front",
			start: "2025-07-28",
			end:   "2025-08-03",
			want:  true,
		},
		{
			name:  "partial overlap at the back",
			start: "2025-08-05",
			end:   "2025-08-12",
			want:  true,
		},
		{
			name:  "disjoint earlier range",
			start: "2025-07-01",
			end:   "2025-07-10",
			want:  false,
		},
		{
			name:  "disjoint later range",
			start: "2025-09-01",
			end:   "2025-09-10",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, booked.Overlaps(date(tt.start), date(tt.end)))
		})
	}
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, model.StatusConfirmed.Valid())
	assert.True(t, model.StatusCancelled.Valid())
	assert.False(t, model.Status("pending").Valid())
	assert.False(t, model.Status("").Valid())
}

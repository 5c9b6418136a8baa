package validator_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"camargue/shared/validator"
)

type registerPayload struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

type bookingPayload struct {
	StartDate string `json:"start_date" validate:"required,calendardate"`
	EndDate   string `json:"end_date"   validate:"required,calendardate"`
}

func TestValidate_DecodeAndValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid payload",
			body:    `{"email":"skipper@example.com","password":"anchorsaweigh"}`,
			wantErr: false,
		},
		{
			name:    "invalid email",
			body:    `{"email":"not-an-email","password":"anchorsaweigh"}`,
			wantErr: true,
		},
		{
			name:    "short password",
			body:    `{"email":"skipper@example.com","password":"short"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"email":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := registerPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_CalendarDate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name:    "valid dates",
			body:    `{"start_date":"2025-08-01","end_date":"2025-08-08"}`,
			wantErr: false,
		},
		{
			name:    "not a date",
			body:    `{"start_date":"tomorrow","end_date":"2025-08-08"}`,
			wantErr: true,
		},
		{
			name:    "timestamp instead of date",
			body:    `{"start_date":"2025-08-01T10:00:00Z","end_date":"2025-08-08"}`,
			wantErr: true,
		},
		{
			name:    "missing end date",
			body:    `{"start_date":"2025-08-01"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := bookingPayload{}
			err := validator.Validate(strings.NewReader(tt.body), &payload)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

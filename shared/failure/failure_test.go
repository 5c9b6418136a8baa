package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"camargue/shared/failure"
)

func TestFailure_Codes(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "bad request from string",
			err:      failure.BadRequestFromString("start date cannot be in the past"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "start date cannot be in the past",
		},
		{
			name:     "conflict",
			err:      failure.Conflict("the requested period is already booked"),
			wantCode: http.StatusConflict,
			wantMsg:  "the requested period is already booked",
		},
		{
			name:     "not found",
			err:      failure.NotFound("booking not found"),
			wantCode: http.StatusNotFound,
			wantMsg:  "booking not found",
		},
		{
			name:     "unauthorized",
			err:      failure.Unauthorized("invalid token"),
			wantCode: http.StatusUnauthorized,
			wantMsg:  "invalid token",
		},
		{
			name:     "plain error defaults to internal",
			err:      errors.New("connection refused"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestFailure_WrappedErrorKeepsCode(t *testing.T) {
	err := fmt.Errorf("creating booking: %w", failure.Conflict("period already booked"))

	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.True(t, failure.IsConflict(err))
}

func TestFailure_BadRequestNilError(t *testing.T) {
	assert.NoError(t, failure.BadRequest(nil))
	assert.NoError(t, failure.InternalError(nil))
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-HallBookingService/internal/turnover"
)

func TestDescribeRejection(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantInMsg  string
	}{
		{name: "too soon", err: &turnover.TooSoonError{MinWakeMinutes: 18 * 60}, wantStatus: http.StatusConflict, wantCode: turnover.CodeTooSoon, wantInMsg: "18:00以降"},
		{name: "too soon next day", err: &turnover.TooSoonError{MinWakeMinutes: 25 * 60}, wantStatus: http.StatusConflict, wantCode: turnover.CodeTooSoon, wantInMsg: "25:00"},
		{name: "tomobiki", err: turnover.ErrTomobikiRestriction, wantStatus: http.StatusUnprocessableEntity, wantCode: turnover.CodeTomobiki, wantInMsg: "友引"},
		{name: "already booked wrapped", err: fmt.Errorf("%w: 通夜", turnover.ErrAlreadyBooked), wantStatus: http.StatusConflict, wantCode: turnover.CodeAlreadyBooked},
		{name: "forbidden", err: turnover.ErrTurnoverForbidden, wantStatus: http.StatusConflict, wantCode: turnover.CodeForbidden},
		{name: "no capacity", err: turnover.ErrNoCapacityConfigured, wantStatus: http.StatusConflict, wantCode: turnover.CodeNoCapacity, wantInMsg: "上限"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DescribeRejection(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.Message)
			if tt.wantInMsg != "" {
				assert.Contains(t, got.Message, tt.wantInMsg)
			}
		})
	}

	_, ok := DescribeRejection(errors.New("db down"))
	assert.False(t, ok)
	assert.Empty(t, RejectionMessage(nil))
}

type sampleRequest struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"gte=0,lte=9"`
}

func TestDecodeAndValidate(t *testing.T) {
	var req sampleRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"","count":12}`))
	require.NoError(t, DecodeJSON(r, &req))

	err := Validate(req)
	require.Error(t, err)

	w := httptest.NewRecorder()
	RespondValidationError(w, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"Name":"required"`)
	assert.Contains(t, w.Body.String(), `"Count":"lte"`)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"unknown":1}`))
	assert.Error(t, DecodeJSON(r, &req))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"hallId": "12"})
	id, err := PathInt64(r, "hallId")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"hallId": "0"})
	_, err = PathInt64(r, "hallId")
	assert.Error(t, err)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"hallId": "x"})
	_, err = PathInt64(r, "hallId")
	assert.Error(t, err)
}

package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bress-dev/absensi-backend-go/internal/domain/attendance"
	"github.com/bress-dev/absensi-backend-go/internal/domain/report"
	"github.com/bress-dev/absensi-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var envelope Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "user-1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Nil(t, envelope.Error)
}

func TestCreatedStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Registered successfully", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Registered successfully", envelope.Message)
}

func TestValidationErrorEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"email": "invalid email format"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Equal(t, "invalid email format", envelope.Error.Details["email"])
}

func TestUnencodablePayloadBecomesServerError(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, make(chan int))

	// Marshalling happens before the status line is written, so the failure
	// is reported as a 500 rather than a truncated 200.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "ENCODING_ERROR", envelope.Error.Code)
}

func TestHandleError_ValidationErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, validator.ValidationErrors{
		{Field: "type", Message: "type must be izin, sakit, or libur"},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Details, "type")
}

func TestHandleError_MinimumDurationKeepsSeconds(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, &attendance.MinimumDurationError{
		Minimum:   8*time.Hour + 30*time.Second,
		Remaining: time.Second,
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	// A sub-minute remainder must not be rounded away.
	assert.Equal(t, "1s", envelope.Error.Details["remaining"])
}

func TestHandleError_InvalidRange(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, report.ErrInvalidRange)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "BAD_REQUEST", envelope.Error.Code)
}

func TestHandleError_UnknownErrorIsOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "An unexpected error occurred", envelope.Error.Message)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
)

func TestRespondEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	respond(rec, http.StatusCreated, "created", map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(201), body["statusCode"])
	assert.Equal(t, "created", body["message"])
	assert.NotNil(t, body["data"])
	assert.NotContains(t, body, "errors")
}

func TestRespondErrorEnvelopeShape(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/news/missing", nil)
	RespondError(rec, req, apperrors.NotFound("article not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["statusCode"])
	assert.Equal(t, "article not found", body["message"])
	assert.NotContains(t, body, "data")
}

func TestRespondErrorHidesUnknownErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/news", nil)
	RespondError(rec, req, errors.New("disk I/O error on /var/lib/data"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "/var/lib/data")
}

func TestDecodeJSONValidation(t *testing.T) {
	type payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	var p payload
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"not-an-email","password":"short"}`))
	err := decodeJSON(req, &p)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Contains(t, appErr.Errs, "Email must be a valid email address")
	assert.Contains(t, appErr.Errs, "Password must be at least 8 characters")
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	var dst struct{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := decodeJSON(req, &dst)

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "request body is empty", appErr.Message)
}

func TestParseTimeAcceptsBothPrecisions(t *testing.T) {
	_, err := parseTime("2026-03-01T10:00:00Z")
	assert.NoError(t, err)

	_, err = parseTime("2026-03-01T10:00:00.123Z")
	assert.NoError(t, err)

	_, err = parseTime("01/03/2026")
	assert.Error(t, err)
}

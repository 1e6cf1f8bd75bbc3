package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPassesThroughAPIErrors(t *testing.T) {
	original := NotFound("article not found")
	wrapped := fmt.Errorf("lookup failed: %w", original)

	got := From(wrapped)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "article not found", got.Message)
}

func TestFromMapsUniqueViolationsToConflict(t *testing.T) {
	err := errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")

	got := From(err)
	assert.Equal(t, http.StatusConflict, got.Status)
}

func TestFromHidesUnknownErrors(t *testing.T) {
	got := From(errors.New("dial tcp 10.0.0.1:5432: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, "internal server error", got.Message)
	assert.NotContains(t, got.Error(), "10.0.0.1")
}

func TestErrorStringIncludesDetails(t *testing.T) {
	err := Validation("validation failed", "email is required", "password too short")

	assert.Equal(t, "validation failed: email is required, password too short", err.Error())
}

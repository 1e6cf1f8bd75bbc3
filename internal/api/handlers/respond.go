package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/sfares/newsroom-be/internal/apperrors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// envelope is the uniform shape of every API response.
type envelope struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Data       any      `json:"data,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// RespondError maps any error onto the error envelope. Unrecognized errors
// are logged and surfaced as opaque 500s.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := apperrors.From(err)
	if apiErr.Status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", r.URL.Path).Str("method", r.Method).Msg("Request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(envelope{
		Success:    false,
		StatusCode: apiErr.Status,
		Message:    apiErr.Message,
		Errors:     apiErr.Errs,
	})
}

// decodeBody parses the request body into dst without struct validation,
// for partial-update payloads where absent fields mean "unchanged".
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is empty")
		}
		return apperrors.Validation("invalid request body")
	}
	return nil
}

// parseTime accepts RFC 3339 timestamps, with or without sub-second detail.
func parseTime(value string) (time.Time, error) {
	if at, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return at, nil
	}
	return time.Parse(time.RFC3339, value)
}

// decodeJSON parses the request body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.Validation("request body is empty")
		}
		return apperrors.Validation("invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			details := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				details = append(details, fieldError(fe))
			}
			return apperrors.Validation("validation failed", details...)
		}
		return apperrors.Validation("invalid request body")
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	default:
		return fe.Field() + " is invalid"
	}
}

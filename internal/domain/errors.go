package domain

import (
	"fmt"
	"strings"
)

// NetworkError reports a non-2xx status from an upstream API. It is surfaced
// to the caller verbatim and never retried inside the core.
type NetworkError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.StatusCode, e.Body)
}

// EmptyForecastError means the trip date range has no overlap with the
// provider's forecast horizon. The message states the horizon explicitly
// because upstream forecast windows are short relative to trip dates.
type EmptyForecastError struct {
	HorizonDays int
	StartDate   string
	EndDate     string
}

func (e *EmptyForecastError) Error() string {
	return fmt.Sprintf(
		"no forecast data for %s..%s: the weather provider only covers the next %d days, so dates further out have no forecast yet",
		e.StartDate, e.EndDate, e.HorizonDays)
}

// EmptyModelResponseError means the generative endpoint returned no usable text.
type EmptyModelResponseError struct{}

func (e *EmptyModelResponseError) Error() string {
	return "model returned an empty response"
}

// MalformedJsonError means the model output was not parseable as JSON after
// fence stripping.
type MalformedJsonError struct {
	Cause error
}

func (e *MalformedJsonError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Cause)
}

func (e *MalformedJsonError) Unwrap() error { return e.Cause }

// FieldViolation names one schema rule the model output broke.
type FieldViolation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// SchemaValidationError carries every field path that failed structural
// validation. There is no partial or lenient acceptance.
type SchemaValidationError struct {
	Violations []FieldViolation
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "model output failed schema validation: " + strings.Join(parts, "; ")
}

// UnknownDestinationError means the referenced destination id is not in the
// configured set.
type UnknownDestinationError struct {
	ID string
}

func (e *UnknownDestinationError) Error() string {
	return fmt.Sprintf("unknown destination %q", e.ID)
}

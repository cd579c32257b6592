package domain

import "context"

// GenerationRequest is the instruction plus structured facts and the output
// schema passed to the generative model.
type GenerationRequest struct {
	Instruction    string
	Input          any
	ResponseSchema map[string]any
}

// LLMResponse carries the raw model text and the API-reported model version.
type LLMResponse struct {
	Text         string
	ModelVersion string
}

// LLMClient sends a generation request to the model endpoint and returns its
// raw text. Timeouts and transport concerns belong to the implementation.
type LLMClient interface {
	Generate(ctx context.Context, req GenerationRequest) (*LLMResponse, error)
	Version() string
}

// ForecastSource provides normalized forecasts for a provider location key.
type ForecastSource interface {
	DailyForecast(ctx context.Context, locationKey string, days int) ([]DayForecast, error)
	HourlyForecast(ctx context.Context, locationKey string) ([]HourForecast, error)
	// HorizonDays is the maximum number of future days the source covers.
	HorizonDays() int
}

// DestinationRegistry resolves destination ids against the configured set.
type DestinationRegistry interface {
	Get(id string) (Destination, error)
	List() []Destination
}

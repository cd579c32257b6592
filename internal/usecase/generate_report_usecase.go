package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"travel-risk-orchestrator/internal/domain"
)

// GenerateReportInput identifies the trip to analyze.
type GenerateReportInput struct {
	Destination domain.Destination
	Itinerary   domain.Itinerary
}

// GenerateReportOutput carries both the normalized forecast inputs and the
// corrected report, so callers can cross-reference the two.
type GenerateReportOutput struct {
	ForecastDays []domain.DayForecast     `json:"forecastDays"`
	Report       *domain.TravelRiskReport `json:"report"`
}

// GenerateReportUsecase composes the full risk pipeline: fetch forecasts,
// filter to the trip range, build the prompt, call the model once, validate,
// correct, and assemble the final report.
type GenerateReportUsecase interface {
	Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error)
}

type generateReportUsecase struct {
	forecasts     domain.ForecastSource
	promptBuilder RiskPromptBuilder
	llmClient     domain.LLMClient
	validator     OutputValidator
	corrector     RiskCorrector
	logger        *slog.Logger
	now           func() time.Time
}

// NewGenerateReportUsecase wires the pipeline components together.
func NewGenerateReportUsecase(
	forecasts domain.ForecastSource,
	promptBuilder RiskPromptBuilder,
	llmClient domain.LLMClient,
	validator OutputValidator,
	corrector RiskCorrector,
	logger *slog.Logger,
) GenerateReportUsecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &generateReportUsecase{
		forecasts:     forecasts,
		promptBuilder: promptBuilder,
		llmClient:     llmClient,
		validator:     validator,
		corrector:     corrector,
		logger:        logger,
		now:           time.Now,
	}
}

// Execute runs one request/response cycle. Every error from the pipeline
// propagates to the caller unchanged; no fallback report is synthesized.
func (u *generateReportUsecase) Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	if input.Destination.LocationKey == "" {
		return nil, fmt.Errorf("destination location key is required")
	}

	horizon := u.forecasts.HorizonDays()
	days, err := u.forecasts.DailyForecast(ctx, input.Destination.LocationKey, horizon)
	if err != nil {
		return nil, err
	}

	tripDays := domain.FilterByRange(days, input.Itinerary)
	if len(tripDays) == 0 {
		return nil, &domain.EmptyForecastError{
			HorizonDays: horizon,
			StartDate:   input.Itinerary.StartDate,
			EndDate:     input.Itinerary.EndDate,
		}
	}

	req, err := u.promptBuilder.Build(PromptInput{
		Destination: input.Destination,
		Itinerary:   input.Itinerary,
		Forecasts:   tripDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	u.logger.Info("risk_generation_started",
		slog.String("itinerary_id", input.Itinerary.ID),
		slog.String("destination", input.Destination.ID),
		slog.Int("forecast_days", len(tripDays)))

	resp, err := u.llmClient.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return nil, &domain.EmptyModelResponseError{}
	}

	validated, err := u.validator.Validate(resp.Text)
	if err != nil {
		u.logger.Warn("model_output_rejected",
			slog.String("itinerary_id", input.Itinerary.ID),
			slog.String("error", err.Error()))
		return nil, err
	}

	corrected := u.corrector.Correct(validated, tripDays)

	report := &domain.TravelRiskReport{
		ItineraryID:  input.Itinerary.ID,
		GeneratedAt:  u.now().UTC(),
		ModelVersion: corrected.ModelVersion,
		Timezone:     corrected.Timezone,
		Days:         corrected.Days,
	}

	u.logger.Info("risk_generation_completed",
		slog.String("itinerary_id", input.Itinerary.ID),
		slog.String("model_version", report.ModelVersion),
		slog.Int("report_days", len(report.Days)))

	return &GenerateReportOutput{
		ForecastDays: tripDays,
		Report:       report,
	}, nil
}

package usecase

import (
	"fmt"
	"strings"

	"travel-risk-orchestrator/internal/domain"
)

// reportResponseSchema is the structural JSON schema handed to the model to
// constrain its output to the travel risk report shape. Every day field is
// required except expectedRainMmRange, which may be null.
var reportResponseSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"modelVersion": map[string]any{"type": "string"},
		"timezone":     map[string]any{"type": "string"},
		"days": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"date": map[string]any{
						"type":    "string",
						"pattern": `^\d{4}-\d{2}-\d{2}$`,
					},
					"riskLevel": map[string]any{
						"type": "string",
						"enum": []string{"LOW", "MEDIUM", "HIGH", "EXTREME"},
					},
					"expectedRainMmRange": map[string]any{
						"type": []string{"object", "null"},
						"properties": map[string]any{
							"min": map[string]any{"type": "number"},
							"max": map[string]any{"type": "number"},
						},
						"required": []string{"min", "max"},
					},
					"confidence": map[string]any{
						"type":    "number",
						"minimum": 0,
						"maximum": 1,
					},
					"advice":    map[string]any{"type": "string"},
					"rationale": map[string]any{"type": "string"},
					"flags": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required": []string{"date", "riskLevel", "confidence", "advice", "rationale", "flags"},
			},
		},
	},
	"required": []string{"modelVersion", "timezone", "days"},
}

// DayFacts restates only the derived forecast fields relevant to risk
// analysis. The full provider payload never reaches the prompt.
type DayFacts struct {
	Date                   string   `json:"date"`
	PrecipProbabilityDay   *int     `json:"precipProbabilityDay,omitempty"`
	PrecipProbabilityNight *int     `json:"precipProbabilityNight,omitempty"`
	PrecipAmountMmDay      *float64 `json:"precipAmountMmDay,omitempty"`
	PrecipAmountMmNight    *float64 `json:"precipAmountMmNight,omitempty"`
	TempMinC               *float64 `json:"tempMinC,omitempty"`
	TempMaxC               *float64 `json:"tempMaxC,omitempty"`
}

// TripFacts is the structured input object sent alongside the instruction.
type TripFacts struct {
	Destination string     `json:"destination"`
	Timezone    string     `json:"timezone"`
	StartDate   string     `json:"startDate"`
	EndDate     string     `json:"endDate"`
	Forecast    []DayFacts `json:"forecast"`
}

// PromptInput carries everything the builder needs.
type PromptInput struct {
	Destination domain.Destination
	Itinerary   domain.Itinerary
	Forecasts   []domain.DayForecast
}

// RiskPromptBuilder assembles the instruction, fact object and response
// schema for a travel risk generation call. Pure function of its inputs.
type RiskPromptBuilder struct{}

// NewRiskPromptBuilder creates a builder (stateless).
func NewRiskPromptBuilder() RiskPromptBuilder {
	return RiskPromptBuilder{}
}

// Build renders the generation request for the given trip and forecasts.
func (b RiskPromptBuilder) Build(input PromptInput) (domain.GenerationRequest, error) {
	if len(input.Forecasts) == 0 {
		return domain.GenerationRequest{}, fmt.Errorf("at least one forecast day is required")
	}

	facts := TripFacts{
		Destination: input.Destination.Name,
		Timezone:    input.Destination.Timezone,
		StartDate:   input.Itinerary.StartDate,
		EndDate:     input.Itinerary.EndDate,
		Forecast:    make([]DayFacts, len(input.Forecasts)),
	}
	for i, f := range input.Forecasts {
		facts.Forecast[i] = DayFacts{
			Date:                   f.Date,
			PrecipProbabilityDay:   f.PrecipProbabilityDay,
			PrecipProbabilityNight: f.PrecipProbabilityNight,
			PrecipAmountMmDay:      f.PrecipAmountMmDay,
			PrecipAmountMmNight:    f.PrecipAmountMmNight,
			TempMinC:               f.TempMinC,
			TempMaxC:               f.TempMaxC,
		}
	}

	var sb strings.Builder
	sb.WriteString("You are a travel weather risk analyst. ")
	sb.WriteString("Using ONLY the forecast facts in the attached JSON input, produce a per-day travel risk report for the trip.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString(fmt.Sprintf(
		"1. riskLevel is derived from the higher of the day and night precipitation probability: LOW below %d%%, MEDIUM %d-%d%%, HIGH %d-%d%%, EXTREME above %d%%.\n",
		domain.MediumProbThreshold,
		domain.MediumProbThreshold, domain.HighProbThreshold,
		domain.HighProbThreshold, domain.ExtremeProbThreshold,
		domain.ExtremeProbThreshold))
	sb.WriteString("2. Emit exactly one entry per forecast date, in ascending date order, covering every date in the input and no others.\n")
	sb.WriteString("3. expectedRainMmRange is the plausible rainfall interval in millimeters for the day, or null when precipitation amounts are absent.\n")
	sb.WriteString("4. confidence is a number between 0 and 1.\n")
	sb.WriteString("5. advice and rationale are short non-empty sentences grounded in the forecast numbers. Do not invent weather the input does not show.\n")
	sb.WriteString("6. flags is an array of lowercase snake_case warning tags, for example heavy_rain, strong_wind, heat. Empty array when nothing applies.\n")
	sb.WriteString("7. Set timezone to the trip timezone from the input and modelVersion to your own model identifier.\n")
	sb.WriteString("8. Respond with JSON only, matching the response schema exactly. No markdown, no commentary.\n")

	return domain.GenerationRequest{
		Instruction:    sb.String(),
		Input:          facts,
		ResponseSchema: reportResponseSchema,
	}, nil
}

// BuildRepairPrompt constructs a corrective instruction for a retry after a
// prior model output failed validation. The caller decides whether to retry;
// the validator never invokes this on its own.
func BuildRepairPrompt(badOutput string) domain.GenerationRequest {
	var sb strings.Builder
	sb.WriteString("Your previous response was not valid against the required schema. ")
	sb.WriteString("Return the same travel risk report as JSON only: no markdown fences, no extra text.\n\n")
	sb.WriteString("Schema requirements, restated:\n")
	sb.WriteString("- top level: modelVersion (string), timezone (string), days (array), all required\n")
	sb.WriteString("- days[].date: string matching ^\\d{4}-\\d{2}-\\d{2}$\n")
	sb.WriteString("- days[].riskLevel: one of LOW, MEDIUM, HIGH, EXTREME\n")
	sb.WriteString("- days[].expectedRainMmRange: null or an object {min: number, max: number}\n")
	sb.WriteString("- days[].confidence: number between 0 and 1\n")
	sb.WriteString("- days[].advice, days[].rationale: non-empty strings\n")
	sb.WriteString("- days[].flags: array of strings\n\n")
	sb.WriteString("Previous output to fix:\n")
	sb.WriteString(badOutput)

	return domain.GenerationRequest{
		Instruction:    sb.String(),
		ResponseSchema: reportResponseSchema,
	}
}

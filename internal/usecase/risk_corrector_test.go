package usecase_test

import (
	"testing"

	"travel-risk-orchestrator/internal/domain"
	"travel-risk-orchestrator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func forecastDay(date string, probDay, probNight int) domain.DayForecast {
	return domain.DayForecast{
		Date:                   date,
		PrecipProbabilityDay:   intPtr(probDay),
		PrecipProbabilityNight: intPtr(probNight),
	}
}

func riskDay(date string, level domain.RiskLevel, advice string) domain.DayRisk {
	return domain.DayRisk{
		Date:       date,
		RiskLevel:  level,
		Confidence: 0.8,
		Advice:     advice,
		Rationale:  "model rationale",
		Flags:      []string{},
	}
}

func TestRiskCorrector_OverridesModelLevels(t *testing.T) {
	// Dubai scenario: model says MEDIUM, MEDIUM, HIGH; the numbers say
	// LOW, HIGH, EXTREME.
	corrector := usecase.NewRiskCorrector(nil)

	forecasts := []domain.DayForecast{
		forecastDay("2024-01-10", 10, 5),
		forecastDay("2024-01-11", 65, 30),
		forecastDay("2024-01-12", 90, 85),
	}
	report := &domain.ModelReport{
		ModelVersion: "m",
		Timezone:     "Asia/Dubai",
		Days: []domain.DayRisk{
			riskDay("2024-01-10", domain.RiskMedium, "Stay alert."),
			riskDay("2024-01-11", domain.RiskMedium, "Stay alert."),
			riskDay("2024-01-12", domain.RiskHigh, "Stay alert."),
		},
	}

	corrected := corrector.Correct(report, forecasts)

	require.Len(t, corrected.Days, 3)
	assert.Equal(t, domain.RiskLow, corrected.Days[0].RiskLevel)
	assert.Equal(t, domain.RiskHigh, corrected.Days[1].RiskLevel)
	assert.Equal(t, domain.RiskExtreme, corrected.Days[2].RiskLevel)

	// Input report is not mutated.
	assert.Equal(t, domain.RiskMedium, report.Days[0].RiskLevel)
}

func TestRiskCorrector_LevelInvariantHoldsForAnyModelOutput(t *testing.T) {
	corrector := usecase.NewRiskCorrector(nil)

	forecasts := []domain.DayForecast{
		forecastDay("2024-01-10", 0, 0),
		forecastDay("2024-01-11", 20, 0),
		forecastDay("2024-01-12", 0, 55),
		forecastDay("2024-01-13", 80, 79),
	}

	// Adversarial model outputs: every level on every day.
	for _, modelLevel := range domain.RiskLevels {
		days := make([]domain.DayRisk, len(forecasts))
		for i, f := range forecasts {
			days[i] = riskDay(f.Date, modelLevel, "advice")
		}
		corrected := corrector.Correct(&domain.ModelReport{ModelVersion: "m", Timezone: "UTC", Days: days}, forecasts)

		for i, day := range corrected.Days {
			expected := domain.RiskLevelForProbability(forecasts[i].MaxPrecipProbability())
			assert.Equal(t, expected, day.RiskLevel,
				"date %s with model level %s", day.Date, modelLevel)
		}
	}
}

func TestRiskCorrector_RewritesRainAdviceOnClearDays(t *testing.T) {
	corrector := usecase.NewRiskCorrector(nil)

	forecasts := []domain.DayForecast{forecastDay("2024-01-10", 5, 0)}
	report := &domain.ModelReport{
		ModelVersion: "m",
		Timezone:     "UTC",
		Days:         []domain.DayRisk{riskDay("2024-01-10", domain.RiskLow, "Bring an umbrella, expect rain")},
	}

	corrected := corrector.Correct(report, forecasts)

	advice := corrected.Days[0].Advice
	assert.NotContains(t, advice, "rain")
	assert.NotContains(t, advice, "umbrella")
	assert.Equal(t, "Bring a hat, expect clear weather", advice)
}

func TestRiskCorrector_KeepsRainAdviceOnWetDays(t *testing.T) {
	corrector := usecase.NewRiskCorrector(nil)

	forecasts := []domain.DayForecast{forecastDay("2024-01-10", 70, 40)}
	report := &domain.ModelReport{
		ModelVersion: "m",
		Timezone:     "UTC",
		Days:         []domain.DayRisk{riskDay("2024-01-10", domain.RiskHigh, "Bring an umbrella, expect rain")},
	}

	corrected := corrector.Correct(report, forecasts)
	assert.Equal(t, "Bring an umbrella, expect rain", corrected.Days[0].Advice)
}

func TestRiskCorrector_LeavesUnmatchedDaysUntouched(t *testing.T) {
	corrector := usecase.NewRiskCorrector(nil)

	forecasts := []domain.DayForecast{forecastDay("2024-01-10", 5, 0)}
	report := &domain.ModelReport{
		ModelVersion: "m",
		Timezone:     "UTC",
		Days: []domain.DayRisk{
			riskDay("2024-01-10", domain.RiskExtreme, "advice"),
			riskDay("2024-02-01", domain.RiskExtreme, "Expect rain"),
		},
	}

	corrected := corrector.Correct(report, forecasts)

	require.Len(t, corrected.Days, 2, "corrector never adds or removes days")
	assert.Equal(t, domain.RiskLow, corrected.Days[0].RiskLevel)
	// No ground truth for 2024-02-01: level and advice stay as the model wrote them.
	assert.Equal(t, domain.RiskExtreme, corrected.Days[1].RiskLevel)
	assert.Equal(t, "Expect rain", corrected.Days[1].Advice)
}

package usecase

import (
	"log/slog"
	"regexp"

	"travel-risk-orchestrator/internal/domain"
)

// adviceRewrites are the fixed substitutions applied to advice text when the
// corrected level is LOW but the model still talks about rain. Best-effort
// cosmetic cleanup; the table is deliberately not exhaustive.
var adviceRewrites = []struct {
	pattern *regexp.Regexp
	repl    string
}{
	{regexp.MustCompile(`(?i)an umbrella`), "a hat"},
	{regexp.MustCompile(`(?i)umbrella`), "hat"},
	{regexp.MustCompile(`(?i)rain gear`), "sun protection"},
	{regexp.MustCompile(`(?i)\brain showers\b`), "clear spells"},
	{regexp.MustCompile(`(?i)\bshowers\b`), "clear spells"},
	{regexp.MustCompile(`(?i)\brainy\b`), "clear"},
	{regexp.MustCompile(`(?i)\brainfall\b`), "clear weather"},
	{regexp.MustCompile(`(?i)\brain\b`), "clear weather"},
	{regexp.MustCompile(`(?i)\bwet\b`), "dry"},
}

// RiskCorrector is the deterministic post-validation pass: numeric forecast
// data always wins over the model's judgment. It never fails; it only
// rewrites riskLevel and advice.
type RiskCorrector struct {
	logger *slog.Logger
}

// NewRiskCorrector creates a corrector logging overrides through logger.
func NewRiskCorrector(logger *slog.Logger) RiskCorrector {
	if logger == nil {
		logger = slog.Default()
	}
	return RiskCorrector{logger: logger}
}

// Correct returns a corrected copy of report, joined on date against the
// forecasts it was derived from. Days with no matching forecast are left
// untouched; no day is added or removed.
func (c RiskCorrector) Correct(report *domain.ModelReport, forecasts []domain.DayForecast) *domain.ModelReport {
	byDate := make(map[string]domain.DayForecast, len(forecasts))
	for _, f := range forecasts {
		byDate[f.Date] = f
	}

	corrected := &domain.ModelReport{
		ModelVersion: report.ModelVersion,
		Timezone:     report.Timezone,
		Days:         make([]domain.DayRisk, len(report.Days)),
	}

	for i, day := range report.Days {
		forecast, ok := byDate[day.Date]
		if !ok {
			// No ground truth for this date, nothing to correct against.
			corrected.Days[i] = day
			continue
		}

		maxProb := forecast.MaxPrecipProbability()
		correctLevel := domain.RiskLevelForProbability(maxProb)
		if day.RiskLevel != correctLevel {
			c.logger.Info("risk_level_overridden",
				slog.String("date", day.Date),
				slog.Int("max_precip_prob", maxProb),
				slog.String("model_level", string(day.RiskLevel)),
				slog.String("corrected_level", string(correctLevel)))
			day.RiskLevel = correctLevel
		}

		if maxProb < domain.MediumProbThreshold {
			day.Advice = rewriteClearWeatherAdvice(day.Advice)
		}

		corrected.Days[i] = day
	}

	return corrected
}

func rewriteClearWeatherAdvice(advice string) string {
	for _, rw := range adviceRewrites {
		advice = rw.pattern.ReplaceAllString(advice, rw.repl)
	}
	return advice
}

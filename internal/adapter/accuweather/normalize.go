package accuweather

import (
	"time"

	"travel-risk-orchestrator/internal/domain"
)

// NormalizeDaily converts the provider's daily payload into canonical
// metric DayForecast records. Absent nested fields stay absent; wind fields
// resolve day value, else night value, else nil.
func NormalizeDaily(payload DailyResponse) []domain.DayForecast {
	out := make([]domain.DayForecast, 0, len(payload.DailyForecasts))
	for _, raw := range payload.DailyForecasts {
		date := normalizeDate(raw.Date)
		if date == "" {
			continue
		}

		d := domain.DayForecast{Date: date}

		if raw.Temperature.Minimum != nil {
			d.TempMinC = floatPtr(domain.ToCelsius(raw.Temperature.Minimum.Value, raw.Temperature.Minimum.Unit))
		}
		if raw.Temperature.Maximum != nil {
			d.TempMaxC = floatPtr(domain.ToCelsius(raw.Temperature.Maximum.Value, raw.Temperature.Maximum.Unit))
		}

		if raw.Day != nil {
			d.PrecipProbabilityDay = precipProbability(raw.Day)
			d.PrecipAmountMmDay = liquidMm(raw.Day.TotalLiquid)
			d.PhraseDay = raw.Day.IconPhrase
		}
		if raw.Night != nil {
			d.PrecipProbabilityNight = precipProbability(raw.Night)
			d.PrecipAmountMmNight = liquidMm(raw.Night.TotalLiquid)
			d.PhraseNight = raw.Night.IconPhrase
		}

		d.WindSpeedKmh = windKmh(halfDayWind(raw.Day), halfDayWind(raw.Night))
		d.WindGustKmh = windKmh(halfDayGust(raw.Day), halfDayGust(raw.Night))
		d.WindDirection = windDirection(raw.Day, raw.Night)

		out = append(out, d)
	}
	return out
}

// NormalizeHourly converts the 12-hour hourly payload to metric records.
func NormalizeHourly(payload []HourlyForecast) []domain.HourForecast {
	out := make([]domain.HourForecast, 0, len(payload))
	for _, raw := range payload {
		ts, err := time.Parse(time.RFC3339, raw.DateTime)
		if err != nil {
			continue
		}

		h := domain.HourForecast{
			DateTime:          ts,
			PrecipProbability: raw.PrecipitationProbability,
			Phrase:            raw.IconPhrase,
		}
		if raw.Temperature != nil {
			h.TempC = floatPtr(domain.ToCelsius(raw.Temperature.Value, raw.Temperature.Unit))
		}
		h.PrecipAmountMm = liquidMm(raw.TotalLiquid)
		if raw.Wind != nil && raw.Wind.Speed != nil {
			h.WindSpeedKmh = floatPtr(domain.ToKilometersPerHour(raw.Wind.Speed.Value, raw.Wind.Speed.Unit))
		}
		out = append(out, h)
	}
	return out
}

// normalizeDate reduces the provider's timestamp ("2024-01-10T07:00:00+04:00")
// to a calendar date in the destination's local day.
func normalizeDate(raw string) string {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.Format(domain.DateLayout)
	}
	if len(raw) >= len(domain.DateLayout) {
		return raw[:len(domain.DateLayout)]
	}
	return ""
}

func precipProbability(h *HalfDay) *int {
	if h.PrecipitationProbability != nil {
		return h.PrecipitationProbability
	}
	return h.RainProbability
}

func liquidMm(v *UnitValue) *float64 {
	if v == nil {
		return nil
	}
	return floatPtr(domain.ToMillimeters(v.Value, v.Unit))
}

func halfDayWind(h *HalfDay) *UnitValue {
	if h == nil || h.Wind == nil {
		return nil
	}
	return h.Wind.Speed
}

func halfDayGust(h *HalfDay) *UnitValue {
	if h == nil || h.WindGust == nil {
		return nil
	}
	return h.WindGust.Speed
}

func windKmh(day, night *UnitValue) *float64 {
	v := day
	if v == nil {
		v = night
	}
	if v == nil {
		return nil
	}
	return floatPtr(domain.ToKilometersPerHour(v.Value, v.Unit))
}

func windDirection(day, night *HalfDay) *string {
	for _, h := range []*HalfDay{day, night} {
		if h != nil && h.Wind != nil && h.Wind.Direction != nil && h.Wind.Direction.Localized != "" {
			dir := h.Wind.Direction.Localized
			return &dir
		}
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }

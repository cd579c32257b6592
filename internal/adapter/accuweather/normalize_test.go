package accuweather

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dailyFixture = `{
	"DailyForecasts": [
		{
			"Date": "2024-01-10T07:00:00+04:00",
			"Temperature": {
				"Minimum": {"Value": 57.2, "Unit": "F"},
				"Maximum": {"Value": 78.8, "Unit": "F"}
			},
			"Day": {
				"IconPhrase": "Showers",
				"PrecipitationProbability": 65,
				"TotalLiquid": {"Value": 0.5, "Unit": "in"},
				"Wind": {
					"Speed": {"Value": 10, "Unit": "mi/h"},
					"Direction": {"Degrees": 120, "Localized": "ESE"}
				},
				"WindGust": {"Speed": {"Value": 20, "Unit": "mi/h"}}
			},
			"Night": {
				"IconPhrase": "Clear",
				"RainProbability": 30,
				"TotalLiquid": {"Value": 2, "Unit": "mm"}
			}
		},
		{
			"Date": "2024-01-11T07:00:00+04:00",
			"Temperature": {
				"Minimum": {"Value": 14, "Unit": "C"},
				"Maximum": {"Value": 26, "Unit": "C"}
			},
			"Night": {
				"IconPhrase": "Windy",
				"PrecipitationProbability": 10,
				"Wind": {
					"Speed": {"Value": 5, "Unit": "m/s"},
					"Direction": {"Degrees": 0, "Localized": "N"}
				}
			}
		}
	]
}`

func TestNormalizeDaily(t *testing.T) {
	var payload DailyResponse
	require.NoError(t, json.Unmarshal([]byte(dailyFixture), &payload))

	days := NormalizeDaily(payload)
	require.Len(t, days, 2)

	first := days[0]
	assert.Equal(t, "2024-01-10", first.Date)
	require.NotNil(t, first.TempMinC)
	assert.InDelta(t, 14, *first.TempMinC, 0.01, "57.2F is 14C")
	require.NotNil(t, first.TempMaxC)
	assert.InDelta(t, 26, *first.TempMaxC, 0.01)
	require.NotNil(t, first.PrecipProbabilityDay)
	assert.Equal(t, 65, *first.PrecipProbabilityDay)
	require.NotNil(t, first.PrecipProbabilityNight)
	assert.Equal(t, 30, *first.PrecipProbabilityNight, "RainProbability is the fallback key")
	require.NotNil(t, first.PrecipAmountMmDay)
	assert.InDelta(t, 12.7, *first.PrecipAmountMmDay, 0.01, "half an inch is 12.7mm")
	require.NotNil(t, first.PrecipAmountMmNight)
	assert.InDelta(t, 2, *first.PrecipAmountMmNight, 0.01, "metric amounts pass through")
	require.NotNil(t, first.WindSpeedKmh)
	assert.InDelta(t, 16.09, *first.WindSpeedKmh, 0.01)
	require.NotNil(t, first.WindGustKmh)
	assert.InDelta(t, 32.19, *first.WindGustKmh, 0.01)
	require.NotNil(t, first.WindDirection)
	assert.Equal(t, "ESE", *first.WindDirection)
	assert.Equal(t, "Showers", first.PhraseDay)

	// Second day has no Day block: wind falls back to the night value,
	// day-side precip stays absent.
	second := days[1]
	assert.Equal(t, "2024-01-11", second.Date)
	assert.Nil(t, second.PrecipProbabilityDay)
	require.NotNil(t, second.PrecipProbabilityNight)
	assert.Equal(t, 10, *second.PrecipProbabilityNight)
	require.NotNil(t, second.WindSpeedKmh)
	assert.InDelta(t, 18, *second.WindSpeedKmh, 0.01, "5 m/s is 18 km/h")
	require.NotNil(t, second.WindDirection)
	assert.Equal(t, "N", *second.WindDirection)
	assert.Nil(t, second.PrecipAmountMmDay)
	assert.Nil(t, second.WindGustKmh)
}

func TestNormalizeDaily_SkipsUnparseableDates(t *testing.T) {
	payload := DailyResponse{DailyForecasts: []DailyForecast{{Date: "bogus"}}}
	assert.Empty(t, NormalizeDaily(payload))
}

func TestNormalizeHourly(t *testing.T) {
	raw := `[
		{
			"DateTime": "2024-01-10T14:00:00+04:00",
			"IconPhrase": "Partly sunny",
			"Temperature": {"Value": 71.6, "Unit": "F"},
			"PrecipitationProbability": 15,
			"TotalLiquid": {"Value": 0, "Unit": "in"},
			"Wind": {"Speed": {"Value": 12, "Unit": "km/h"}}
		},
		{
			"DateTime": "not-a-time"
		}
	]`
	var payload []HourlyForecast
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))

	hours := NormalizeHourly(payload)
	require.Len(t, hours, 1, "unparseable timestamps are dropped")

	h := hours[0]
	require.NotNil(t, h.TempC)
	assert.InDelta(t, 22, *h.TempC, 0.01)
	require.NotNil(t, h.PrecipProbability)
	assert.Equal(t, 15, *h.PrecipProbability)
	require.NotNil(t, h.WindSpeedKmh)
	assert.InDelta(t, 12, *h.WindSpeedKmh, 0.01)
	assert.Equal(t, "Partly sunny", h.Phrase)
}

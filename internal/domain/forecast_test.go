package domain_test

import (
	"testing"

	"travel-risk-orchestrator/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(date string) domain.DayForecast {
	return domain.DayForecast{Date: date}
}

func TestNewItinerary(t *testing.T) {
	it, err := domain.NewItinerary("trip-1", "dubai", "2024-01-10", "2024-01-12")
	require.NoError(t, err)
	assert.Equal(t, "trip-1", it.ID)
	assert.Equal(t, "2024-01-10", it.StartDate)

	_, err = domain.NewItinerary("trip-2", "dubai", "2024-01-12", "2024-01-10")
	assert.Error(t, err, "inverted range must be rejected")

	_, err = domain.NewItinerary("trip-3", "dubai", "10/01/2024", "2024-01-12")
	assert.Error(t, err, "non-ISO start date must be rejected")
}

func TestFilterByRange(t *testing.T) {
	it, err := domain.NewItinerary("t", "d", "2024-01-10", "2024-01-12")
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    []domain.DayForecast
		expected []string
	}{
		{
			name:     "closed interval keeps both endpoints",
			input:    []domain.DayForecast{day("2024-01-09"), day("2024-01-10"), day("2024-01-11"), day("2024-01-12"), day("2024-01-13")},
			expected: []string{"2024-01-10", "2024-01-11", "2024-01-12"},
		},
		{
			name:     "unsorted input comes back in ascending date order",
			input:    []domain.DayForecast{day("2024-01-12"), day("2024-01-10"), day("2024-01-11")},
			expected: []string{"2024-01-10", "2024-01-11", "2024-01-12"},
		},
		{
			name:     "no overlap yields empty",
			input:    []domain.DayForecast{day("2024-01-01"), day("2024-01-02")},
			expected: nil,
		},
		{
			name:     "empty input",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.FilterByRange(tt.input, it)
			var dates []string
			for _, d := range got {
				dates = append(dates, d.Date)
			}
			assert.Equal(t, tt.expected, dates)
		})
	}
}

func TestDayForecast_MaxPrecipProbability(t *testing.T) {
	ten, five := 10, 5

	tests := []struct {
		name     string
		forecast domain.DayForecast
		expected int
	}{
		{name: "both absent", forecast: domain.DayForecast{}, expected: 0},
		{name: "day only", forecast: domain.DayForecast{PrecipProbabilityDay: &ten}, expected: 10},
		{name: "night only", forecast: domain.DayForecast{PrecipProbabilityNight: &ten}, expected: 10},
		{name: "night wins", forecast: domain.DayForecast{PrecipProbabilityDay: &five, PrecipProbabilityNight: &ten}, expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.forecast.MaxPrecipProbability())
		})
	}
}

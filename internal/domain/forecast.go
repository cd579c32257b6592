package domain

import (
	"fmt"
	"sort"
	"time"
)

// DateLayout is the wire format for calendar dates everywhere in the service.
// Fixed-width ISO dates compare correctly as strings.
const DateLayout = "2006-01-02"

// Destination is one entry of the configured destination set.
type Destination struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	LocationKey string `json:"locationKey"`
	Timezone    string `json:"timezone"`
}

// Itinerary is a destination plus an inclusive date range. Immutable once
// created; identified by an opaque id.
type Itinerary struct {
	ID            string `json:"id"`
	DestinationID string `json:"destinationId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// NewItinerary validates the date range and returns an immutable itinerary.
func NewItinerary(id, destinationID, startDate, endDate string) (Itinerary, error) {
	if _, err := time.Parse(DateLayout, startDate); err != nil {
		return Itinerary{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}
	if _, err := time.Parse(DateLayout, endDate); err != nil {
		return Itinerary{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}
	if startDate > endDate {
		return Itinerary{}, fmt.Errorf("start date %s is after end date %s", startDate, endDate)
	}
	return Itinerary{
		ID:            id,
		DestinationID: destinationID,
		StartDate:     startDate,
		EndDate:       endDate,
	}, nil
}

// Contains reports whether date falls inside the itinerary's closed interval.
func (it Itinerary) Contains(date string) bool {
	return it.StartDate <= date && date <= it.EndDate
}

// DayForecast is one calendar day of normalized weather for a destination.
// Magnitudes are metric: Celsius, km/h, millimeters. Absent provider fields
// stay nil rather than being zeroed.
type DayForecast struct {
	Date                   string   `json:"date"`
	PrecipProbabilityDay   *int     `json:"precipProbabilityDay,omitempty"`
	PrecipProbabilityNight *int     `json:"precipProbabilityNight,omitempty"`
	PrecipAmountMmDay      *float64 `json:"precipAmountMmDay,omitempty"`
	PrecipAmountMmNight    *float64 `json:"precipAmountMmNight,omitempty"`
	TempMinC               *float64 `json:"tempMinC,omitempty"`
	TempMaxC               *float64 `json:"tempMaxC,omitempty"`
	WindSpeedKmh           *float64 `json:"windSpeedKmh,omitempty"`
	WindGustKmh            *float64 `json:"windGustKmh,omitempty"`
	WindDirection          *string  `json:"windDirection,omitempty"`
	PhraseDay              string   `json:"phraseDay,omitempty"`
	PhraseNight            string   `json:"phraseNight,omitempty"`
}

// MaxPrecipProbability returns max(day, night) precipitation probability,
// treating absent values as zero.
func (d DayForecast) MaxPrecipProbability() int {
	p := 0
	if d.PrecipProbabilityDay != nil {
		p = *d.PrecipProbabilityDay
	}
	if d.PrecipProbabilityNight != nil && *d.PrecipProbabilityNight > p {
		p = *d.PrecipProbabilityNight
	}
	return p
}

// HourForecast is one normalized hourly record.
type HourForecast struct {
	DateTime          time.Time `json:"dateTime"`
	TempC             *float64  `json:"tempC,omitempty"`
	PrecipProbability *int      `json:"precipProbability,omitempty"`
	PrecipAmountMm    *float64  `json:"precipAmountMm,omitempty"`
	WindSpeedKmh      *float64  `json:"windSpeedKmh,omitempty"`
	Phrase            string    `json:"phrase,omitempty"`
}

// FilterByRange returns the forecasts whose date lies in the itinerary's
// closed interval, ordered ascending by date.
func FilterByRange(days []DayForecast, it Itinerary) []DayForecast {
	var out []DayForecast
	for _, d := range days {
		if it.Contains(d.Date) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

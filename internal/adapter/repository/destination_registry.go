package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"travel-risk-orchestrator/internal/domain"
)

// defaultDestinations seed the registry when no destination file is
// configured. Location keys are AccuWeather city keys.
var defaultDestinations = []domain.Destination{
	{ID: "dubai", Name: "Dubai", CountryCode: "AE", LocationKey: "323091", Timezone: "Asia/Dubai"},
	{ID: "tokyo", Name: "Tokyo", CountryCode: "JP", LocationKey: "226396", Timezone: "Asia/Tokyo"},
	{ID: "london", Name: "London", CountryCode: "GB", LocationKey: "328328", Timezone: "Europe/London"},
	{ID: "new-york", Name: "New York", CountryCode: "US", LocationKey: "349727", Timezone: "America/New_York"},
	{ID: "sydney", Name: "Sydney", CountryCode: "AU", LocationKey: "22889", Timezone: "Australia/Sydney"},
}

// DestinationRegistry is the configured destination set. Read-mostly and
// immutable after construction; the mutex only guards the map against
// racy reads during tests that rebuild registries.
type DestinationRegistry struct {
	mu   sync.RWMutex
	byID map[string]domain.Destination
}

// NewDestinationRegistry builds a registry from the given destinations, or
// from the built-in defaults when none are given.
func NewDestinationRegistry(destinations ...domain.Destination) *DestinationRegistry {
	if len(destinations) == 0 {
		destinations = defaultDestinations
	}
	byID := make(map[string]domain.Destination, len(destinations))
	for _, d := range destinations {
		byID[d.ID] = d
	}
	return &DestinationRegistry{byID: byID}
}

// NewDestinationRegistryFromFile loads a JSON array of destinations.
func NewDestinationRegistryFromFile(path string) (*DestinationRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read destinations file: %w", err)
	}
	var destinations []domain.Destination
	if err := json.Unmarshal(raw, &destinations); err != nil {
		return nil, fmt.Errorf("failed to parse destinations file: %w", err)
	}
	if len(destinations) == 0 {
		return nil, fmt.Errorf("destinations file %s is empty", path)
	}
	for i, d := range destinations {
		if d.ID == "" || d.LocationKey == "" {
			return nil, fmt.Errorf("destination at index %d is missing id or locationKey", i)
		}
	}
	return NewDestinationRegistry(destinations...), nil
}

// Get resolves a destination id against the configured set.
func (r *DestinationRegistry) Get(id string) (domain.Destination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	if !ok {
		return domain.Destination{}, &domain.UnknownDestinationError{ID: id}
	}
	return d, nil
}

// List returns every destination ordered by id.
func (r *DestinationRegistry) List() []domain.Destination {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Destination, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

var _ domain.DestinationRegistry = (*DestinationRegistry)(nil)

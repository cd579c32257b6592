package repository

import (
	"fmt"
	"sync"

	"travel-risk-orchestrator/internal/domain"

	"github.com/google/uuid"
)

// ItineraryStore keeps created itineraries in memory, keyed by their opaque
// id. Itineraries are immutable once created; there is no update path.
type ItineraryStore struct {
	mu   sync.RWMutex
	byID map[string]domain.Itinerary
}

// NewItineraryStore creates an empty store.
func NewItineraryStore() *ItineraryStore {
	return &ItineraryStore{byID: make(map[string]domain.Itinerary)}
}

// Create validates and stores a new itinerary, assigning it a fresh id.
func (s *ItineraryStore) Create(destinationID, startDate, endDate string) (domain.Itinerary, error) {
	it, err := domain.NewItinerary(uuid.NewString(), destinationID, startDate, endDate)
	if err != nil {
		return domain.Itinerary{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[it.ID] = it
	return it, nil
}

// Get returns the itinerary for id.
func (s *ItineraryStore) Get(id string) (domain.Itinerary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.byID[id]
	if !ok {
		return domain.Itinerary{}, fmt.Errorf("itinerary %q not found", id)
	}
	return it, nil
}

// List returns every stored itinerary in unspecified order.
func (s *ItineraryStore) List() []domain.Itinerary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Itinerary, 0, len(s.byID))
	for _, it := range s.byID {
		out = append(out, it)
	}
	return out
}

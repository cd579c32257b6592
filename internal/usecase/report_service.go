package usecase

import (
	"context"
	"log/slog"
	"time"

	"travel-risk-orchestrator/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// ReportService sits above the generate usecase and adds the two concerns
// the core pipeline deliberately does not own: an explicit report cache with
// invalidation, and per-itinerary de-duplication of in-flight generates.
type ReportService struct {
	generate GenerateReportUsecase
	registry domain.DestinationRegistry
	cache    *expirable.LRU[string, *GenerateReportOutput]
	group    singleflight.Group
	logger   *slog.Logger
}

// NewReportService creates a service with an expirable LRU of the given size
// and TTL.
func NewReportService(
	generate GenerateReportUsecase,
	registry domain.DestinationRegistry,
	cacheSize int,
	cacheTTL time.Duration,
	logger *slog.Logger,
) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		generate: generate,
		registry: registry,
		cache:    expirable.NewLRU[string, *GenerateReportOutput](cacheSize, nil, cacheTTL),
		logger:   logger,
	}
}

// Get returns the cached report for the itinerary when present, otherwise
// generates one. Concurrent calls for the same itinerary share a single
// generation.
func (s *ReportService) Get(ctx context.Context, it domain.Itinerary) (*GenerateReportOutput, error) {
	if out, ok := s.cache.Get(it.ID); ok {
		s.logger.Debug("report_cache_hit", slog.String("itinerary_id", it.ID))
		return out, nil
	}
	return s.regenerate(ctx, it)
}

// Refresh bypasses and replaces any cached report for the itinerary.
func (s *ReportService) Refresh(ctx context.Context, it domain.Itinerary) (*GenerateReportOutput, error) {
	s.Invalidate(it.ID)
	return s.regenerate(ctx, it)
}

// Invalidate drops the cached report for an itinerary id, if any.
func (s *ReportService) Invalidate(itineraryID string) {
	s.cache.Remove(itineraryID)
}

func (s *ReportService) regenerate(ctx context.Context, it domain.Itinerary) (*GenerateReportOutput, error) {
	v, err, shared := s.group.Do(it.ID, func() (any, error) {
		dest, err := s.registry.Get(it.DestinationID)
		if err != nil {
			return nil, err
		}
		out, err := s.generate.Execute(ctx, GenerateReportInput{
			Destination: dest,
			Itinerary:   it,
		})
		if err != nil {
			return nil, err
		}
		s.cache.Add(it.ID, out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("report_generation_deduplicated", slog.String("itinerary_id", it.ID))
	}
	return v.(*GenerateReportOutput), nil
}

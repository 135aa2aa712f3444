package search

import (
	"context"

	"github.com/Domenick1991/flightservice/internal/domain"
	"github.com/Domenick1991/flightservice/internal/repository"
	"github.com/Domenick1991/flightservice/internal/session"
	"go.uber.org/zap"
)

type SearchUseCase interface {
	Search(ctx context.Context, sess *session.Session, origin, dest string, directOnly bool, day, limit int) ([]domain.Itinerary, error)
}

// Cache fronts the direct-flight catalog read. Cache misses and cache errors
// both fall through to the store.
type Cache interface {
	GetDirect(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error)
	SetDirect(ctx context.Context, origin, dest string, day, limit int, flights []domain.Flight) error
}

type SearchService struct {
	flights repository.FlightRepository
	cache   Cache
	logger  *zap.Logger
}

func NewSearchService(flights repository.FlightRepository, cache Cache, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{flights: flights, cache: cache, logger: logger}
}

// Search computes up to limit itineraries: direct flights first, then, unless
// directOnly is set, one-stop connections filling the remainder. The result
// replaces the session's itinerary cache; nothing is cached on a store
// failure. An empty result is a normal outcome, not an error.
func (s *SearchService) Search(ctx context.Context, sess *session.Session, origin, dest string, directOnly bool, day, limit int) ([]domain.Itinerary, error) {
	if limit < 0 {
		limit = 0
	}

	direct, err := s.directFlights(ctx, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}

	itineraries := make([]domain.Itinerary, 0, limit)
	for _, f := range direct {
		itineraries = append(itineraries, domain.Itinerary{Flights: []domain.Flight{f}, Duration: f.Duration})
	}

	if !directOnly && len(itineraries) < limit {
		pairs, err := s.flights.FindConnections(ctx, origin, dest, day, limit-len(itineraries))
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			itineraries = append(itineraries, domain.Itinerary{
				Flights:  []domain.Flight{p[0], p[1]},
				Duration: p[0].Duration + p[1].Duration,
			})
		}
	}

	sess.SetItineraries(itineraries)
	return itineraries, nil
}

func (s *SearchService) directFlights(ctx context.Context, origin, dest string, day, limit int) ([]domain.Flight, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDirect(ctx, origin, dest, day, limit)
		if err != nil {
			s.logger.Warn("direct flight cache read failed", zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	direct, err := s.flights.FindDirect(ctx, origin, dest, day, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetDirect(ctx, origin, dest, day, limit, direct); err != nil {
			s.logger.Warn("direct flight cache write failed", zap.Error(err))
		}
	}
	return direct, nil
}

var _ SearchUseCase = (*SearchService)(nil)

package recommender

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/users"
)

// ErrPredictionFailed marks a whole-request predictor failure, as opposed
// to individual hints that simply found no catalog match.
var ErrPredictionFailed = errors.New("prediction failed")

// CatalogSource lists the entries hints are reconciled against.
type CatalogSource interface {
	List(ctx context.Context) ([]catalog.Movie, error)
}

// RatingSource supplies a user's rating history joined with titles.
type RatingSource interface {
	RatedMovies(ctx context.Context, userID int64) ([]users.RatedMovie, error)
}

// Service runs the recommendation pipeline: gather ratings, predict,
// reconcile.
type Service struct {
	catalog   CatalogSource
	ratings   RatingSource
	predictor Predictor
	logger    zerolog.Logger
}

// NewService creates a recommendation service.
func NewService(catalogSource CatalogSource, ratings RatingSource, predictor Predictor, logger zerolog.Logger) *Service {
	return &Service{
		catalog:   catalogSource,
		ratings:   ratings,
		predictor: predictor,
		logger:    logger.With().Str("component", "recommender").Logger(),
	}
}

// Recommend returns reconciled predictions for the given user. Stored
// ratings use a 1-10 scale; the prediction process expects 0.5-5, so each
// rating is halved on the way out.
func (s *Service) Recommend(ctx context.Context, userID int64) ([]RecommendedMovie, error) {
	rated, err := s.ratings.RatedMovies(ctx, userID)
	if err != nil {
		return nil, err
	}

	payload := make([]RatingEntry, 0, len(rated))
	for _, r := range rated {
		payload = append(payload, RatingEntry{
			Title:  r.Title,
			Year:   r.Year,
			Rating: float64(r.Rating) * 0.5,
		})
	}

	hints, err := s.predictor.Predict(ctx, userID, payload)
	if err != nil {
		s.logger.Error().Err(err).Int64("userId", userID).Msg("predictor failed")
		return nil, fmt.Errorf("%w: %v", ErrPredictionFailed, err)
	}

	entries, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := Reconcile(hints, entries)

	s.logger.Debug().
		Int64("userId", userID).
		Int("hints", len(hints)).
		Int("matched", len(matched)).
		Msg("reconciled recommendations")

	return matched, nil
}

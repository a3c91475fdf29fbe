package genres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrInvalidGenre  = errors.New("invalid genre data")
)

// Service provides genre operations.
type Service struct {
	store  *Store
	logger zerolog.Logger
}

// NewService creates a genre service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		store:  NewStore(db),
		logger: logger.With().Str("component", "genres").Logger(),
	}
}

// List returns all genres.
func (s *Service) List(ctx context.Context) ([]Genre, error) {
	return s.store.ListGenres(ctx)
}

// Get retrieves a genre by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Genre, error) {
	g, err := s.store.GetGenre(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGenreNotFound
		}
		return nil, fmt.Errorf("failed to get genre: %w", err)
	}
	return g, nil
}

// Create inserts a genre unless one with the same TMDB id already exists,
// in which case the stored row is returned with existing=true.
func (s *Service) Create(ctx context.Context, input CreateGenreInput) (genre *Genre, existing bool, err error) {
	if strings.TrimSpace(input.Name) == "" || input.TmdbID <= 0 {
		return nil, false, ErrInvalidGenre
	}

	if stored, err := s.store.GetGenreByTmdbID(ctx, input.TmdbID); err == nil {
		return stored, true, nil
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to check genre: %w", err)
	}

	g, err := s.store.InsertGenre(ctx, input)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			// Concurrent create for the same TMDB id.
			if stored, lookupErr := s.store.GetGenreByTmdbID(ctx, input.TmdbID); lookupErr == nil {
				return stored, true, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create genre: %w", err)
	}

	s.logger.Info().Int64("id", g.ID).Str("name", g.Name).Msg("created genre")
	return g, false, nil
}

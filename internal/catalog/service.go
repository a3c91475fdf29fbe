package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

var (
	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidMovie  = errors.New("invalid movie data")
)

// Broadcaster pushes entity change events to connected clients.
type Broadcaster interface {
	Broadcast(msgType string, payload interface{}) error
}

// Service provides catalog operations.
type Service struct {
	store  *Store
	hub    Broadcaster
	cfg    Config
	logger zerolog.Logger
}

// NewService creates a catalog service with default thresholds.
func NewService(db *sql.DB, hub Broadcaster, logger zerolog.Logger) *Service {
	return &Service{
		store:  NewStore(db),
		hub:    hub,
		cfg:    DefaultConfig(),
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Store exposes the underlying store for collaborating services.
func (s *Service) Store() *Store {
	return s.store
}

// List returns all catalog entries in persisted order.
func (s *Service) List(ctx context.Context) ([]Movie, error) {
	return s.store.ListMovies(ctx)
}

// Get retrieves a movie by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Movie, error) {
	m, err := s.store.GetMovie(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return m, nil
}

// Create inserts a new movie unless the catalog already holds it. When a
// duplicate is found the existing entry is returned with existing=true and
// no row is written. The check-then-insert sequence is backed by a unique
// (lower(title), year) index, so a concurrent create that slips past the
// in-memory check resolves to the stored row instead of inserting twice.
func (s *Service) Create(ctx context.Context, input CreateMovieInput) (movie *Movie, existing bool, err error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, false, ErrInvalidMovie
	}

	entries, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, false, err
	}

	if dup := FindDuplicate(entries, input.Title, input.Year, input.PosterURL, s.cfg.DuplicateSimilarityFloor); dup != nil {
		s.logger.Info().
			Int64("id", dup.ID).
			Str("title", input.Title).
			Msg("create resolved to existing movie")
		return dup, true, nil
	}

	m, err := s.store.InsertMovie(ctx, input)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent create for the same title/year.
			stored, lookupErr := s.store.GetMovieByTitleYear(ctx, input.Title, input.Year)
			if lookupErr == nil {
				s.logger.Info().
					Int64("id", stored.ID).
					Str("title", input.Title).
					Msg("create conflicted, resolved to existing movie")
				return stored, true, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create movie: %w", err)
	}

	s.logger.Info().Int64("id", m.ID).Str("title", m.Title).Msg("created movie")

	if s.hub != nil {
		s.hub.Broadcast("movie:added", m)
	}

	return m, false, nil
}

// Update applies the provided fields to an existing movie.
func (s *Service) Update(ctx context.Context, id int64, input UpdateMovieInput) (*Movie, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrInvalidMovie
		}
		updated.Title = *input.Title
	}
	if input.Year != nil {
		updated.Year = *input.Year
	}
	if input.PosterURL != nil {
		updated.PosterURL = *input.PosterURL
	}
	if input.BackdropURL != nil {
		updated.BackdropURL = *input.BackdropURL
	}
	if input.OriginalLanguage != nil {
		updated.OriginalLanguage = *input.OriginalLanguage
	}
	if input.Overview != nil {
		updated.Overview = *input.Overview
	}
	if input.Runtime != nil {
		updated.Runtime = *input.Runtime
	}
	if input.Tagline != nil {
		updated.Tagline = *input.Tagline
	}
	if input.VoteAverage != nil {
		updated.VoteAverage = *input.VoteAverage
	}
	if input.ProductionCompany != nil {
		updated.ProductionCompany = *input.ProductionCompany
	}
	if input.Director != nil {
		updated.Director = *input.Director
	}

	m, err := s.store.UpdateMovie(ctx, id, updated, input.Genres)
	if err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}

	s.logger.Info().Int64("id", id).Str("title", m.Title).Msg("updated movie")

	if s.hub != nil {
		s.hub.Broadcast("movie:updated", m)
	}

	return m, nil
}

// Delete removes a movie from the catalog.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteMovie(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}

	s.logger.Info().Int64("id", id).Msg("deleted movie")

	if s.hub != nil {
		s.hub.Broadcast("movie:deleted", map[string]int64{"id": id})
	}

	return nil
}

// Count returns the number of catalog entries.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.CountMovies(ctx)
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure from the (lower(title), year) index.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username or email already in use")
	ErrInvalidUser        = errors.New("invalid user data")
	ErrInvalidRating      = errors.New("rating must be between 1 and 10")
	ErrMovieNotRated      = errors.New("movie cannot be rated")
)

// Service provides account and rating operations.
type Service struct {
	store  *Store
	tokens *TokenService
	logger zerolog.Logger
}

// NewService creates a user service.
func NewService(db *sql.DB, tokens *TokenService, logger zerolog.Logger) *Service {
	return &Service{
		store:  NewStore(db),
		tokens: tokens,
		logger: logger.With().Str("component", "users").Logger(),
	}
}

// Tokens exposes the token service for auth middleware.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, ErrInvalidUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.InsertUser(ctx, input, string(hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Int64("id", user.ID).Str("username", user.Username).Msg("registered user")
	return user, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords report the same error so the response does not leak
// which half failed.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	stored, err := s.store.GetUserByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(stored.ID, stored.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	now := time.Now().UTC()
	if err := s.store.TouchLastLogin(ctx, stored.ID, now); err != nil {
		s.logger.Warn().Err(err).Int64("id", stored.ID).Msg("failed to stamp last login")
	}
	stored.LastLoginAt = &now

	s.logger.Info().Int64("id", stored.ID).Str("username", stored.Username).Msg("user logged in")
	return &LoginResult{Token: token, User: stored.User}, nil
}

// Get retrieves an account by ID.
func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

// UpdateProfile applies the provided profile fields.
func (s *Service) UpdateProfile(ctx context.Context, id int64, input UpdateProfileInput) (*User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *current
	if input.DisplayName != nil {
		updated.DisplayName = *input.DisplayName
	}
	if input.ProfilePictureURL != nil {
		updated.ProfilePictureURL = *input.ProfilePictureURL
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, ErrInvalidUser
		}
		updated.Email = *input.Email
	}

	user, err := s.store.UpdateProfile(ctx, updated)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Delete removes an account and its ratings.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}
	s.logger.Info().Int64("id", id).Msg("deleted user")
	return nil
}

// Rate records or replaces the user's rating for a movie.
func (s *Service) Rate(ctx context.Context, userID int64, input RateInput) (*Rating, error) {
	if input.Rating < 1 || input.Rating > 10 {
		return nil, ErrInvalidRating
	}
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	rating, err := s.store.UpsertRating(ctx, userID, input)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrMovieNotRated
		}
		return nil, fmt.Errorf("failed to save rating: %w", err)
	}

	s.logger.Info().
		Int64("userId", userID).
		Int64("movieId", input.MovieID).
		Int("rating", input.Rating).
		Msg("saved rating")
	return rating, nil
}

// Ratings returns the user's ratings.
func (s *Service) Ratings(ctx context.Context, userID int64) ([]Rating, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListRatings(ctx, userID)
}

// RatedMovies returns the user's ratings joined with catalog titles.
func (s *Service) RatedMovies(ctx context.Context, userID int64) ([]RatedMovie, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.store.ListRatedMovies(ctx, userID)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

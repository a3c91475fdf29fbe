package users

import (
	"context"
	"errors"
	"testing"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/testutil"
)

func newTestService(t *testing.T) (*Service, *catalog.Service, func()) {
	t.Helper()
	tdb := testutil.NewTestDB(t)

	tokens, err := NewTokenService(tdb.Conn, "")
	if err != nil {
		tdb.Close()
		t.Fatalf("NewTokenService() error = %v", err)
	}

	service := NewService(tdb.Conn, tokens, tdb.Logger)
	movies := catalog.NewService(tdb.Conn, nil, tdb.Logger)
	return service, movies, tdb.Close
}

func register(t *testing.T, service *Service, username string) *User {
	t.Helper()
	user, err := service.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	return user
}

func TestService_RegisterAndLogin(t *testing.T) {
	service, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	user := register(t, service, "andras")
	if user.ID == 0 {
		t.Error("Register() ID = 0, want non-zero")
	}
	if user.LastLoginAt != nil {
		t.Error("Register() LastLoginAt set, want nil before first login")
	}

	result, err := service.Login(ctx, LoginInput{Username: "andras", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("Login() Token empty, want signed token")
	}
	if result.User.LastLoginAt == nil {
		t.Error("Login() LastLoginAt nil, want stamped")
	}

	claims, err := service.Tokens().Validate(result.Token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.UserID != user.ID {
		t.Errorf("Validate() UserID = %d, want %d", claims.UserID, user.ID)
	}
	if claims.ID == "" {
		t.Error("Validate() token missing jti")
	}
}

func TestService_LoginFailuresAreUniform(t *testing.T) {
	service, _, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	register(t, service, "andras")

	_, wrongPassword := service.Login(ctx, LoginInput{Username: "andras", Password: "nope"})
	_, unknownUser := service.Login(ctx, LoginInput{Username: "ghost", Password: "nope"})

	if !errors.Is(wrongPassword, ErrInvalidCredentials) {
		t.Errorf("Login() wrong password error = %v, want ErrInvalidCredentials", wrongPassword)
	}
	if !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Errorf("Login() unknown user error = %v, want ErrInvalidCredentials", unknownUser)
	}
}

func TestService_RegisterDuplicateUsername(t *testing.T) {
	service, _, cleanup := newTestService(t)
	defer cleanup()

	register(t, service, "andras")
	_, err := service.Register(context.Background(), RegisterInput{
		Username: "andras",
		Email:    "other@example.com",
		Password: "hunter22",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register() duplicate error = %v, want ErrUsernameTaken", err)
	}
}

func TestService_RateUpserts(t *testing.T) {
	service, movies, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	user := register(t, service, "andras")
	movie, _, err := movies.Create(ctx, catalog.CreateMovieInput{Title: "Inception", Year: 2010})
	if err != nil {
		t.Fatalf("Create() movie error = %v", err)
	}

	first, err := service.Rate(ctx, user.ID, RateInput{MovieID: movie.ID, Rating: 7})
	if err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if first.Rating != 7 {
		t.Errorf("Rate() rating = %d, want 7", first.Rating)
	}

	second, err := service.Rate(ctx, user.ID, RateInput{MovieID: movie.ID, Rating: 9, Review: "rewatched"})
	if err != nil {
		t.Fatalf("Rate() re-rate error = %v", err)
	}
	if second.Rating != 9 {
		t.Errorf("Rate() re-rate rating = %d, want 9", second.Rating)
	}
	if second.ID != first.ID {
		t.Errorf("Rate() re-rate created new row %d, want upsert into %d", second.ID, first.ID)
	}

	ratings, err := service.Ratings(ctx, user.ID)
	if err != nil {
		t.Fatalf("Ratings() error = %v", err)
	}
	if len(ratings) != 1 {
		t.Fatalf("Ratings() returned %d rows, want 1 after upsert", len(ratings))
	}
	if ratings[0].Review != "rewatched" {
		t.Errorf("Ratings() review = %q, want %q", ratings[0].Review, "rewatched")
	}
}

func TestService_RateValidation(t *testing.T) {
	service, movies, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	user := register(t, service, "andras")
	movie, _, _ := movies.Create(ctx, catalog.CreateMovieInput{Title: "Inception", Year: 2010})

	if _, err := service.Rate(ctx, user.ID, RateInput{MovieID: movie.ID, Rating: 0}); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Rate(0) error = %v, want ErrInvalidRating", err)
	}
	if _, err := service.Rate(ctx, user.ID, RateInput{MovieID: movie.ID, Rating: 11}); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Rate(11) error = %v, want ErrInvalidRating", err)
	}
	if _, err := service.Rate(ctx, user.ID, RateInput{MovieID: 9999, Rating: 5}); !errors.Is(err, ErrMovieNotRated) {
		t.Errorf("Rate(missing movie) error = %v, want ErrMovieNotRated", err)
	}
	if _, err := service.Rate(ctx, 9999, RateInput{MovieID: movie.ID, Rating: 5}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Rate(missing user) error = %v, want ErrUserNotFound", err)
	}
}

func TestService_RatedMoviesJoinsTitles(t *testing.T) {
	service, movies, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	user := register(t, service, "andras")
	inception, _, _ := movies.Create(ctx, catalog.CreateMovieInput{Title: "Inception", Year: 2010})
	memento, _, _ := movies.Create(ctx, catalog.CreateMovieInput{Title: "Memento", Year: 2000})

	if _, err := service.Rate(ctx, user.ID, RateInput{MovieID: inception.ID, Rating: 9}); err != nil {
		t.Fatalf("Rate() error = %v", err)
	}
	if _, err := service.Rate(ctx, user.ID, RateInput{MovieID: memento.ID, Rating: 8}); err != nil {
		t.Fatalf("Rate() error = %v", err)
	}

	rated, err := service.RatedMovies(ctx, user.ID)
	if err != nil {
		t.Fatalf("RatedMovies() error = %v", err)
	}
	if len(rated) != 2 {
		t.Fatalf("RatedMovies() returned %d rows, want 2", len(rated))
	}
	if rated[0].Title != "Inception" || rated[0].Year != 2010 || rated[0].Rating != 9 {
		t.Errorf("RatedMovies()[0] = %+v, want Inception/2010/9", rated[0])
	}
}

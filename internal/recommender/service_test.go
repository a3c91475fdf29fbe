package recommender

import (
	"context"
	"errors"
	"testing"

	"github.com/andraskurtos/movie-recommender/internal/catalog"
	"github.com/andraskurtos/movie-recommender/internal/testutil"
	"github.com/andraskurtos/movie-recommender/internal/users"
)

type fakePredictor struct {
	hints    []Hint
	err      error
	gotUser  int64
	gotRated []RatingEntry
}

func (f *fakePredictor) Predict(_ context.Context, userID int64, ratings []RatingEntry) ([]Hint, error) {
	f.gotUser = userID
	f.gotRated = ratings
	if f.err != nil {
		return nil, f.err
	}
	return f.hints, nil
}

type staticCatalog struct {
	entries []catalog.Movie
}

func (s staticCatalog) List(context.Context) ([]catalog.Movie, error) {
	return s.entries, nil
}

type staticRatings struct {
	rated []users.RatedMovie
	err   error
}

func (s staticRatings) RatedMovies(context.Context, int64) ([]users.RatedMovie, error) {
	return s.rated, s.err
}

func TestService_RecommendScalesRatings(t *testing.T) {
	predictor := &fakePredictor{hints: []Hint{
		{Title: "Heat", Year: testutil.IntPtr(1995), PredictedRating: 4.2},
	}}
	service := NewService(
		staticCatalog{entries: []catalog.Movie{{ID: 1, Title: "Heat", Year: 1995}}},
		staticRatings{rated: []users.RatedMovie{
			{MovieID: 1, Title: "Inception", Year: 2010, Rating: 9},
			{MovieID: 2, Title: "Memento", Year: 2000, Rating: 6},
		}},
		predictor,
		testutil.NopLogger(),
	)

	recs, err := service.Recommend(context.Background(), 7)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if predictor.gotUser != 7 {
		t.Errorf("Predict() userID = %d, want 7", predictor.gotUser)
	}
	// Stored 1-10 ratings go out on the predictor's 0.5-5 scale.
	if len(predictor.gotRated) != 2 {
		t.Fatalf("Predict() received %d ratings, want 2", len(predictor.gotRated))
	}
	if predictor.gotRated[0].Rating != 4.5 {
		t.Errorf("Predict() rating[0] = %v, want 4.5", predictor.gotRated[0].Rating)
	}
	if predictor.gotRated[1].Rating != 3.0 {
		t.Errorf("Predict() rating[1] = %v, want 3.0", predictor.gotRated[1].Rating)
	}

	if len(recs) != 1 || recs[0].Movie.ID != 1 {
		t.Errorf("Recommend() = %v, want the reconciled Heat entry", recs)
	}
}

func TestService_PredictorFailureIsRequestLevel(t *testing.T) {
	service := NewService(
		staticCatalog{},
		staticRatings{},
		&fakePredictor{err: errors.New("exit status 1")},
		testutil.NopLogger(),
	)

	_, err := service.Recommend(context.Background(), 1)
	if !errors.Is(err, ErrPredictionFailed) {
		t.Errorf("Recommend() error = %v, want ErrPredictionFailed", err)
	}
}

func TestService_RatingLookupErrorPropagates(t *testing.T) {
	service := NewService(
		staticCatalog{},
		staticRatings{err: users.ErrUserNotFound},
		&fakePredictor{},
		testutil.NopLogger(),
	)

	_, err := service.Recommend(context.Background(), 1)
	if !errors.Is(err, users.ErrUserNotFound) {
		t.Errorf("Recommend() error = %v, want ErrUserNotFound", err)
	}
}

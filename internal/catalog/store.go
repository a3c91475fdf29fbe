package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Store runs catalog queries against the SQLite database. Listing returns
// rows ordered by id; tie ordering in ranked search relies on this
// persisted order being stable.
type Store struct {
	db *sql.DB
}

// NewStore creates a catalog store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const movieColumns = `id, title, year, poster_url, backdrop_url, original_language,
	overview, runtime, tagline, vote_average, production_company, director,
	created_at, updated_at`

// ListMovies returns all catalog entries ordered by id, with their TMDB
// genre ids attached.
func (st *Store) ListMovies(ctx context.Context) ([]Movie, error) {
	rows, err := st.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}

	if err := st.attachGenres(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetMovie returns one catalog entry, or sql.ErrNoRows.
func (st *Store) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	row := st.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if err != nil {
		return nil, err
	}

	genres, err := st.movieGenreIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Genres = genres
	return m, nil
}

// GetMovieByTitleYear returns the entry with the given case-folded title
// and year, or sql.ErrNoRows. Used to resolve insert conflicts against
// the unique (lower(title), year) index.
func (st *Store) GetMovieByTitleYear(ctx context.Context, title string, year int) (*Movie, error) {
	row := st.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE lower(title) = ? AND year = ?`,
		strings.ToLower(title), year)
	m, err := scanMovie(row)
	if err != nil {
		return nil, err
	}

	genres, err := st.movieGenreIDs(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	m.Genres = genres
	return m, nil
}

// InsertMovie inserts a movie and links it to the genres whose TMDB ids
// are listed in input.Genres. Unknown TMDB ids are skipped.
func (st *Store) InsertMovie(ctx context.Context, input CreateMovieInput) (*Movie, error) {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO movies (title, year, poster_url, backdrop_url, original_language,
			overview, runtime, tagline, vote_average, production_company, director)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		input.Title, input.Year, input.PosterURL, input.BackdropURL,
		input.OriginalLanguage, input.Overview, input.Runtime, input.Tagline,
		input.VoteAverage, input.ProductionCompany, input.Director)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	if err := linkGenres(ctx, tx, id, input.Genres); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit movie insert: %w", err)
	}

	return st.GetMovie(ctx, id)
}

// UpdateMovie overwrites the stored row and genre links for id.
func (st *Store) UpdateMovie(ctx context.Context, id int64, m Movie, genres []int64) (*Movie, error) {
	tx, err := st.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE movies SET title = ?, year = ?, poster_url = ?, backdrop_url = ?,
			original_language = ?, overview = ?, runtime = ?, tagline = ?,
			vote_average = ?, production_company = ?, director = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		m.Title, m.Year, m.PosterURL, m.BackdropURL, m.OriginalLanguage,
		m.Overview, m.Runtime, m.Tagline, m.VoteAverage, m.ProductionCompany,
		m.Director, id)
	if err != nil {
		return nil, err
	}

	if genres != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM movie_genres WHERE movie_id = ?`, id); err != nil {
			return nil, fmt.Errorf("failed to clear genre links: %w", err)
		}
		if err := linkGenres(ctx, tx, id, genres); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit movie update: %w", err)
	}

	return st.GetMovie(ctx, id)
}

// DeleteMovie removes a movie; genre links and ratings cascade.
func (st *Store) DeleteMovie(ctx context.Context, id int64) error {
	res, err := st.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountMovies returns the number of catalog entries.
func (st *Store) CountMovies(ctx context.Context) (int64, error) {
	var count int64
	err := st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return count, nil
}

func linkGenres(ctx context.Context, tx *sql.Tx, movieID int64, tmdbIDs []int64) error {
	for _, tmdbID := range tmdbIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO movie_genres (movie_id, genre_id)
			SELECT ?, id FROM genres WHERE tmdb_id = ?`, movieID, tmdbID)
		if err != nil {
			return fmt.Errorf("failed to link genre %d: %w", tmdbID, err)
		}
	}
	return nil
}

func (st *Store) movieGenreIDs(ctx context.Context, movieID int64) ([]int64, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT g.tmdb_id FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		WHERE mg.movie_id = ?
		ORDER BY g.tmdb_id`, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to load movie genres: %w", err)
	}
	defer rows.Close()

	genres := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan genre id: %w", err)
		}
		genres = append(genres, id)
	}
	return genres, rows.Err()
}

func (st *Store) attachGenres(ctx context.Context, movies []Movie) error {
	if len(movies) == 0 {
		return nil
	}

	rows, err := st.db.QueryContext(ctx, `
		SELECT mg.movie_id, g.tmdb_id FROM movie_genres mg
		JOIN genres g ON g.id = mg.genre_id
		ORDER BY mg.movie_id, g.tmdb_id`)
	if err != nil {
		return fmt.Errorf("failed to load genre links: %w", err)
	}
	defer rows.Close()

	byMovie := make(map[int64][]int64)
	for rows.Next() {
		var movieID, tmdbID int64
		if err := rows.Scan(&movieID, &tmdbID); err != nil {
			return fmt.Errorf("failed to scan genre link: %w", err)
		}
		byMovie[movieID] = append(byMovie[movieID], tmdbID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to load genre links: %w", err)
	}

	for i := range movies {
		if genres, ok := byMovie[movies[i].ID]; ok {
			movies[i].Genres = genres
		} else {
			movies[i].Genres = []int64{}
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*Movie, error) {
	var m Movie
	err := row.Scan(&m.ID, &m.Title, &m.Year, &m.PosterURL, &m.BackdropURL,
		&m.OriginalLanguage, &m.Overview, &m.Runtime, &m.Tagline,
		&m.VoteAverage, &m.ProductionCompany, &m.Director,
		&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}
	return &m, nil
}

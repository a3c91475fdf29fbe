package genres

import (
	"context"
	"database/sql"
	"fmt"
)

// Store wraps genre persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a genre store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListGenres returns all genres with their movie id lists.
func (st *Store) ListGenres(ctx context.Context) ([]Genre, error) {
	rows, err := st.db.QueryContext(ctx, "SELECT id, name, tmdb_id FROM genres ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	defer rows.Close()

	var out []Genre
	index := map[int64]int{}
	for rows.Next() {
		var g Genre
		if err := rows.Scan(&g.ID, &g.Name, &g.TmdbID); err != nil {
			return nil, fmt.Errorf("failed to scan genre: %w", err)
		}
		g.MovieIDs = []int64{}
		index[g.ID] = len(out)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	links, err := st.db.QueryContext(ctx, "SELECT genre_id, movie_id FROM movie_genres ORDER BY movie_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list genre links: %w", err)
	}
	defer links.Close()

	for links.Next() {
		var genreID, movieID int64
		if err := links.Scan(&genreID, &movieID); err != nil {
			return nil, fmt.Errorf("failed to scan genre link: %w", err)
		}
		if i, ok := index[genreID]; ok {
			out[i].MovieIDs = append(out[i].MovieIDs, movieID)
		}
	}
	return out, links.Err()
}

// GetGenre fetches a genre and its movie ids by row id.
func (st *Store) GetGenre(ctx context.Context, id int64) (*Genre, error) {
	var g Genre
	err := st.db.QueryRowContext(ctx,
		"SELECT id, name, tmdb_id FROM genres WHERE id = ?", id).
		Scan(&g.ID, &g.Name, &g.TmdbID)
	if err != nil {
		return nil, err
	}
	if g.MovieIDs, err = st.genreMovieIDs(ctx, g.ID); err != nil {
		return nil, err
	}
	return &g, nil
}

// GetGenreByTmdbID fetches a genre by its upstream id.
func (st *Store) GetGenreByTmdbID(ctx context.Context, tmdbID int64) (*Genre, error) {
	var g Genre
	err := st.db.QueryRowContext(ctx,
		"SELECT id, name, tmdb_id FROM genres WHERE tmdb_id = ?", tmdbID).
		Scan(&g.ID, &g.Name, &g.TmdbID)
	if err != nil {
		return nil, err
	}
	if g.MovieIDs, err = st.genreMovieIDs(ctx, g.ID); err != nil {
		return nil, err
	}
	return &g, nil
}

// InsertGenre writes a new genre row.
func (st *Store) InsertGenre(ctx context.Context, input CreateGenreInput) (*Genre, error) {
	res, err := st.db.ExecContext(ctx,
		"INSERT INTO genres (name, tmdb_id) VALUES (?, ?)", input.Name, input.TmdbID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted genre id: %w", err)
	}
	return st.GetGenre(ctx, id)
}

func (st *Store) genreMovieIDs(ctx context.Context, genreID int64) ([]int64, error) {
	rows, err := st.db.QueryContext(ctx,
		"SELECT movie_id FROM movie_genres WHERE genre_id = ? ORDER BY movie_id", genreID)
	if err != nil {
		return nil, fmt.Errorf("failed to list genre movies: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

package users

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store wraps user and rating persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a user store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const userColumns = "id, username, email, display_name, profile_picture_url, created_at, last_login_at"

// storedUser carries the password hash alongside the public projection
// for credential checks.
type storedUser struct {
	User
	PasswordHash string
}

// InsertUser writes a new account row and returns the stored projection.
func (st *Store) InsertUser(ctx context.Context, input RegisterInput, passwordHash string) (*User, error) {
	res, err := st.db.ExecContext(ctx, `
		INSERT INTO users (username, email, display_name, profile_picture_url, password_hash)
		VALUES (?, ?, ?, ?, ?)
	`, input.Username, input.Email, input.DisplayName, input.ProfilePictureURL, passwordHash)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted user id: %w", err)
	}

	return st.GetUser(ctx, id)
}

// GetUser fetches a user by ID.
func (st *Store) GetUser(ctx context.Context, id int64) (*User, error) {
	row := st.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

// GetUserByUsername fetches a user plus password hash for login checks.
func (st *Store) GetUserByUsername(ctx context.Context, username string) (*storedUser, error) {
	row := st.db.QueryRowContext(ctx,
		"SELECT "+userColumns+", password_hash FROM users WHERE username = ?", username)

	var u storedUser
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.ProfilePictureURL,
		&u.CreatedAt, &lastLogin, &u.PasswordHash)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

// ListUsers returns all accounts in creation order.
func (st *Store) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := st.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// UpdateProfile persists the given projection's mutable fields.
func (st *Store) UpdateProfile(ctx context.Context, u User) (*User, error) {
	_, err := st.db.ExecContext(ctx, `
		UPDATE users SET email = ?, display_name = ?, profile_picture_url = ?
		WHERE id = ?
	`, u.Email, u.DisplayName, u.ProfilePictureURL, u.ID)
	if err != nil {
		return nil, err
	}
	return st.GetUser(ctx, u.ID)
}

// TouchLastLogin stamps the account's last successful login.
func (st *Store) TouchLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := st.db.ExecContext(ctx, "UPDATE users SET last_login_at = ? WHERE id = ?", at, id)
	return err
}

// DeleteUser removes an account. Ratings cascade.
func (st *Store) DeleteUser(ctx context.Context, id int64) error {
	res, err := st.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertRating writes or replaces the user's rating for a movie.
func (st *Store) UpsertRating(ctx context.Context, userID int64, input RateInput) (*Rating, error) {
	_, err := st.db.ExecContext(ctx, `
		INSERT INTO user_ratings (user_id, movie_id, rating, review)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, movie_id) DO UPDATE SET
			rating = excluded.rating,
			review = excluded.review,
			updated_at = CURRENT_TIMESTAMP
	`, userID, input.MovieID, input.Rating, input.Review)
	if err != nil {
		return nil, err
	}

	row := st.db.QueryRowContext(ctx, `
		SELECT id, user_id, movie_id, rating, COALESCE(review, ''), created_at, updated_at
		FROM user_ratings WHERE user_id = ? AND movie_id = ?
	`, userID, input.MovieID)

	return scanRating(row)
}

// ListRatings returns the user's ratings in creation order.
func (st *Store) ListRatings(ctx context.Context, userID int64) ([]Rating, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT id, user_id, movie_id, rating, COALESCE(review, ''), created_at, updated_at
		FROM user_ratings WHERE user_id = ? ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	var out []Rating
	for rows.Next() {
		r, err := scanRating(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ListRatedMovies joins the user's ratings with catalog titles, the shape
// the recommendation pipeline consumes.
func (st *Store) ListRatedMovies(ctx context.Context, userID int64) ([]RatedMovie, error) {
	rows, err := st.db.QueryContext(ctx, `
		SELECT r.movie_id, m.title, m.year, r.rating
		FROM user_ratings r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = ?
		ORDER BY r.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rated movies: %w", err)
	}
	defer rows.Close()

	var out []RatedMovie
	for rows.Next() {
		var rm RatedMovie
		if err := rows.Scan(&rm.MovieID, &rm.Title, &rm.Year, &rm.Rating); err != nil {
			return nil, fmt.Errorf("failed to scan rated movie: %w", err)
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	var lastLogin sql.NullTime
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.DisplayName, &u.ProfilePictureURL,
		&u.CreatedAt, &lastLogin)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

func scanRating(row rowScanner) (*Rating, error) {
	var r Rating
	var updated sql.NullTime
	err := row.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Rating, &r.Review, &r.CreatedAt, &updated)
	if err != nil {
		return nil, err
	}
	if updated.Valid {
		r.UpdatedAt = &updated.Time
	}
	return &r, nil
}

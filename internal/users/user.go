// Package users manages accounts, login sessions and movie ratings.
package users

import "time"

// User is the public projection of an account. The password hash never
// leaves the package.
type User struct {
	ID                int64      `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	DisplayName       string     `json:"displayName"`
	ProfilePictureURL string     `json:"profilePictureUrl"`
	CreatedAt         time.Time  `json:"createdAt"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
}

// RegisterInput carries the fields accepted when creating an account.
type RegisterInput struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	DisplayName       string `json:"displayName"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

// LoginInput carries login credentials.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateProfileInput carries optional profile changes.
type UpdateProfileInput struct {
	DisplayName       *string `json:"displayName"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
	Email             *string `json:"email"`
}

// Rating is a user's score for a catalog entry on a 1-10 scale.
type Rating struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	MovieID   int64      `json:"movieId"`
	Rating    int        `json:"rating"`
	Review    string     `json:"review,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// RateInput carries a rating submission.
type RateInput struct {
	MovieID int64  `json:"movieId"`
	Rating  int    `json:"rating"`
	Review  string `json:"review"`
}

// RatedMovie is a rating joined with its movie, as consumed by the
// recommendation pipeline.
type RatedMovie struct {
	MovieID int64  `json:"movieId"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Rating  int    `json:"rating"`
}

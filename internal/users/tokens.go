package users

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenExpiry         = 30 * 24 * time.Hour
	jwtSecretSettingKey = "jwt_secret"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims are the JWT claims issued on login.
type Claims struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and validates login tokens. The signing secret is
// taken from configuration when provided, otherwise generated once and
// persisted in the settings table so tokens survive restarts.
type TokenService struct {
	jwtSecret []byte
}

// NewTokenService builds a token service, resolving the signing secret.
func NewTokenService(db *sql.DB, configuredSecret string) (*TokenService, error) {
	secret := []byte(configuredSecret)

	if len(secret) == 0 {
		var err error
		secret, err = loadOrGenerateSecret(db)
		if err != nil {
			return nil, err
		}
	}

	return &TokenService{jwtSecret: secret}, nil
}

func loadOrGenerateSecret(db *sql.DB) ([]byte, error) {
	ctx := context.Background()

	var stored string
	err := db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", jwtSecretSettingKey).Scan(&stored)

	switch {
	case err == nil && stored != "":
		secret, decErr := hex.DecodeString(stored)
		if decErr != nil {
			return nil, fmt.Errorf("failed to decode stored JWT secret: %w", decErr)
		}
		return secret, nil

	case errors.Is(err, sql.ErrNoRows) || (err == nil && stored == ""):
		return generateAndPersistSecret(ctx, db)

	default:
		return nil, fmt.Errorf("failed to load JWT secret from database: %w", err)
	}
}

func generateAndPersistSecret(ctx context.Context, db *sql.DB) ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, jwtSecretSettingKey, hex.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to persist JWT secret: %w", err)
	}

	return secret, nil
}

// Generate creates a signed token for the given user.
func (t *TokenService) Generate(userID int64, username string) (string, error) {
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "movierec",
			Subject:   fmt.Sprintf("%d", userID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.jwtSecret)
}

// Validate parses a token string and returns its claims.
func (t *TokenService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

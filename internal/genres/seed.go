package genres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed genres.yaml
var defaultGenresYAML []byte

type seedFile struct {
	Genres []seedGenre `yaml:"genres"`
}

type seedGenre struct {
	Name   string `yaml:"name"`
	TmdbID int64  `yaml:"tmdbId"`
}

// EnsureDefaults inserts the embedded genre taxonomy, skipping rows whose
// TMDB id is already present. Safe to run on every startup.
func EnsureDefaults(ctx context.Context, db *sql.DB) error {
	var seed seedFile
	if err := yaml.Unmarshal(defaultGenresYAML, &seed); err != nil {
		return fmt.Errorf("failed to parse embedded genre seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin genre seed: %w", err)
	}
	defer tx.Rollback()

	for _, g := range seed.Genres {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO genres (name, tmdb_id) VALUES (?, ?)",
			g.Name, g.TmdbID); err != nil {
			return fmt.Errorf("failed to seed genre %q: %w", g.Name, err)
		}
	}

	return tx.Commit()
}

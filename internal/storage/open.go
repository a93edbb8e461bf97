package storage

import (
	"fmt"
	"strings"

	"github.com/julianstephens/thoughts/internal/migration"
)

// New picks a backend from the config value: a PostgreSQL connection string,
// a .json file, or (default) an SQLite database file.
func New(config string) Provider {
	switch {
	case IsPostgresConnString(config):
		return NewPostgresStore(config)
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return NewJSONStore(config)
	default:
		return NewSQLiteStore(config)
	}
}

// Migrator is implemented by backends with a versioned schema
type Migrator interface {
	Migrate() (int, error)
	SchemaVersion() (current, latest int, err error)
}

func schemaVersion(r *migration.Runner) (int, int, error) {
	current, err := r.GetCurrentVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := r.GetLatestVersion()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, nil
}

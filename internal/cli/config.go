package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/keyring"
	"github.com/julianstephens/thoughts/internal/storage"
)

// PostgresKeyword as the config value reads the connection string from
// THOUGHTS_DB_CONNECTION, then from the OS keyring.
const PostgresKeyword = "postgres"

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// OpenStore builds the provider for a --config value. It also returns the
// directory holding logs, which for PostgreSQL is the default config dir.
func OpenStore(config string) (storage.Provider, string, error) {
	defaultDir, err := ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		return nil, "", err
	}

	if config == PostgresKeyword {
		connStr, err := postgresConnString()
		if err != nil {
			return nil, "", err
		}
		return storage.NewPostgresStore(connStr), defaultDir, nil
	}

	if storage.IsPostgresConnString(config) {
		if err := storage.ValidateConnString(config); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return nil, "", fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed on the command line. " +
					"Store it with 'thoughts keyring set' or export " + constants.EnvDBConnection + ", then use --config=postgres")
			}
			return nil, "", err
		}
		return storage.NewPostgresStore(config), defaultDir, nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, "", err
	}
	return storage.New(path), filepath.Dir(path), nil
}

func postgresConnString() (string, error) {
	if connStr := strings.TrimSpace(os.Getenv(constants.EnvDBConnection)); connStr != "" {
		return connStr, nil
	}

	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("no PostgreSQL connection string found. Set %s or run 'thoughts keyring set'", constants.EnvDBConnection)
		}
		return "", err
	}
	return connStr, nil
}

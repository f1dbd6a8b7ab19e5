package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/weekendly/internal/storage"
	"github.com/julianstephens/weekendly/internal/storage/postgres"
	"github.com/julianstephens/weekendly/internal/storage/sqlite"
)

// OpenStore picks a storage backend for path: PostgreSQL for connection
// strings, a JSON file for *.json paths, SQLite otherwise.
func OpenStore(path string) (storage.Provider, error) {
	if postgres.IsConnString(path) {
		if _, err := postgres.ValidateConnString(path); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use 'weekendly keys set database-connection', environment variables or .pgpass instead")
			}
			return nil, err
		}
		return postgres.New(path), nil
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(expanded), ".json") {
		return storage.NewJSONStore(expanded), nil
	}
	return sqlite.NewStore(expanded), nil
}

// ExpandPath resolves a leading ~ to the user's home directory
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

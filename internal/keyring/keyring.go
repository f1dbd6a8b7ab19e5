// Package keyring stores secrets in the OS keyring under the weekendly
// service name: the postgres connection string and upstream API keys.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/weekendly/internal/constants"
)

var (
	// ErrNotFound is returned when no secret is stored under the name
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
	// ErrUnknownKey is returned for names outside KeyNames
	ErrUnknownKey = errors.New("unknown keyring entry")
)

// KeyNames lists the entries `weekendly keys` may manage
var KeyNames = []string{
	constants.DefaultKeyringUser,
	constants.AdapterPlaces,
	constants.AdapterMovies,
	constants.AdapterGames,
}

// account maps a key name to its keyring user. API keys are stored as
// "<adapter>-api-key".
func account(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range KeyNames {
		if name != known {
			continue
		}
		if name == constants.DefaultKeyringUser {
			return name, nil
		}
		return name + "-api-key", nil
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownKey, name, strings.Join(KeyNames, ", "))
}

// Get retrieves a named secret. Returns ErrNotFound if nothing is stored.
func Get(name string) (string, error) {
	user, err := account(name)
	if err != nil {
		return "", err
	}
	value, err := keyring.Get(constants.AppName, user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return value, nil
}

func Set(name, value string) error {
	user, err := account(name)
	if err != nil {
		return err
	}
	if value == "" {
		return errors.New("secret cannot be empty")
	}
	if err := keyring.Set(constants.AppName, user, value); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func Delete(name string) error {
	user, err := account(name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(constants.AppName, user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetConnectionString retrieves the database connection string from the OS keyring.
func GetConnectionString() (string, error) {
	return Get(constants.DefaultKeyringUser)
}

// SetConnectionString stores the database connection string in the OS keyring.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	return Set(constants.DefaultKeyringUser, connStr)
}

// DeleteConnectionString removes the database connection string from the OS keyring.
func DeleteConnectionString() error {
	return Delete(constants.DefaultKeyringUser)
}

// APIKey returns the stored key for an adapter, or "" when none is stored
// or the keyring cannot be reached.
func APIKey(adapter string) string {
	key, err := Get(adapter)
	if err != nil {
		return ""
	}
	return key
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/keyring"
	"github.com/julianstephens/weekendly/internal/storage/postgres"
)

// KeysSetCmd stores a connection string or API key in the OS keyring
type KeysSetCmd struct {
	Name  string `arg:"" help:"Entry to set: database-connection, places, movies or games."`
	Value string `arg:"" optional:"" help:"Secret value. Prompted for when omitted."`
}

func (cmd *KeysSetCmd) Run(ctx *cli.Context) error {
	name := strings.ToLower(strings.TrimSpace(cmd.Name))
	value := cmd.Value
	if value == "" {
		err := huh.NewInput().
			Title(fmt.Sprintf("Value for %s", name)).
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run()
		if err != nil {
			return fmt.Errorf("failed to read value: %w", err)
		}
	}

	if name == constants.DefaultKeyringUser {
		if !postgres.IsConnString(value) {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			fmt.Println("Warning: connection string contains embedded credentials.")
			fmt.Println("  It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(name, value); err != nil {
		return err
	}

	fmt.Printf("✓ %s stored in OS keyring\n", name)
	if name == constants.DefaultKeyringUser {
		fmt.Println("  You can now use weekendly without the --config flag")
	}
	return nil
}

type KeysDeleteCmd struct {
	Name string `arg:"" help:"Entry to delete."`
}

func (cmd *KeysDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(cmd.Name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("nothing stored for %s", cmd.Name)
		}
		return err
	}
	fmt.Printf("✓ %s deleted from OS keyring\n", cmd.Name)
	return nil
}

// KeysStatusCmd reports which entries are stored
type KeysStatusCmd struct{}

func (cmd *KeysStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")
	for _, name := range keyring.KeyNames {
		_, err := keyring.Get(name)
		switch {
		case err == nil:
			fmt.Printf("  %-20s stored\n", name)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("  %-20s not set\n", name)
		default:
			fmt.Printf("  %-20s error: %v\n", name, err)
		}
	}
	return nil
}

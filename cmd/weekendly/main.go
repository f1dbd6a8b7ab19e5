package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/weekendly/internal/catalog"
	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/cli/activities"
	"github.com/julianstephens/weekendly/internal/cli/backups"
	"github.com/julianstephens/weekendly/internal/cli/plans"
	"github.com/julianstephens/weekendly/internal/cli/settings"
	"github.com/julianstephens/weekendly/internal/cli/system"
	"github.com/julianstephens/weekendly/internal/config"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/errors"
	"github.com/julianstephens/weekendly/internal/keyring"
	"github.com/julianstephens/weekendly/internal/logger"
	"github.com/julianstephens/weekendly/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead." type:"string" default:"${default_config}"`
	Catalog string `help:"YAML file of extra activities merged ahead of the built-in catalog." type:"existingfile" optional:""`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd          `cmd:"" help:"Initialize weekendly storage."`
	Tui       system.TuiCmd           `cmd:"" help:"Launch the interactive weekend timeline." default:"1"`
	Serve     system.ServeCmd         `cmd:"" help:"Serve the JSON API for the browser UI."`
	Browse    activities.BrowseCmd    `cmd:"" help:"Browse activities from every source."`
	Recommend activities.RecommendCmd `cmd:"" help:"Recommend activities for a mood."`
	Add       plans.AddCmd            `cmd:"" help:"Schedule a catalog activity."`
	Remove    plans.RemoveCmd         `cmd:"" help:"Remove a scheduled activity."`
	Move      plans.MoveCmd           `cmd:"" help:"Move a scheduled activity to another slot or day."`
	Complete  plans.CompleteCmd       `cmd:"" help:"Toggle whether a scheduled activity is done."`
	Reorder   plans.ReorderCmd        `cmd:"" help:"Change the listing order of a day."`
	Clear     plans.ClearCmd          `cmd:"" help:"Remove every scheduled activity."`
	Day       plans.DayCmd            `cmd:"" help:"Show the plan for a day."`
	Weekend   plans.WeekendCmd        `cmd:"" help:"Show the whole weekend, including holiday Fridays and Mondays."`
	Settings  settings.SettingsCmd    `cmd:"" help:"Manage application settings."`
	Backup    struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keys struct {
		Set    system.KeysSetCmd    `cmd:"" help:"Store a connection string or API key."`
		Delete system.KeysDeleteCmd `cmd:"" help:"Delete a stored secret."`
		Status system.KeysStatusCmd `cmd:"" help:"Show which secrets are stored." default:"1"`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Weekend planner: find things to do and lay them out on a timeline"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	// Without an explicit --config, a connection string stored in the keyring wins
	dbPath := CLI.Config
	if dbPath == constants.DefaultConfigPath {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			dbPath = connStr
		}
	}

	configDir := filepath.Dir(dbPath)
	if postgres.IsConnString(dbPath) {
		configDir = filepath.Dir(constants.DefaultConfigPath)
	}
	if dir, err := cli.ExpandPath(configDir); err == nil {
		configDir = dir
	}
	command := ctx.Selected()
	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir,
		Stderr:    command != nil && command.Name == "serve",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.OpenStore(dbPath)
	errors.Fatal(err)

	cfg, err := config.New(keyring.APIKey)
	errors.Fatal(err)

	cat, err := catalog.Load(CLI.Catalog)
	errors.Fatal(err)

	appCtx := &cli.Context{
		Store:   store,
		Config:  cfg,
		Catalog: cat,
	}
	defer store.Close()

	// Load the store before running the command (init and keys do not need it)
	if needsStore(command) {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

func needsStore(node *kong.Node) bool {
	for n := node; n != nil; n = n.Parent {
		if n.Name == "init" || n.Name == "keys" {
			return false
		}
	}
	return true
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/thoughts/internal/cli"
	"github.com/julianstephens/thoughts/internal/constants"
	"github.com/julianstephens/thoughts/internal/controller"
	"github.com/julianstephens/thoughts/internal/errors"
	"github.com/julianstephens/thoughts/internal/logger"
	"github.com/julianstephens/thoughts/internal/state"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Store path (.json or SQLite file), PostgreSQL connection string, or 'postgres' to read the connection string from THOUGHTS_DB_CONNECTION or the OS keyring. Credentials must NOT be embedded in the connection string." type:"string" default:"${defaultConfig}" env:"THOUGHTS_CONFIG"`
	DebugLog  bool   `name:"debug" help:"Enable debug logging to stderr." env:"THOUGHTS_DEBUG"`
	KeyPolicy string `help:"How new thoughts get keys (monotonic|length)." default:"monotonic" env:"THOUGHTS_KEY_POLICY"`

	Init     cli.InitCmd     `cmd:"" help:"Initialize thoughts storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Add a thought."`
	List     cli.ListCmd     `cmd:"" help:"List all thoughts."`
	Edit     cli.EditCmd     `cmd:"" help:"Replace the text of a thought."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Delete a thought."`
	Like     cli.LikeCmd     `cmd:"" help:"Toggle the liked reaction."`
	Favorite cli.FavoriteCmd `cmd:"" help:"Toggle the favorite reaction."`
	React    cli.ReactCmd    `cmd:"" help:"Set a reaction to an explicit value."`
	Export   cli.ExportCmd   `cmd:"" help:"Export thoughts as JSON."`
	Import   cli.ImportCmd   `cmd:"" help:"Replace thoughts with an exported JSON file."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Migrate  cli.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored thoughts for key conflicts."`
	Debug    cli.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
	Keyring  struct {
		Set    cli.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string."`
		Get    cli.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete cli.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status cli.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// commands that set up or inspect storage themselves
var noLoad = map[string]bool{
	"init":   true,
	"doctor": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A small journal of thoughts you can like, favorite, and edit"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"defaultConfig": constants.DefaultConfigPath,
		},
	)

	policy, err := state.ParseKeyPolicy(CLI.KeyPolicy)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Format(err))
		os.Exit(1)
	}

	appCtx, err := setup(ctx.Command(), policy)
	if err != nil {
		errors.Fatal(err)
	}
	err = ctx.Run(appCtx)
	if appCtx.Store != nil {
		appCtx.Store.Close()
	}
	if err != nil {
		errors.Fatal(err)
	}
}

func setup(command string, policy state.KeyPolicy) (*cli.Context, error) {
	appCtx := &cli.Context{Options: controller.Options{Policy: policy}}

	// The keyring commands never touch storage
	if rootCommand(command) == "keyring" {
		return appCtx, nil
	}

	store, configDir, err := cli.OpenStore(CLI.Config)
	if err != nil {
		return nil, err
	}
	appCtx.Store = store
	appCtx.ConfigDir = configDir

	if err := logger.Init(logger.Config{Debug: CLI.DebugLog, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logger.Debug("Starting", "command", command, "store", store.GetConfigPath(), "policy", policy)

	if !noLoad[rootCommand(command)] {
		if err := store.Load(); err != nil {
			return nil, err
		}
	}
	return appCtx, nil
}

// rootCommand returns the first word of a kong command path
func rootCommand(command string) string {
	root, _, _ := strings.Cut(command, " ")
	return root
}

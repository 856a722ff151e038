package main

import (
	"fmt"
	"log/slog"

	"github.com/desertwitch/atomfs"
	"github.com/desertwitch/atomfs/internal/configuration"
	"github.com/spf13/cobra"
)

// cliApp holds the state shared by all commands of one invocation.
type cliApp struct {
	configFile string
	logLevel   string
	verify     bool

	config *configuration.AppConfiguration
	fsys   *atomfs.Filesystem
}

func newRootCmd() *cobra.Command {
	app := &cliApp{}

	rootCmd := &cobra.Command{
		Use:   "atomfs",
		Short: "Crash-safe filesystem operations",
		Long: `atomfs performs filesystem operations that stay consistent under partial
failure: files are replaced atomically, directories are parked before they
are removed, copies are verified before they replace their target.

Defaults are read from an environment file (` + configuration.DefaultFile + `) and from
` + configuration.EnvPrefix + `* variables of the environment, flags take precedence over both.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	rootCmd.PersistentFlags().StringVar(&app.configFile, "config", configuration.DefaultFile, "environment file holding the defaults")
	rootCmd.PersistentFlags().StringVar(&app.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&app.verify, "verify", false, "verify checksums of copied files")

	rootCmd.AddCommand(
		app.newDumpCmd(),
		app.newAppendCmd(),
		app.newCatCmd(),
		app.newRemoveCmd(),
		app.newCopyCmd(),
		app.newMoveCmd(),
		app.newLinkCmd(),
		app.newMirrorCmd(),
		app.newMkdirCmd(),
		app.newTouchCmd(),
		app.newChmodCmd(),
		app.newChownCmd(),
		app.newChgrpCmd(),
		app.newReadlinkCmd(),
		app.newMktempCmd(),
		app.newInfoCmd(),
		app.newPathCmd(),
	)

	return rootCmd
}

func (app *cliApp) setup(cmd *cobra.Command, _ []string) error {
	config, err := configuration.NewHandler(&configuration.GodotenvProvider{Prefix: configuration.EnvPrefix}).Load(app.configFile)
	if err != nil {
		return fmt.Errorf("(cli-setup) %w", err)
	}

	if flag := cmd.Flag("log-level"); flag != nil && flag.Changed {
		if err := config.LogLevel.UnmarshalText([]byte(app.logLevel)); err != nil {
			return fmt.Errorf("(cli-setup) invalid log level: %w", err)
		}
	}

	if flag := cmd.Flag("verify"); flag != nil && flag.Changed {
		config.VerifyCopies = app.verify
	}

	setupLogging(config.LogLevel)
	slog.Debug("Configuration loaded.",
		"file", app.configFile,
		"verify", config.VerifyCopies,
		"lock", config.LockAppends,
	)

	app.config = config
	app.fsys = atomfs.New(atomfs.WithVerifiedCopies(config.VerifyCopies))

	return nil
}

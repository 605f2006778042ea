package autobarrel

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/autobarrel/internal/version"
	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/config"
	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/filesystem"
	"github.com/arthur-debert/autobarrel/pkg/logging"
	"github.com/arthur-debert/autobarrel/pkg/ui"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbosity  int
	format     ui.Format
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "autobarrel",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultFileName, MsgFlagConfig)
	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().Var(&opts.format, "format", MsgFlagFormat)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid flag")
	})

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.AddCommand(newRunCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// renderer builds the output renderer for cmd from the --format flag.
func (o *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	return ui.NewRenderer(o.format, cmd.OutOrStdout())
}

// engine loads the configuration and builds an engine over its base
// directory.
func (o *globalOptions) engine(dryRun bool) (*config.Config, *barrel.Engine, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	log.Debug().
		Str("config", cfg.Path).
		Str("baseDir", cfg.BaseDir).
		Str("extension", cfg.Conventions.Extension).
		Msg("Configuration resolved")

	engine := barrel.NewEngine(filesystem.NewBase(cfg.BaseDir), cfg.Options(dryRun))
	return cfg, engine, nil
}

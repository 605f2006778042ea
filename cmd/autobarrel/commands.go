package autobarrel

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/autobarrel/internal/version"
	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/ui"
)

func newRunCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "run",
		Short:   MsgRunShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd, opts)
		},
	}
}

func runOnce(cmd *cobra.Command, opts *globalOptions) error {
	renderer, err := opts.renderer(cmd)
	if err != nil {
		return err
	}
	_, engine, err := opts.engine(false)
	if err != nil {
		return err
	}

	result, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := opts.renderer(cmd)
			if err != nil {
				return err
			}
			_, engine, err := opts.engine(true)
			if err != nil {
				return err
			}

			result, err := engine.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := renderer.RenderResult(result); err != nil {
				return err
			}

			if result.Changed() {
				return errors.Newf(errors.ErrBarrelStale, MsgErrStale, len(result.Updated)+len(result.Deleted)).
					WithDetail("updated", result.Updated).
					WithDetail("deleted", result.Deleted)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if errors.IsErrorCode(err, errors.ErrBarrelStale) {
		return 2
	}
	return 1
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	rootCmd := NewRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd, err)
	}
	return exitCode(err)
}

func reportError(rootCmd *cobra.Command, err error) {
	renderer, rerr := newErrorRenderer(rootCmd)
	if rerr != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}
	_ = renderer.RenderError(err)
}

// newErrorRenderer renders errors on stderr in the format the user asked
// for. A rejected --format value leaves the flag at auto.
func newErrorRenderer(rootCmd *cobra.Command) (ui.Renderer, error) {
	format := ui.FormatAuto
	if flag := rootCmd.PersistentFlags().Lookup("format"); flag != nil {
		if f, ok := flag.Value.(*ui.Format); ok {
			format = *f
		}
	}
	return ui.NewRenderer(format, rootCmd.ErrOrStderr())
}

package autobarrel

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/autobarrel/pkg/errors"
	"github.com/arthur-debert/autobarrel/pkg/watch"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, opts)
		},
	}
}

// runWatch runs an initial pass and then one pass per accepted change until
// ctx is cancelled. Only configuration errors and malformed patterns end the
// watch; other pass failures are reported and watching continues.
func runWatch(ctx context.Context, cmd *cobra.Command, opts *globalOptions) error {
	renderer, err := opts.renderer(cmd)
	if err != nil {
		return err
	}
	cfg, engine, err := opts.engine(false)
	if err != nil {
		return err
	}

	pass := func(ctx context.Context) error {
		result, err := engine.Run(ctx)
		if err != nil {
			_ = renderer.RenderError(err)
			return err
		}
		if result.Changed() {
			if err := renderer.RenderResult(result); err != nil {
				log.Warn().Err(err).Msg(MsgErrRenderFailed)
			}
		}
		return nil
	}

	result, err := engine.Run(ctx)
	switch {
	case errors.IsErrorCode(err, errors.ErrMatchPattern):
		return err
	case err != nil:
		log.Error().Err(err).Msg(MsgErrInitialPass)
		_ = renderer.RenderError(err)
	default:
		if err := renderer.RenderResult(result); err != nil {
			return err
		}
	}

	source, err := watch.NewSource(cfg.BaseDir, cfg.Paths, cfg.Ignore)
	if err != nil {
		return err
	}
	go source.Run(ctx)

	trigger := watch.NewTrigger(engine.Conventions(), cfg.Paths, cfg.Ignore)
	coordinator := watch.NewCoordinator(pass, trigger)

	if err := renderer.RenderMessage(fmt.Sprintf(MsgWatching, cfg.BaseDir)); err != nil {
		return err
	}
	passes := coordinator.Run(ctx, source.Events())

	log.Info().Int("passes", passes).Msg("Watch stopped")
	return renderer.RenderMessage(fmt.Sprintf(MsgWatchStopped, passes))
}

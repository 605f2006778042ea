package barrel

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/autobarrel/pkg/filesystem"
	"github.com/arthur-debert/autobarrel/pkg/logging"
	"github.com/arthur-debert/autobarrel/pkg/match"
)

// Options configures a pass. Patterns are slash-separated and relative to
// the root of the engine's filesystem.
type Options struct {
	Paths       []string
	Ignore      []string
	Exclude     []string
	Prefix      string
	Conventions Conventions
	DryRun      bool
}

// Engine runs passes over a filesystem rooted at the base directory.
type Engine struct {
	fs     afero.Fs
	opts   Options
	logger zerolog.Logger
}

// NewEngine creates an engine over fsys.
func NewEngine(fsys afero.Fs, opts Options) *Engine {
	if opts.Conventions.Extension == "" {
		opts.Conventions = NewConventions("")
	}
	return &Engine{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("barrel.pass"),
	}
}

// Conventions returns the naming conventions the engine uses.
func (e *Engine) Conventions() Conventions {
	return e.opts.Conventions
}

// Run executes one full pass: match, aggregate, prune, write. Matching and
// aggregation errors abort the pass before anything is written.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(e.logger, "pass")
	defer done()

	matcher, err := match.NewMatcher(filesystem.IOFS(e.fs), e.opts.Ignore)
	if err != nil {
		return nil, err
	}

	var matched, excluded []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matched, err = matcher.MatchAll(gctx, e.opts.Paths)
		return err
	})
	g.Go(func() error {
		var err error
		excluded, err = matcher.MatchAll(gctx, e.opts.Exclude)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	conv := e.opts.Conventions
	excludes := match.NewExcludeSet(excluded, conv.BarrelName())
	if ev := e.logger.Trace(); ev.Enabled() {
		ev.Strs("exclusions", excludes.Paths()).Msg("Resolved exclusions")
	}

	tree, err := Aggregate(ctx, e.fs, matched, excludes, conv)
	if err != nil {
		return nil, err
	}
	tracked := tree.Len()
	pruned := tree.Prune()

	e.logger.Debug().
		Int("matched", len(matched)).
		Int("excluded", excludes.Len()).
		Int("directories", tracked).
		Int("pruned", len(pruned)).
		Msg("Built barrel tree")

	result, err := NewWriter(e.fs, conv, e.opts.Prefix, e.opts.DryRun).Write(ctx, tree, pruned)
	if err != nil {
		return nil, err
	}

	e.logger.Info().
		Int("barrels", len(result.Barrels)).
		Int("updated", len(result.Updated)).
		Int("deleted", len(result.Deleted)).
		Bool("dryRun", result.DryRun).
		Msg("Pass completed")
	return result, nil
}

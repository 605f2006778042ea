package config

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/autobarrel/pkg/barrel"
	"github.com/arthur-debert/autobarrel/pkg/errors"
)

// Config is a resolved configuration. BaseDir is absolute; all patterns are
// slash-separated and relative to it.
type Config struct {
	Path        string
	BaseDir     string
	Paths       []string
	Ignore      []string
	Exclude     []string
	Prefix      string
	Conventions barrel.Conventions
}

// Load reads the configuration file at path and resolves it.
func Load(path string) (*Config, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.Resolve(path)
}

// Resolve turns f, read from configPath, into a Config. Relative paths are
// resolved against the directory holding the configuration file; cwd, when
// set, becomes the base directory patterns are matched from.
func (f *File) Resolve(configPath string) (*Config, error) {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve config path %s", configPath)
	}

	baseDir := filepath.Dir(absConfig)
	if f.Cwd != "" {
		cwd := filepath.FromSlash(f.Cwd)
		if !filepath.IsAbs(cwd) {
			cwd = filepath.Join(baseDir, cwd)
		}
		baseDir = filepath.Clean(cwd)
	}

	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrConfigValid, "base directory %s does not exist", baseDir).
			WithDetail("cwd", f.Cwd)
	}

	cfg := &Config{
		Path:        absConfig,
		BaseDir:     baseDir,
		Prefix:      f.Prefix,
		Conventions: barrel.NewConventions(f.Extension),
	}
	if cfg.Paths, err = normalizePatterns(baseDir, "paths", f.Paths); err != nil {
		return nil, err
	}
	if cfg.Ignore, err = normalizePatterns(baseDir, "ignore", f.Ignore); err != nil {
		return nil, err
	}
	if cfg.Exclude, err = normalizePatterns(baseDir, "exclude", f.Exclude); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options returns the pass options for cfg.
func (c *Config) Options(dryRun bool) barrel.Options {
	return barrel.Options{
		Paths:       c.Paths,
		Ignore:      c.Ignore,
		Exclude:     c.Exclude,
		Prefix:      c.Prefix,
		Conventions: c.Conventions,
		DryRun:      dryRun,
	}
}

func normalizePatterns(baseDir, key string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		n, err := normalizePattern(baseDir, p)
		if err != nil {
			return nil, err.WithDetail("key", key)
		}
		out = append(out, n)
	}
	return out, nil
}

// normalizePattern makes p a clean slash pattern relative to baseDir.
// Absolute patterns are rebased; patterns reaching outside baseDir are
// rejected.
func normalizePattern(baseDir, p string) (string, *errors.BarrelError) {
	if strings.TrimSpace(p) == "" {
		return "", errors.New(errors.ErrConfigValid, "empty pattern")
	}

	if filepath.IsAbs(filepath.FromSlash(p)) {
		rel, err := filepath.Rel(baseDir, filepath.FromSlash(p))
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigValid, "pattern %s is outside %s", p, baseDir).
				WithDetail("pattern", p)
		}
		p = rel
	}

	p = path.Clean(filepath.ToSlash(p))
	if p == ".." || strings.HasPrefix(p, "../") {
		return "", errors.Newf(errors.ErrConfigValid, "pattern %s is outside %s", p, baseDir).
			WithDetail("pattern", p)
	}
	return p, nil
}

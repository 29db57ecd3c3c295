package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/losm/pkg/cache"
	"github.com/matzehuels/losm/pkg/config"
	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "losm"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// configPath is the --config flag; empty means look for losm.toml in
	// the working directory.
	configPath string
	verbose    bool

	cfg   *config.Config
	hooks *cliHooks
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	logger := newLogger(w, level)
	return &CLI{
		Logger: logger,
		cfg:    config.Default(),
		hooks:  newCLIHooks(logger),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads --config, or losm.toml from the working directory when
// the flag is unset.
func (c *CLI) loadConfig() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.Load(c.configPath)
	} else {
		cfg, err = config.Find(".")
	}
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, with the configured cache
// backend unless noCache is set.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, c.cfg.Keyer(), c.Logger)
	r.SnapshotTTL = c.cfg.Cache.TTL.Duration
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, c.cfg.CacheOptions(dir))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg != nil && c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/losm/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Data Set Arguments
// =============================================================================

// loadOptions builds load options from three positional file arguments, or
// from the config file's [data] section when none are given.
func (c *CLI) loadOptions(files []string) (pipeline.Options, error) {
	opts := c.cfg.LoadOptions()
	if len(files) == 3 {
		opts.NodesPath, opts.EdgesPath, opts.LandmarksPath = files[0], files[1], files[2]
	}
	if opts.NodesPath == "" || opts.EdgesPath == "" || opts.LandmarksPath == "" {
		return opts, errors.New(errors.ErrCodeInvalidInput,
			"no data set: pass the nodes, edges, and landmarks files or set [data] in %s", config.FileName)
	}
	return opts, nil
}

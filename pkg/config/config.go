// Package config reads losm.toml, the optional file that names a data set
// and the cache it loads through.
//
//	[data]
//	nodes = "data/nodes.dat"
//	edges = "data/edges.dat"
//	landmarks = "data/landmarks.dat"
//
//	[load]
//	resolution = "lenient"   # or "strict"
//
//	[cache]
//	backend = "file"         # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//	namespace = "city"
//
//	[convert]
//	interest = ["hospital", "school"]
//	simplify = false
//
// Relative data paths are resolved against the directory holding the file.
// Command-line flags override every setting.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/losm/pkg/cache"
	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/losm"
	"github.com/matzehuels/losm/pkg/pipeline"
)

// FileName is the config file looked up in the working directory.
const FileName = "losm.toml"

// Config is the decoded configuration file.
type Config struct {
	Data    DataSettings    `toml:"data"`
	Load    LoadSettings    `toml:"load"`
	Cache   CacheSettings   `toml:"cache"`
	Convert ConvertSettings `toml:"convert"`
}

// DataSettings names the three data set files.
type DataSettings struct {
	Nodes     string `toml:"nodes"`
	Edges     string `toml:"edges"`
	Landmarks string `toml:"landmarks"`
}

// LoadSettings holds load settings.
type LoadSettings struct {
	Resolution string `toml:"resolution"`
}

// CacheSettings selects the snapshot cache backend.
type CacheSettings struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
	Namespace string   `toml:"namespace"`
}

// ConvertSettings holds defaults for the convert command.
type ConvertSettings struct {
	Interest []string `toml:"interest"`
	Simplify bool     `toml:"simplify"`
}

// Duration is a time.Duration written as a string such as "90m" or "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Load:  LoadSettings{Resolution: losm.Lenient.String()},
		Cache: CacheSettings{Backend: cache.BackendFile, TTL: Duration{pipeline.DefaultSnapshotTTL}},
	}
}

// Load reads and validates the file at path. Settings the file leaves out
// keep their Default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "cannot open config").At(path, 0)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse config").At(path, 0)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", ")).At(path, 0)
	}

	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		if e, ok := err.(*errors.Error); ok && e.File == "" {
			return nil, e.At(path, 0)
		}
		return nil, err
	}
	return cfg, nil
}

// Find loads FileName from dir if it exists. It returns Default and no
// error when there is no such file.
func Find(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{&c.Data.Nodes, &c.Data.Edges, &c.Data.Landmarks, &c.Cache.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
}

// Validate checks every setting that has a fixed set of legal values.
func (c *Config) Validate() error {
	if _, err := c.Resolution(); err != nil {
		return err
	}
	data := []struct{ key, path string }{
		{"nodes", c.Data.Nodes},
		{"edges", c.Data.Edges},
		{"landmarks", c.Data.Landmarks},
	}
	for _, d := range data {
		if d.path == "" {
			continue
		}
		if err := errors.ValidatePath(d.path); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "data.%s", d.key)
		}
	}

	switch c.Cache.Backend {
	case "", cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if err := errors.ValidateAddr(c.Cache.RedisAddr); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.redis_addr")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl cannot be negative")
	}
	if strings.ContainsAny(c.Cache.Namespace, " \t\n:") {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.namespace %q cannot contain spaces or colons", c.Cache.Namespace)
	}
	return nil
}

// Resolution returns the configured resolution mode. Empty means lenient.
func (c *Config) Resolution() (losm.Resolution, error) {
	if c.Load.Resolution == "" {
		return losm.Lenient, nil
	}
	r, err := losm.ParseResolution(c.Load.Resolution)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load.resolution")
	}
	return r, nil
}

// LoadOptions returns pipeline options for the configured data set.
func (c *Config) LoadOptions() pipeline.Options {
	res, _ := c.Resolution()
	return pipeline.Options{
		NodesPath:     c.Data.Nodes,
		EdgesPath:     c.Data.Edges,
		LandmarksPath: c.Data.Landmarks,
		Resolution:    res,
	}
}

// CacheOptions returns the backend selection for cache.Open. defaultDir is
// used when the file sets no cache directory.
func (c *Config) CacheOptions(defaultDir string) cache.Options {
	dir := c.Cache.Dir
	if dir == "" {
		dir = defaultDir
	}
	return cache.Options{
		Backend:   c.Cache.Backend,
		Dir:       dir,
		RedisAddr: c.Cache.RedisAddr,
	}
}

// Keyer returns the cache keyer, scoped by the namespace when one is set.
func (c *Config) Keyer() cache.Keyer {
	k := cache.NewDefaultKeyer()
	if c.Cache.Namespace != "" {
		k = cache.NewScopedKeyer(k, c.Cache.Namespace+":")
	}
	return k
}

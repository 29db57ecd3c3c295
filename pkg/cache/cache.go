// Package cache stores encoded road network snapshots keyed by the content
// of the files they were loaded from.
//
// Three backends share the [Cache] interface: [FileCache] for local CLI use,
// [RedisCache] for sharing snapshots between machines, and [NullCache] when
// caching is disabled. Keys come from a [Keyer] so that every backend agrees
// on what identifies a snapshot.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// SnapshotKey identifies a loaded store by the content hashes of its
	// nodes, edges, and landmarks files and the resolution mode used.
	SnapshotKey(hashes [3]string, resolution string) string

	// ConvertKey identifies converter output by the input file hash and the
	// options that shape it.
	ConvertKey(inputHash string, opts ConvertKeyOpts) string
}

// ConvertKeyOpts are the converter options that change its output.
type ConvertKeyOpts struct {
	Interest []string `json:"interest"`
	Simplify bool     `json:"simplify"`
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SnapshotKey returns "snapshot:<hash>".
func (DefaultKeyer) SnapshotKey(hashes [3]string, resolution string) string {
	return hashKey("snapshot", hashes[0], hashes[1], hashes[2], strings.ToLower(resolution))
}

// ConvertKey returns "convert:<hash>".
func (DefaultKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return hashKey("convert", inputHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so several data sets or users can
// share one backend, such as a Redis instance, without colliding.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "losm:nyc:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SnapshotKey generates a prefixed snapshot key.
func (k *ScopedKeyer) SnapshotKey(hashes [3]string, resolution string) string {
	return k.prefix + k.inner.SnapshotKey(hashes, resolution)
}

// ConvertKey generates a prefixed converter key.
func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}

// Backend names accepted by [Open].
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Options selects and configures a backend for [Open].
type Options struct {
	Backend   string // BackendFile, BackendRedis, or BackendNone
	Dir       string // FileCache directory
	RedisAddr string // host:port for RedisCache
}

// Open constructs the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendFile, "":
		c, err := NewFileCache(opts.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.RedisAddr)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone:
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

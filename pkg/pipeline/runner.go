package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/losm/pkg/cache"
	"github.com/matzehuels/losm/pkg/convert"
	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/graph"
	"github.com/matzehuels/losm/pkg/losm"
	"github.com/matzehuels/losm/pkg/observability"
)

// Cache key types reported to observability.CacheHooks.
const (
	keyTypeSnapshot = "snapshot"
	keyTypeConvert  = "convert"
)

// Runner runs loads and conversions against a cache.
//
// The Runner holds no per-run state, so one Runner may serve concurrent
// calls with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// SnapshotTTL bounds how long load snapshots stay cached. Zero means
	// DefaultSnapshotTTL.
	SnapshotTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// =============================================================================
// Load
// =============================================================================

// Load returns the store for a data set, restoring it from a cached snapshot
// when the three files are unchanged since it was stored.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	loadID := uuid.NewString()
	hooks := observability.Load()
	hooks.OnLoadStart(ctx, loadID)

	logger := r.Logger.With("load", loadID[:8])
	res, err := r.load(ctx, loadID, logger, opts)
	elapsed := time.Since(start)

	unresolved := 0
	if res != nil {
		res.Duration = elapsed
		unresolved = res.Stats.Unresolved
	}
	hooks.OnLoadComplete(ctx, loadID, unresolved, elapsed, err)
	if err != nil {
		logger.Debug("load failed", "error", err)
		return nil, err
	}

	logger.Info("loaded data set",
		"nodes", res.Stats.Nodes,
		"edges", res.Stats.Edges,
		"landmarks", res.Stats.Landmarks,
		"cached", res.CacheHit,
		"duration", elapsed.Round(time.Millisecond))
	if res.Stats.Unresolved > 0 {
		logger.Warn("edges reference unknown nodes", "endpoints", res.Stats.Unresolved)
	}
	return res, nil
}

func (r *Runner) load(ctx context.Context, loadID string, logger *log.Logger, opts Options) (*Result, error) {
	hooks := observability.Load()
	res := &Result{LoadID: loadID}

	for i, p := range opts.Paths() {
		h, err := cache.HashFile(p)
		if err != nil {
			err = errors.Wrap(errors.ErrCodeFileOpen, err, "cannot open file").At(p, 0)
			hooks.OnStageComplete(ctx, loadID, stageNames[i], 0, 0, err)
			return nil, err
		}
		res.Hashes[i] = h
	}
	key := r.Keyer.SnapshotKey(res.Hashes, opts.Resolution.String())

	storeOpts := losm.Options{
		Resolution: opts.Resolution,
		Logger:     logger,
		OnStage: func(stage string, count int, elapsed time.Duration) {
			hooks.OnStageComplete(ctx, loadID, stage, count, elapsed, nil)
		},
	}

	if !opts.Refresh {
		restoreStart := time.Now()
		if s, ok := r.restore(ctx, logger, keyTypeSnapshot, key, storeOpts); ok {
			hooks.OnStageComplete(ctx, loadID, observability.StageSnapshot, len(s.Nodes()), time.Since(restoreStart), nil)
			return r.finish(res, s, true), nil
		}
	}

	s := losm.New(storeOpts)
	if err := s.Load(opts.NodesPath, opts.EdgesPath, opts.LandmarksPath); err != nil {
		hooks.OnStageComplete(ctx, loadID, failedStage(err, opts), 0, 0, err)
		return nil, err
	}
	r.store(ctx, logger, keyTypeSnapshot, key, s, r.snapshotTTL())
	return r.finish(res, s, false), nil
}

func (r *Runner) finish(res *Result, s *losm.Store, hit bool) *Result {
	res.Store = s
	res.Stats = s.Stats()
	res.CacheHit = hit
	res.DegreeMismatches = s.DegreeMismatches()
	return res
}

func (r *Runner) snapshotTTL() time.Duration {
	if r.SnapshotTTL > 0 {
		return r.SnapshotTTL
	}
	return DefaultSnapshotTTL
}

// failedStage names the stage whose file an error points at.
func failedStage(err error, opts Options) string {
	if e, ok := err.(*errors.Error); ok {
		for i, p := range opts.Paths() {
			if e.File == p {
				return stageNames[i]
			}
		}
	}
	return losm.StageNodes
}

// =============================================================================
// Convert
// =============================================================================

// Convert reads an OSM extract and writes the three data set files under
// opts.Prefix. Converted data is cached by the extract's content hash and
// the options that shape the output.
func (r *Runner) Convert(ctx context.Context, opts ConvertOptions) (*ConvertResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Convert()
	hooks.OnConvertStart(ctx, opts.Input)

	res, err := r.convert(ctx, opts)
	elapsed := time.Since(start)

	var n, e, l int
	if res != nil {
		res.Duration = elapsed
		n, e, l = res.Nodes, res.Edges, res.Landmarks
	}
	hooks.OnConvertComplete(ctx, opts.Input, n, e, l, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("converted extract",
		"input", opts.Input,
		"nodes", n,
		"edges", e,
		"landmarks", l,
		"cached", res.CacheHit,
		"duration", elapsed.Round(time.Millisecond))
	if res.Missing > 0 {
		r.Logger.Warn("ways referenced nodes missing from the extract", "count", res.Missing)
	}
	return res, nil
}

func (r *Runner) convert(ctx context.Context, opts ConvertOptions) (*ConvertResult, error) {
	hash, err := cache.HashFile(opts.Input)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "cannot open file").At(opts.Input, 0)
	}
	key := r.Keyer.ConvertKey(hash, cache.ConvertKeyOpts{
		Interest: convert.InterestKey(opts.Interest),
		Simplify: opts.Simplify,
	})
	storeOpts := losm.Options{Logger: r.Logger}
	res := &ConvertResult{Files: OutputFiles(opts.Prefix)}

	var s *losm.Store
	if !opts.Refresh {
		s, res.CacheHit = r.restore(ctx, r.Logger, keyTypeConvert, key, storeOpts)
	}
	if s == nil {
		out, err := convert.ReadFile(ctx, opts.Input, convert.Options{
			Interest: opts.Interest,
			Logger:   r.Logger,
		})
		if err != nil {
			return nil, err
		}
		if opts.Simplify {
			before := len(out.Edges)
			out = out.Simplify(r.Logger)
			r.Logger.Debug("simplified", "edges_before", before, "edges_after", len(out.Edges))
		}
		if s, err = out.Store(storeOpts); err != nil {
			return nil, err
		}
		res.Missing = out.Missing
		r.store(ctx, r.Logger, keyTypeConvert, key, s, DefaultConvertTTL)
	}

	if dir := filepath.Dir(opts.Prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "cannot create output directory").At(dir, 0)
		}
	}
	if err := losm.Save(opts.Prefix, s.Nodes(), s.Edges(), s.Landmarks()); err != nil {
		return nil, err
	}

	st := s.Stats()
	res.Nodes, res.Edges, res.Landmarks = st.Nodes, st.Edges, st.Landmarks
	return res, nil
}

// =============================================================================
// Snapshot Cache
// =============================================================================

// restore looks up a BSON snapshot. Backend errors and undecodable entries
// count as misses; an undecodable entry is also deleted.
func (r *Runner) restore(ctx context.Context, logger *log.Logger, keyType, key string, opts losm.Options) (*losm.Store, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		logger.Warn("cache lookup failed", "error", err)
	}
	if err != nil || !hit {
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}

	s, err := graph.UnmarshalBSON(data, opts)
	if err != nil {
		logger.Warn("discarding unreadable cache entry", "type", keyType, "error", err)
		_ = r.Cache.Delete(ctx, key)
		hooks.OnCacheMiss(ctx, keyType)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyType)
	logger.Debug("cache hit", "type", keyType)
	return s, true
}

// store writes a BSON snapshot. Failures are logged, never returned: the
// store is already usable.
func (r *Runner) store(ctx context.Context, logger *log.Logger, keyType, key string, s *losm.Store, ttl time.Duration) {
	data, err := graph.MarshalBSON(s)
	if err != nil {
		logger.Warn("cannot encode snapshot", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	logger.Debug("cached", "type", keyType, "bytes", len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

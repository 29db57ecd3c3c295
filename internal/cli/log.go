// Package cli implements the losm command-line interface.
//
// The commands load LOSM data sets through the cached pipeline, answer
// neighbor queries, export JSON snapshots, and convert OpenStreetMap
// extracts. The CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - load: Parse a data set and report its contents
//   - neighbors: List the nodes one edge away from a node
//   - export: Write a loaded data set as a JSON snapshot
//   - convert: Build a data set from an OSM extract
//   - cache: Manage the snapshot cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every load stage and cache event. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/losm/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Wrote city.json (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Hooks
// =============================================================================

// cliHooks receives pipeline events. It moves the active spinner along as
// load stages finish, and in verbose mode logs every event at debug level.
type cliHooks struct {
	logger  *log.Logger
	verbose bool

	mu      sync.Mutex
	spinner *Spinner
}

func newCLIHooks(logger *log.Logger) *cliHooks {
	return &cliHooks{logger: logger}
}

// attach directs stage updates to s until the returned func is called.
func (h *cliHooks) attach(s *Spinner) (detach func()) {
	h.mu.Lock()
	h.spinner = s
	h.mu.Unlock()
	return func() {
		h.mu.Lock()
		h.spinner = nil
		h.mu.Unlock()
	}
}

func (h *cliHooks) update(format string, args ...any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.spinner != nil {
		h.spinner.Updatef(format, args...)
	}
}

func (h *cliHooks) debug(msg string, keyvals ...any) {
	if h.verbose {
		h.logger.Debug(msg, keyvals...)
	}
}

func (h *cliHooks) OnLoadStart(_ context.Context, loadID string) {
	h.debug("load started", "id", loadID)
}

func (h *cliHooks) OnStageComplete(_ context.Context, loadID, stage string, count int, d time.Duration, err error) {
	if err != nil {
		h.debug("stage failed", "id", loadID, "stage", stage, "error", err)
		return
	}
	h.debug("stage complete", "id", loadID, "stage", stage, "count", count, "duration", d.Round(time.Microsecond))
	h.update("Read %d %s...", count, stage)
}

func (h *cliHooks) OnLoadComplete(_ context.Context, loadID string, unresolved int, d time.Duration, err error) {
	h.debug("load complete", "id", loadID, "unresolved", unresolved, "duration", d.Round(time.Millisecond), "error", err)
}

func (h *cliHooks) OnConvertStart(_ context.Context, input string) {
	h.debug("convert started", "input", input)
}

func (h *cliHooks) OnConvertComplete(_ context.Context, input string, nodes, edges, landmarks int, d time.Duration, err error) {
	h.debug("convert complete", "input", input, "nodes", nodes, "edges", edges, "landmarks", landmarks,
		"duration", d.Round(time.Millisecond), "error", err)
}

func (h *cliHooks) OnCacheHit(_ context.Context, keyType string) {
	h.debug("cache hit", "type", keyType)
	h.update("Restoring %s from cache...", keyType)
}

func (h *cliHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.debug("cache miss", "type", keyType)
}

func (h *cliHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.LoadHooks    = (*cliHooks)(nil)
	_ observability.ConvertHooks = (*cliHooks)(nil)
	_ observability.CacheHooks   = (*cliHooks)(nil)
)

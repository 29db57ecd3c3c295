// Package pipeline provides the cache-aware load and convert flows shared by
// the CLI and any other entry point.
//
// # Load
//
// A load hashes the three data set files, looks up a snapshot keyed by those
// hashes and the resolution mode, and on a miss parses the files into a
// [losm.Store] and stores its BSON snapshot:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Load(ctx, pipeline.Options{
//	    NodesPath:     "data/nodes.dat",
//	    EdgesPath:     "data/edges.dat",
//	    LandmarksPath: "data/landmarks.dat",
//	})
//	if err != nil {
//	    return err
//	}
//	adj, err := res.Store.Neighbors(ref)
//
// # Convert
//
// A conversion reads an OSM extract and writes the three files under a
// prefix. The converted data is cached by input hash and conversion options,
// so repeating a conversion only rewrites the files.
//
// Both flows emit [observability] hook events and log one summary line.
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/losm"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSnapshotTTL is how long a load snapshot stays cached.
	DefaultSnapshotTTL = 24 * time.Hour

	// DefaultConvertTTL is how long converter output stays cached.
	DefaultConvertTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Load Options
// =============================================================================

// Options configures a load.
type Options struct {
	NodesPath     string `json:"nodes"`
	EdgesPath     string `json:"edges"`
	LandmarksPath string `json:"landmarks"`

	Resolution losm.Resolution `json:"-"`

	// Refresh skips the cache lookup. The fresh snapshot is still stored.
	Refresh bool `json:"refresh,omitempty"`
}

// Paths returns the data set files in load order.
func (o Options) Paths() [3]string {
	return [3]string{o.NodesPath, o.EdgesPath, o.LandmarksPath}
}

// Validate checks that all three paths are present and well formed.
func (o Options) Validate() error {
	for i, p := range o.Paths() {
		if p == "" {
			return errors.New(errors.ErrCodeInvalidInput, "%s file path is required", stageNames[i])
		}
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	return nil
}

var stageNames = [3]string{losm.StageNodes, losm.StageEdges, losm.StageLandmarks}

// Result is the outcome of a load.
type Result struct {
	Store *losm.Store

	// LoadID correlates this load's log lines and hook events.
	LoadID string

	// Hashes are the SHA-256 content hashes of the nodes, edges, and
	// landmarks files.
	Hashes [3]string

	Stats    losm.Stats
	CacheHit bool
	Duration time.Duration

	// DegreeMismatches lists nodes whose recorded degree differs from their
	// neighbor count.
	DegreeMismatches []losm.NodeRef
}

// =============================================================================
// Convert Options
// =============================================================================

// ConvertOptions configures a conversion.
type ConvertOptions struct {
	// Input is an .osm, .xml, or .pbf extract.
	Input string

	// Prefix is prepended to nodes.dat, edges.dat, and landmarks.dat.
	Prefix string

	// Interest lists the amenity values kept as landmarks.
	Interest []string

	// Simplify collapses chains of degree-2 nodes.
	Simplify bool

	// Refresh skips the cache lookup.
	Refresh bool
}

// Validate checks the input and output locations.
func (o ConvertOptions) Validate() error {
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file is required")
	}
	if err := errors.ValidatePath(o.Input); err != nil {
		return err
	}
	return errors.ValidatePrefix(o.Prefix)
}

// ConvertResult is the outcome of a conversion.
type ConvertResult struct {
	// Files are the written nodes, edges, and landmarks paths.
	Files [3]string

	Nodes     int
	Edges     int
	Landmarks int

	// Missing counts way node references absent from the extract. It is
	// zero on a cache hit.
	Missing int

	CacheHit bool
	Duration time.Duration
}

// OutputFiles returns the three paths a conversion writes under prefix.
func OutputFiles(prefix string) [3]string {
	return [3]string{
		prefix + losm.NodesFile,
		prefix + losm.EdgesFile,
		prefix + losm.LandmarksFile,
	}
}

func (r ConvertResult) String() string {
	return fmt.Sprintf("%d nodes, %d edges, %d landmarks", r.Nodes, r.Edges, r.Landmarks)
}

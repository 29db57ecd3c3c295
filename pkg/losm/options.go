package losm

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/losm/pkg/errors"
)

// Resolution selects how the edge parser treats an endpoint uid that matches
// no loaded node.
type Resolution int

const (
	// Lenient keeps the edge, stores [NoNode] for the missing endpoint, and
	// records NoNode in the neighbor index like any other endpoint. This is
	// how LOSM data has always been loaded.
	Lenient Resolution = iota

	// Strict fails the edge load with an UNRESOLVED_NODE error.
	Strict
)

// String returns the configuration spelling of r.
func (r Resolution) String() string {
	switch r {
	case Lenient:
		return "lenient"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// ParseResolution parses "lenient" or "strict". The empty string means Lenient.
func ParseResolution(s string) (Resolution, error) {
	switch s {
	case "", "lenient":
		return Lenient, nil
	case "strict":
		return Strict, nil
	default:
		return Lenient, errors.New(errors.ErrCodeInvalidConfig, "unknown resolution mode %q (want lenient or strict)", s)
	}
}

// Stage names passed to Options.OnStage.
const (
	StageNodes     = "nodes"
	StageEdges     = "edges"
	StageLandmarks = "landmarks"
)

// Options configures parsing and loading. The zero value is ready to use:
// lenient resolution and no logging.
type Options struct {
	Resolution Resolution
	Logger     *log.Logger

	// OnStage, if set, is called by Store.Load after each file parses, with
	// the number of records read. It is not called for a stage that fails.
	OnStage func(stage string, count int, elapsed time.Duration)
}

func (o Options) stageDone(stage string, count int, start time.Time) {
	elapsed := time.Since(start)
	o.logger().Debug("parsed", "stage", stage, "count", count, "duration", elapsed.Round(time.Microsecond))
	if o.OnStage != nil {
		o.OnStage(stage, count, elapsed)
	}
}

var discard = log.New(io.Discard)

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return discard
}

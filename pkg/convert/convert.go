// Package convert builds LOSM data sets from OpenStreetMap extracts.
//
// Roads are the ways whose highway tag names a class in the speed table
// (motorway through residential). Every consecutive pair of nodes along a
// road becomes one edge, with its great-circle length in miles, the way's
// name, speed limit, and lane count. A node's degree is the number of edges
// touching it. Landmarks are the nodes whose amenity tag is in the caller's
// interest list.
//
// Both XML (.osm, .xml) and PBF (.pbf) extracts are read with
// github.com/paulmach/osm:
//
//	res, err := convert.ReadFile(ctx, "city.osm.pbf", convert.Options{
//	    Interest: []string{"hospital", "school"},
//	})
//	if err != nil {
//	    return err
//	}
//	err = res.Simplify(nil).Save("out/city_")
package convert

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/losm"
)

// Format is an OSM encoding.
type Format int

const (
	FormatXML Format = iota
	FormatPBF
)

func (f Format) String() string {
	if f == FormatPBF {
		return "pbf"
	}
	return "xml"
}

// DetectFormat picks the encoding from a file name.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osm", ".xml":
		return FormatXML, nil
	case ".pbf":
		return FormatPBF, nil
	default:
		return 0, errors.New(errors.ErrCodeInvalidInput, "unrecognized OSM file extension %q (want .osm, .xml, or .pbf)", filepath.Ext(path))
	}
}

// Options configures a conversion.
type Options struct {
	// Interest lists the amenity values kept as landmarks. Empty keeps none.
	Interest []string

	// Logger receives warnings about skipped references and unreadable
	// tags. Nil discards them.
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// Result is a converted data set. Edge endpoints are resolved against Nodes,
// so the result can be saved or turned into a store directly.
type Result struct {
	Nodes     []losm.Node
	Edges     []losm.Edge
	Landmarks []losm.Landmark

	// Missing counts way node references absent from the extract. Edges
	// touching them are dropped.
	Missing int
}

// Save writes the three LOSM files under prefix.
func (r *Result) Save(prefix string) error {
	return losm.Save(prefix, r.Nodes, r.Edges, r.Landmarks)
}

// Store returns the result as a loaded store.
func (r *Result) Store(opts losm.Options) (*losm.Store, error) {
	return losm.FromParts(r.Nodes, r.Edges, r.Landmarks, opts)
}

// scanner is the part of osmxml.Scanner and osmpbf.Scanner the converter uses.
type scanner interface {
	Scan() bool
	Object() osm.Object
	Err() error
	Close() error
}

// ReadFile converts the extract at path, choosing the decoder by extension.
func ReadFile(ctx context.Context, path string, opts Options) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "cannot open file").At(path, 0)
	}
	defer f.Close()

	res, err := Read(ctx, f, format, opts)
	if err != nil {
		if e, ok := err.(*errors.Error); ok && e.File == "" {
			return nil, e.At(path, 0)
		}
		return nil, err
	}
	return res, nil
}

// Read converts an extract from r.
func Read(ctx context.Context, r io.Reader, format Format, opts Options) (*Result, error) {
	var sc scanner
	switch format {
	case FormatPBF:
		sc = osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	default:
		sc = osmxml.New(ctx, r)
	}
	defer sc.Close()

	b := newBuilder(opts)
	for sc.Scan() {
		switch obj := sc.Object().(type) {
		case *osm.Node:
			b.addNode(obj)
		case *osm.Way:
			b.addWay(obj)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConvert, err, "decode %s", format)
	}
	return b.build(), nil
}

// =============================================================================
// Builder
// =============================================================================

type point struct{ lat, lon float64 }

type road struct {
	name       string
	speedLimit int
	lanes      int
	refs       []int64
}

type builder struct {
	logger   *log.Logger
	interest map[string]bool

	points    map[int64]point
	roads     []road
	landmarks []losm.Landmark
}

func newBuilder(opts Options) *builder {
	interest := make(map[string]bool, len(opts.Interest))
	for _, a := range opts.Interest {
		interest[a] = true
	}
	return &builder{
		logger:   opts.logger(),
		interest: interest,
		points:   make(map[int64]point),
	}
}

func (b *builder) addNode(n *osm.Node) {
	id := int64(n.ID)
	b.points[id] = point{lat: n.Lat, lon: n.Lon}

	if len(b.interest) == 0 || !b.interest[n.Tags.Find("amenity")] {
		return
	}
	b.landmarks = append(b.landmarks, losm.Landmark{
		UID:  id,
		X:    n.Lat,
		Y:    n.Lon,
		Name: cleanName(n.Tags.Find("name")),
	})
}

func (b *builder) addWay(w *osm.Way) {
	class := w.Tags.Find("highway")
	defaultSpeed, ok := DefaultSpeedLimit(class)
	if !ok {
		return
	}

	rd := road{
		name:       cleanName(w.Tags.Find("name")),
		speedLimit: defaultSpeed,
		lanes:      DefaultLanes,
		refs:       make([]int64, len(w.Nodes)),
	}
	if v := w.Tags.Find("maxspeed"); v != "" {
		// Values look like "30 mph"; the leading number is kept.
		if mph, ok := leadingInt(v); ok {
			rd.speedLimit = mph
		} else {
			b.logger.Warn("unreadable maxspeed", "way", w.ID, "value", v, "using", defaultSpeed)
		}
	}
	if v := w.Tags.Find("lanes"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			rd.lanes = n
		} else {
			b.logger.Warn("unreadable lanes", "way", w.ID, "value", v, "using", DefaultLanes)
		}
	}
	for i, wn := range w.Nodes {
		rd.refs[i] = int64(wn.ID)
	}
	b.roads = append(b.roads, rd)
}

// build walks the roads in input order. Nodes are numbered in order of first
// reference; each edge runs from a node back to its predecessor on the way.
func (b *builder) build() *Result {
	res := &Result{Landmarks: b.landmarks}
	refs := make(map[int64]losm.NodeRef)

	nodeRef := func(id int64) (losm.NodeRef, bool) {
		if ref, ok := refs[id]; ok {
			return ref, true
		}
		p, ok := b.points[id]
		if !ok {
			return losm.NoNode, false
		}
		ref := losm.NodeRef(len(res.Nodes))
		res.Nodes = append(res.Nodes, losm.Node{UID: id, X: p.lat, Y: p.lon})
		refs[id] = ref
		return ref, true
	}

	for _, rd := range b.roads {
		prev := losm.NoNode
		for _, id := range rd.refs {
			cur, ok := nodeRef(id)
			if !ok {
				b.logger.Warn("way references node missing from extract", "node", id, "road", rd.name)
				res.Missing++
				prev = losm.NoNode
				continue
			}
			if prev.Valid() {
				a, c := res.Nodes[cur], res.Nodes[prev]
				res.Edges = append(res.Edges, losm.Edge{
					Node1:      cur,
					Node2:      prev,
					UID1:       a.UID,
					UID2:       c.UID,
					Name:       rd.name,
					Distance:   Haversine(a.X, a.Y, c.X, c.Y),
					SpeedLimit: rd.speedLimit,
					Lanes:      rd.lanes,
				})
				res.Nodes[cur].Degree++
				res.Nodes[prev].Degree++
			}
			prev = cur
		}
	}

	if res.Nodes == nil {
		res.Nodes = []losm.Node{}
	}
	if res.Edges == nil {
		res.Edges = []losm.Edge{}
	}
	if res.Landmarks == nil {
		res.Landmarks = []losm.Landmark{}
	}
	return res
}

// cleanName makes a tag value safe for the comma-delimited format.
func cleanName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',':
			return ';'
		case '\n', '\r', '\t':
			return ' '
		}
		return r
	}, s)
	s = strings.Trim(s, " ")
	if s == "" {
		return DefaultName
	}
	return s
}

func leadingInt(s string) (int, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(fields[0])
	return n, err == nil
}

// InterestKey returns the interest list sorted and deduplicated, the form
// used in cache keys.
func InterestKey(interest []string) []string {
	out := slices.Clone(interest)
	slices.Sort(out)
	return slices.Compact(out)
}

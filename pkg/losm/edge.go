package losm

import (
	"fmt"
	"io"

	"github.com/matzehuels/losm/pkg/errors"
)

// Edge is a road segment between two nodes.
//
// Node1 and Node2 are resolved once at load time from UID1 and UID2. In
// lenient mode either may be [NoNode] when the uid matched nothing; the raw
// uids are kept so such edges can still be reported.
type Edge struct {
	Node1      NodeRef
	Node2      NodeRef
	UID1       int64
	UID2       int64
	Name       string  // street name
	Distance   float64 // miles
	SpeedLimit int
	Lanes      int
}

// Resolved reports whether both endpoints matched a loaded node.
func (e Edge) Resolved() bool { return e.Node1.Valid() && e.Node2.Valid() }

// String describes the edge.
func (e Edge) String() string {
	return fmt.Sprintf("Edge between Node %d and Node %d has name %s with distance %f and %d lanes",
		e.UID1, e.UID2, e.Name, e.Distance, e.Lanes)
}

// NeighborIndex maps a node to the nodes one edge away, in edge file order.
// It is undirected and keeps duplicates for parallel edges.
type NeighborIndex map[NodeRef][]NodeRef

func (idx NeighborIndex) link(a, b NodeRef) {
	idx[a] = append(idx[a], b)
	idx[b] = append(idx[b], a)
}

const edgeFields = 6

// LoadEdges reads the edge file at path. See [ReadEdges].
func LoadEdges(path string, nodes []Node, opts Options) ([]Edge, NeighborIndex, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return ReadEdges(f, path, nodes, opts)
}

// ReadEdges parses rows of "node1_uid, node2_uid, name, distance,
// speed_limit, lanes", resolving the uids against nodes and building the
// neighbor index as it goes.
//
// A uid that matches no node is handled according to opts.Resolution. On the
// first malformed row nothing is returned, neither edges nor index.
func ReadEdges(r io.Reader, name string, nodes []Node, opts Options) ([]Edge, NeighborIndex, error) {
	uids := uidIndex(nodes)
	logger := opts.logger()

	resolve := func(row int, field string, uid int64) (NodeRef, error) {
		if ref, ok := uids[uid]; ok {
			return ref, nil
		}
		if opts.Resolution == Strict {
			return NoNode, errors.New(errors.ErrCodeUnresolvedNode, "no node with uid %d", uid).
				At(name, row).
				WithField(field)
		}
		logger.Warn("unresolved node reference", "file", name, "row", row, "field", field, "uid", uid)
		return NoNode, nil
	}

	var edges []Edge
	index := make(NeighborIndex)
	err := scanRows(r, name, edgeFields, func(row int, fields []string) error {
		p := fieldParser{name: name, row: row}
		e := Edge{
			UID1:       p.int64("node1_uid", fields[0]),
			UID2:       p.int64("node2_uid", fields[1]),
			Name:       fields[2],
			Distance:   p.float("distance", fields[3]),
			SpeedLimit: p.int("speed_limit", fields[4]),
			Lanes:      p.int("lanes", fields[5]),
		}
		if p.err != nil {
			return p.err
		}

		var err error
		if e.Node1, err = resolve(row, "node1_uid", e.UID1); err != nil {
			return err
		}
		if e.Node2, err = resolve(row, "node2_uid", e.UID2); err != nil {
			return err
		}

		edges = append(edges, e)
		index.link(e.Node1, e.Node2)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if edges == nil {
		edges = []Edge{}
	}
	return edges, index, nil
}

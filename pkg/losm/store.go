package losm

import (
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/losm/pkg/errors"
)

// Store owns a loaded road network: nodes, edges, landmarks, and the
// neighbor index derived from the edges.
//
// A Store is empty until [Store.Load] succeeds. Load is all-or-nothing across
// the three files: the new data is committed only after nodes, edges, and
// landmarks have all parsed, so a failed Load leaves the previous contents
// in place. Reads may run concurrently with each other and with a Load; the
// slices returned by the accessors must not be modified.
type Store struct {
	opts Options

	mu        sync.RWMutex
	nodes     []Node
	edges     []Edge
	landmarks []Landmark
	neighbors NeighborIndex
	uids      map[int64]NodeRef
}

// New returns an empty store.
func New(opts Options) *Store {
	return &Store{
		opts:      opts,
		nodes:     []Node{},
		edges:     []Edge{},
		landmarks: []Landmark{},
		neighbors: NeighborIndex{},
		uids:      map[int64]NodeRef{},
	}
}

// Open returns a store loaded from the three files.
func Open(nodePath, edgePath, landmarkPath string, opts Options) (*Store, error) {
	s := New(opts)
	if err := s.Load(nodePath, edgePath, landmarkPath); err != nil {
		return nil, err
	}
	return s, nil
}

// FromParts builds a store from already parsed entities, recomputing the
// neighbor index from the edges' resolved endpoints. Endpoints must be
// [NoNode] or index into nodes.
func FromParts(nodes []Node, edges []Edge, landmarks []Landmark, opts Options) (*Store, error) {
	index := make(NeighborIndex)
	for i, e := range edges {
		for _, ref := range []NodeRef{e.Node1, e.Node2} {
			if ref != NoNode && (ref < 0 || int(ref) >= len(nodes)) {
				return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d references node %d of %d", i, ref, len(nodes))
			}
		}
		index.link(e.Node1, e.Node2)
	}

	s := New(opts)
	s.commit(orEmpty(nodes), orEmpty(edges), orEmpty(landmarks), index)
	return s, nil
}

// Load parses nodes, then edges against those nodes, then landmarks, and
// replaces the store's contents when all three succeed. The first parse
// error is returned unchanged.
func (s *Store) Load(nodePath, edgePath, landmarkPath string) error {
	start := time.Now()

	nodes, err := LoadNodes(nodePath)
	if err != nil {
		return err
	}
	s.opts.stageDone(StageNodes, len(nodes), start)

	stage := time.Now()
	edges, index, err := LoadEdges(edgePath, nodes, s.opts)
	if err != nil {
		return err
	}
	s.opts.stageDone(StageEdges, len(edges), stage)

	stage = time.Now()
	landmarks, err := LoadLandmarks(landmarkPath)
	if err != nil {
		return err
	}
	s.opts.stageDone(StageLandmarks, len(landmarks), stage)

	s.commit(nodes, edges, landmarks, index)
	s.opts.logger().Debug("load committed", "indexed", len(index), "duration", time.Since(start).Round(time.Millisecond))
	return nil
}

func (s *Store) commit(nodes []Node, edges []Edge, landmarks []Landmark, index NeighborIndex) {
	uids := uidIndex(nodes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nodes
	s.edges = edges
	s.landmarks = landmarks
	s.neighbors = index
	s.uids = uids
}

// Options returns the options the store was created with.
func (s *Store) Options() Options { return s.opts }

// Nodes returns the nodes in file order.
func (s *Store) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodes
}

// Edges returns the edges in file order.
func (s *Store) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.edges
}

// Landmarks returns the landmarks in file order.
func (s *Store) Landmarks() []Landmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.landmarks
}

// Node returns the node at ref.
func (s *Store) Node(ref NodeRef) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ref < 0 || int(ref) >= len(s.nodes) {
		return Node{}, false
	}
	return s.nodes[ref], true
}

// Lookup returns the ref of the first node with the given uid.
func (s *Store) Lookup(uid int64) (NodeRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ref, ok := s.uids[uid]
	return ref, ok
}

// Neighbors returns the refs one edge away from ref, in edge file order.
// ref may be [NoNode] when lenient loading recorded unresolved endpoints.
// It fails with NOT_FOUND if ref appears in no edge.
func (s *Store) Neighbors(ref NodeRef) ([]NodeRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	adj, ok := s.neighbors[ref]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "node %d is not referenced by any edge", ref)
	}
	return slices.Clone(adj), nil
}

// NeighborNodes is like [Store.Neighbors] but returns the nodes themselves,
// skipping unresolved [NoNode] entries.
func (s *Store) NeighborNodes(ref NodeRef) ([]Node, error) {
	refs, err := s.Neighbors(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, 0, len(refs))
	for _, r := range refs {
		if r.Valid() && int(r) < len(s.nodes) {
			out = append(out, s.nodes[r])
		}
	}
	return out, nil
}

// Unresolved returns how many edge endpoints are [NoNode].
func (s *Store) Unresolved() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.edges {
		if !e.Node1.Valid() {
			n++
		}
		if !e.Node2.Valid() {
			n++
		}
	}
	return n
}

// DegreeMismatches returns the nodes whose declared degree differs from the
// length of their neighbor list. Nodes absent from the index count as zero.
// The loader never enforces this; it is a data quality check for callers.
func (s *Store) DegreeMismatches() []NodeRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []NodeRef
	for i, n := range s.nodes {
		if len(s.neighbors[NodeRef(i)]) != n.Degree {
			out = append(out, NodeRef(i))
		}
	}
	return out
}

// Stats summarizes a store's contents.
type Stats struct {
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	Landmarks  int `json:"landmarks"`
	Indexed    int `json:"indexed"`    // keys in the neighbor index
	Unresolved int `json:"unresolved"` // NoNode edge endpoints
}

// Stats returns counts for the current contents.
func (s *Store) Stats() Stats {
	unresolved := s.Unresolved()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Nodes:      len(s.nodes),
		Edges:      len(s.edges),
		Landmarks:  len(s.landmarks),
		Indexed:    len(s.neighbors),
		Unresolved: unresolved,
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package graph

import (
	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/losm"
)

// FormatVersion is written into every snapshot. Readers reject other versions.
const FormatVersion = 1

// =============================================================================
// Graph - Road Network Snapshot
// =============================================================================

// Graph is the serialization format for a loaded road network.
// Used for exports, the snapshot cache, and interoperability with tools that
// prefer JSON to the LOSM line format.
//
// Edges keep both the resolved node positions and the raw uids, so a
// snapshot of a leniently loaded store restores its unresolved endpoints
// exactly.
type Graph struct {
	Version    int        `json:"version" bson:"version"`
	Resolution string     `json:"resolution" bson:"resolution"`
	Nodes      []Node     `json:"nodes" bson:"nodes"`
	Edges      []Edge     `json:"edges" bson:"edges"`
	Landmarks  []Landmark `json:"landmarks" bson:"landmarks"`
}

// Node is a serialized road node.
type Node struct {
	UID    int64   `json:"uid" bson:"uid"`
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Degree int     `json:"degree" bson:"degree"`
}

// Edge is a serialized road segment. From and To index into Graph.Nodes;
// -1 marks an endpoint that did not resolve.
type Edge struct {
	From       int     `json:"from" bson:"from"`
	To         int     `json:"to" bson:"to"`
	FromUID    int64   `json:"from_uid" bson:"from_uid"`
	ToUID      int64   `json:"to_uid" bson:"to_uid"`
	Name       string  `json:"name" bson:"name"`
	Distance   float64 `json:"distance" bson:"distance"`
	SpeedLimit int     `json:"speed_limit" bson:"speed_limit"`
	Lanes      int     `json:"lanes" bson:"lanes"`
}

// Landmark is a serialized point of interest.
type Landmark struct {
	UID  int64   `json:"uid" bson:"uid"`
	X    float64 `json:"x" bson:"x"`
	Y    float64 `json:"y" bson:"y"`
	Name string  `json:"name" bson:"name"`
}

// =============================================================================
// Conversion
// =============================================================================

// FromStore converts the current contents of s to the serialization format.
func FromStore(s *losm.Store) Graph {
	nodes := s.Nodes()
	edges := s.Edges()
	landmarks := s.Landmarks()

	g := Graph{
		Version:    FormatVersion,
		Resolution: s.Options().Resolution.String(),
		Nodes:      make([]Node, len(nodes)),
		Edges:      make([]Edge, len(edges)),
		Landmarks:  make([]Landmark, len(landmarks)),
	}
	for i, n := range nodes {
		g.Nodes[i] = Node{UID: n.UID, X: n.X, Y: n.Y, Degree: n.Degree}
	}
	for i, e := range edges {
		g.Edges[i] = Edge{
			From:       int(e.Node1),
			To:         int(e.Node2),
			FromUID:    e.UID1,
			ToUID:      e.UID2,
			Name:       e.Name,
			Distance:   e.Distance,
			SpeedLimit: e.SpeedLimit,
			Lanes:      e.Lanes,
		}
	}
	for i, l := range landmarks {
		g.Landmarks[i] = Landmark{UID: l.UID, X: l.X, Y: l.Y, Name: l.Name}
	}
	return g
}

// ToStore rebuilds a store from a snapshot. The neighbor index is recomputed
// from the edges. opts supplies the logger; its Resolution is ignored in
// favor of the one recorded in the snapshot.
func ToStore(g Graph, opts losm.Options) (*losm.Store, error) {
	if g.Version != FormatVersion {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unsupported snapshot version %d", g.Version)
	}
	res, err := losm.ParseResolution(g.Resolution)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid snapshot")
	}
	opts.Resolution = res

	nodes := make([]losm.Node, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = losm.Node{UID: n.UID, X: n.X, Y: n.Y, Degree: n.Degree}
	}
	edges := make([]losm.Edge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = losm.Edge{
			Node1:      losm.NodeRef(e.From),
			Node2:      losm.NodeRef(e.To),
			UID1:       e.FromUID,
			UID2:       e.ToUID,
			Name:       e.Name,
			Distance:   e.Distance,
			SpeedLimit: e.SpeedLimit,
			Lanes:      e.Lanes,
		}
	}
	landmarks := make([]losm.Landmark, len(g.Landmarks))
	for i, l := range g.Landmarks {
		landmarks[i] = losm.Landmark{UID: l.UID, X: l.X, Y: l.Y, Name: l.Name}
	}
	return losm.FromParts(nodes, edges, landmarks, opts)
}

package losm

import (
	"fmt"
	"io"
)

// NodeRef addresses a node by its position in the node sequence it was
// resolved against (for a [Store], its Nodes slice).
type NodeRef int

// NoNode marks an edge endpoint whose uid matched no loaded node.
const NoNode NodeRef = -1

// Valid reports whether r refers to a node rather than [NoNode].
func (r NodeRef) Valid() bool { return r >= 0 }

// Node is an intersection or way point of the road network.
type Node struct {
	UID    int64   // externally assigned identifier
	X      float64 // latitude
	Y      float64 // longitude
	Degree int     // declared incident edge count, not recomputed
}

// String describes the node.
func (n Node) String() string {
	return fmt.Sprintf("Node %d is located at (%f, %f) with degree %d", n.UID, n.X, n.Y, n.Degree)
}

const nodeFields = 4

// LoadNodes reads the node file at path. See [ReadNodes].
func LoadNodes(path string) ([]Node, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadNodes(f, path)
}

// ReadNodes parses rows of "uid, x, y, degree". name identifies the input in
// errors. On the first malformed row nothing is returned.
func ReadNodes(r io.Reader, name string) ([]Node, error) {
	var nodes []Node
	err := scanRows(r, name, nodeFields, func(row int, fields []string) error {
		p := fieldParser{name: name, row: row}
		n := Node{
			UID:    p.int64("uid", fields[0]),
			X:      p.float("x", fields[1]),
			Y:      p.float("y", fields[2]),
			Degree: p.int("degree", fields[3]),
		}
		if p.err != nil {
			return p.err
		}
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if nodes == nil {
		nodes = []Node{}
	}
	return nodes, nil
}

// uidIndex maps each uid to its first position in nodes.
func uidIndex(nodes []Node) map[int64]NodeRef {
	m := make(map[int64]NodeRef, len(nodes))
	for i, n := range nodes {
		if _, dup := m[n.UID]; !dup {
			m[n.UID] = NodeRef(i)
		}
	}
	return m
}

// Package losm loads Light-OSM road network data into memory.
//
// A LOSM data set is three comma-delimited text files, one record per line,
// no header:
//
//	nodes.dat      uid, x, y, degree
//	edges.dat      node1_uid, node2_uid, name, distance, speed_limit, lanes
//	landmarks.dat  uid, x, y, name
//
// Fields are trimmed of surrounding spaces and empty fields are dropped
// before the row is checked against its expected field count. Coordinates
// are latitude (x) and longitude (y); distance is in miles.
//
// # Loading
//
// [Store] is the entry point. [Store.Load] parses nodes first, then edges
// (whose endpoints are resolved against the nodes), then landmarks:
//
//	s, err := losm.Open("nodes.dat", "edges.dat", "landmarks.dat", losm.Options{})
//	if err != nil {
//	    return err // *errors.Error with File, Row, and Field set
//	}
//	ref, _ := s.Lookup(42)
//	adj, err := s.Neighbors(ref)
//
// The first malformed row aborts the whole load and the store keeps whatever
// it held before.
//
// # Node References
//
// Edges refer to nodes by [NodeRef], the node's index in [Store.Nodes]. An
// endpoint uid that matches no node resolves to [NoNode] in [Lenient] mode
// (the default) and fails the load in [Strict] mode. In lenient mode NoNode
// also appears in the neighbor index, as a key and as a value, exactly like
// any other endpoint.
//
// # Writing
//
// [WriteNodes], [WriteEdges], [WriteLandmarks], and [Save] produce the same
// line format, so written data reads back to equal entities.
package losm

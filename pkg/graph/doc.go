// Package graph provides serialization types for loaded road networks.
//
// This package defines the snapshot format for a [losm.Store]: JSON for
// exports and interoperability, BSON for the snapshot cache.
//
// # Architecture
//
// The package sits at the serialization boundary between the in-memory
// store and external formats:
//
//   - [Graph], [Node], [Edge], [Landmark]: Serialization types (this package)
//   - losm.Store: Loaded network with its neighbor index
//
// Use [FromStore]/[ToStore] to convert between them. The neighbor index is
// never serialized; [ToStore] recomputes it from the edges.
//
// # Snapshot Format
//
//	{
//	  "version": 1,
//	  "resolution": "lenient",
//	  "nodes": [{"uid": 1, "x": 40.0, "y": -73.0, "degree": 1}, ...],
//	  "edges": [{"from": 0, "to": 1, "from_uid": 1, "to_uid": 2,
//	             "name": "Main St", "distance": 1.5, "speed_limit": 30, "lanes": 2}],
//	  "landmarks": [{"uid": 5, "x": 40.0, "y": -73.0, "name": "City Hall"}]
//	}
//
// Edge endpoints are node positions; -1 marks an endpoint that did not
// resolve when the store was loaded leniently.
//
// Common operations:
//
//	graph.WriteGraphFile(store, "network.json")      // Store → File
//	store, _ := graph.ReadGraphFile("network.json", losm.Options{})
//	data, _ := graph.MarshalBSON(store)              // Store → BSON
//	store, _ = graph.UnmarshalBSON(data, losm.Options{})
//
// # Concurrency
//
// All functions are safe for concurrent use; they only read the store.
package graph

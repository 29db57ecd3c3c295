// Package pkg provides the core libraries for LOSM road network loading.
//
// # Overview
//
// LOSM (Light OSM) is a plain-text rendition of an OpenStreetMap extract:
// intersections as nodes, road segments as edges, and points of interest as
// landmarks. The pkg directory is organized into three areas:
//
//  1. [losm] - Domain logic (parsers, the graph store, writers)
//  2. [infra] - Infrastructure (caching, configuration, hooks)
//  3. [pipeline] - Orchestration (hash → restore or parse → cache)
//
// # Architecture
//
// The typical data flow:
//
//	OSM extract (.osm / .pbf)
//	         ↓
//	    [convert] package (roads, landmarks, optional simplification)
//	         ↓
//	    nodes.dat, edges.dat, landmarks.dat
//	         ↓
//	    [losm] package (parse + neighbor index)
//	         ↓
//	    [graph] package (JSON export, BSON snapshots)
//
// # Quick Start
//
// Load a data set and walk a node's neighbors:
//
//	import "github.com/matzehuels/losm/pkg/losm"
//
//	s, err := losm.Open("nodes.dat", "edges.dat", "landmarks.dat", losm.Options{})
//	if err != nil {
//	    return err
//	}
//	ref, _ := s.Lookup(1042)
//	nodes, _ := s.NeighborNodes(ref)
//
// # Main Packages
//
// ## Core Domain Logic
//
//   - [losm]: Node, edge, and landmark parsers and the [losm.Store]
//   - [convert]: OSM XML and PBF extracts to LOSM files
//   - [graph]: Serializable snapshot of a loaded store
//
// ## Infrastructure
//
//   - [cache]: File, Redis, and no-op snapshot caches
//   - [config]: losm.toml settings
//   - [observability]: Load, convert, and cache hooks
//   - [errors]: Coded errors with file and row positions
//   - [buildinfo]: Version information set at link time
//
// ## Orchestration
//
//   - [pipeline]: Cached loading and conversion used by the CLI
//
// [losm]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/losm
// [convert]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/convert
// [graph]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/graph
// [cache]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/buildinfo
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/pipeline
// [infra]: https://pkg.go.dev/github.com/matzehuels/losm/pkg/cache
package pkg

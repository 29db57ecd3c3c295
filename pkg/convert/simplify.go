package convert

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/losm/pkg/losm"
)

// Simplify collapses chains of degree-2 nodes so that only intersections and
// dead ends remain. Each chain becomes one edge between its end nodes with
// the summed distance and the first segment's name, speed limit, and lanes.
// A pair of end nodes gets at most one edge, whichever direction is walked
// first. Degrees are recomputed for the new edges.
//
// A chain may end where it started, giving a loop edge on that node. A chain
// that closes on one of its own degree-2 nodes is dropped with a warning.
// Landmarks are carried over unchanged. The receiver is not modified.
func (r *Result) Simplify(logger *log.Logger) *Result {
	if logger == nil {
		logger = Options{}.logger()
	}

	incident := make([][]int, len(r.Nodes))
	for i, e := range r.Edges {
		incident[e.Node1] = append(incident[e.Node1], i)
		if e.Node2 != e.Node1 {
			incident[e.Node2] = append(incident[e.Node2], i)
		}
	}
	other := func(e losm.Edge, from losm.NodeRef) losm.NodeRef {
		if e.Node1 == from {
			return e.Node2
		}
		return e.Node1
	}

	out := &Result{Landmarks: r.Landmarks, Missing: r.Missing}
	kept := make(map[losm.NodeRef]losm.NodeRef) // old ref -> new ref
	keep := func(ref losm.NodeRef) losm.NodeRef {
		if nr, ok := kept[ref]; ok {
			return nr
		}
		n := r.Nodes[ref]
		n.Degree = 0
		nr := losm.NodeRef(len(out.Nodes))
		out.Nodes = append(out.Nodes, n)
		kept[ref] = nr
		return nr
	}

	type pair struct{ a, b losm.NodeRef }
	seen := make(map[pair]bool)

	for i, n := range r.Nodes {
		start := losm.NodeRef(i)
		if n.Degree == 2 {
			continue
		}
		keep(start)

		for _, ei := range incident[start] {
			first := r.Edges[ei]
			cur := other(first, start)
			distance := first.Distance
			visited := map[losm.NodeRef]bool{start: true, cur: true}
			walked := ei

			stuck := false
			for r.Nodes[cur].Degree == 2 {
				next := -1
				for _, cand := range incident[cur] {
					if cand == walked {
						continue
					}
					if o := other(r.Edges[cand], cur); o != cur && (o == start || !visited[o]) {
						next = cand
						break
					}
				}
				if next < 0 {
					stuck = true
					break
				}
				distance += r.Edges[next].Distance
				cur = other(r.Edges[next], cur)
				visited[cur] = true
				walked = next
			}
			if stuck {
				logger.Warn("dropping road that loops without reaching an intersection",
					"from", n.UID, "road", first.Name)
				continue
			}

			if seen[pair{start, cur}] {
				continue
			}
			seen[pair{start, cur}] = true
			seen[pair{cur, start}] = true

			a, b := keep(start), keep(cur)
			out.Edges = append(out.Edges, losm.Edge{
				Node1:      a,
				Node2:      b,
				UID1:       n.UID,
				UID2:       r.Nodes[cur].UID,
				Name:       first.Name,
				Distance:   distance,
				SpeedLimit: first.SpeedLimit,
				Lanes:      first.Lanes,
			})
			out.Nodes[a].Degree++
			out.Nodes[b].Degree++
		}
	}

	if out.Nodes == nil {
		out.Nodes = []losm.Node{}
	}
	if out.Edges == nil {
		out.Edges = []losm.Edge{}
	}
	return out
}

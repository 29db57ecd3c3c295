package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/losm/pkg/graph"
	"github.com/matzehuels/losm/pkg/losm"
)

func ExampleWriteGraph() {
	s, _ := losm.FromParts(
		[]losm.Node{{UID: 1, X: 40, Y: -73, Degree: 1}, {UID: 2, X: 40.5, Y: -73.5, Degree: 1}},
		[]losm.Edge{{Node1: 0, Node2: 1, UID1: 1, UID2: 2, Name: "Main St", Distance: 1.5, SpeedLimit: 30, Lanes: 2}},
		nil,
		losm.Options{},
	)

	var buf bytes.Buffer
	if err := graph.WriteGraph(s, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(buf.String())
	// Output:
	// {
	//   "version": 1,
	//   "resolution": "lenient",
	//   "nodes": [
	//     {
	//       "uid": 1,
	//       "x": 40,
	//       "y": -73,
	//       "degree": 1
	//     },
	//     {
	//       "uid": 2,
	//       "x": 40.5,
	//       "y": -73.5,
	//       "degree": 1
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": 0,
	//       "to": 1,
	//       "from_uid": 1,
	//       "to_uid": 2,
	//       "name": "Main St",
	//       "distance": 1.5,
	//       "speed_limit": 30,
	//       "lanes": 2
	//     }
	//   ],
	//   "landmarks": []
	// }
}

func ExampleReadGraph() {
	jsonData := `{
		"version": 1,
		"nodes": [{"uid": 1}, {"uid": 2}, {"uid": 3}],
		"edges": [
			{"from": 0, "to": 1, "name": "A"},
			{"from": 0, "to": 2, "name": "B"}
		]
	}`

	s, err := graph.ReadGraph(strings.NewReader(jsonData), losm.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	adj, _ := s.Neighbors(0)
	fmt.Println("nodes:", len(s.Nodes()))
	fmt.Println("neighbors of 0:", adj)
	// Output:
	// nodes: 3
	// neighbors of 0: [1 2]
}

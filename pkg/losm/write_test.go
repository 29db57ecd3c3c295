package losm

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/losm/pkg/errors"
)

func TestWriteNodes(t *testing.T) {
	var buf bytes.Buffer
	nodes := []Node{{UID: 1, X: 40.5, Y: -73, Degree: 2}, {UID: 2, X: 0.125, Y: 1e-7, Degree: 0}}
	if err := WriteNodes(&buf, nodes); err != nil {
		t.Fatal(err)
	}
	want := "1,40.5,-73,2\n2,0.125,0.0000001,0\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	nodes := []Node{
		{UID: 1, X: 40.712776, Y: -74.005974, Degree: 1},
		{UID: 2, X: 40.713, Y: -74.006, Degree: 1},
	}
	edges := []Edge{{Node1: 0, Node2: 1, UID1: 1, UID2: 2, Name: "Broadway", Distance: 0.0187, SpeedLimit: 25, Lanes: 2}}
	landmarks := []Landmark{{UID: 9, X: 40.7, Y: -74.0, Name: "City Hall"}}

	prefix := filepath.Join(t.TempDir(), "nyc_")
	if err := Save(prefix, nodes, edges, landmarks); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s, err := Open(prefix+NodesFile, prefix+EdgesFile, prefix+LandmarksFile, Options{Resolution: Strict})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !slices.Equal(s.Nodes(), nodes) {
		t.Errorf("nodes = %v, want %v", s.Nodes(), nodes)
	}
	if !slices.Equal(s.Edges(), edges) {
		t.Errorf("edges = %v, want %v", s.Edges(), edges)
	}
	if !slices.Equal(s.Landmarks(), landmarks) {
		t.Errorf("landmarks = %v, want %v", s.Landmarks(), landmarks)
	}
}

func TestWriteRejectsUnreadableNames(t *testing.T) {
	tests := []struct {
		name  string
		write func(*bytes.Buffer) error
	}{
		{"EdgeComma", func(b *bytes.Buffer) error {
			return WriteEdges(b, []Edge{{Name: "Main St, North"}})
		}},
		{"EdgeBlank", func(b *bytes.Buffer) error {
			return WriteEdges(b, []Edge{{Name: "   "}})
		}},
		{"LandmarkNewline", func(b *bytes.Buffer) error {
			return WriteLandmarks(b, []Landmark{{Name: "Two\nLines"}})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.write(&buf); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestSaveBadPrefix(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "missing", "dir") + string(os.PathSeparator)
	err := Save(prefix, nil, nil, nil)
	if !errors.Is(err, errors.ErrCodeFileOpen) {
		t.Fatalf("err = %v, want FILE_OPEN", err)
	}
	if !strings.HasSuffix(err.(*errors.Error).File, NodesFile) {
		t.Errorf("error should name the nodes file: %v", err)
	}
}

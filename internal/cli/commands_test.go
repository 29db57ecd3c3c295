package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/graph"
	"github.com/matzehuels/losm/pkg/losm"
)

func TestLoadCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	files := writeDataSet(t, testEdges)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"Files", append([]string{"load"}, files...), ""},
		{"Cached", append([]string{"load"}, files...), ""},
		{"NoCache", append([]string{"load", "--no-cache"}, files...), ""},
		{"Refresh", append([]string{"load", "--refresh"}, files...), ""},
		{"NoDataSet", []string{"load"}, errors.ErrCodeInvalidInput},
		{"MissingFile", []string{"load", files[0], files[1], filepath.Join(t.TempDir(), "none.dat")}, errors.ErrCodeFileOpen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if tt.code == "" {
				if err != nil {
					t.Errorf("load = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("load = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadCommandArgCount(t *testing.T) {
	files := writeDataSet(t, testEdges)
	if _, err := execute(t, "load", files[0], files[1]); err == nil {
		t.Error("load accepted two files")
	}
}

func TestLoadCommandStrict(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	files := writeDataSet(t, "1,2,Main St,1.5,30,2\n1,9,Ghost Rd,0.8,25,1\n")

	if _, err := execute(t, append([]string{"load"}, files...)...); err != nil {
		t.Errorf("lenient load = %v", err)
	}
	_, err := execute(t, append([]string{"load", "--strict"}, files...)...)
	if !errors.Is(err, errors.ErrCodeUnresolvedNode) {
		t.Errorf("strict load = %v, want UNRESOLVED_NODE", err)
	}
}

func TestNeighborsCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	files := writeDataSet(t, testEdges)
	args := func(extra ...string) []string {
		out := append([]string{"neighbors"}, files...)
		return append(out, extra...)
	}

	tests := []struct {
		name string
		args []string
		want string
		code errors.Code
	}{
		{
			name: "TwoNeighbors",
			args: args("1"),
			want: "Node 2 is located at (40.100000, -73.100000) with degree 1\n" +
				"Node 3 is located at (40.200000, -73.200000) with degree 1\n",
		},
		{
			name: "OneNeighbor",
			args: args("3"),
			want: "Node 1 is located at (40.000000, -73.000000) with degree 2\n",
		},
		{
			name: "WithLandmarks",
			args: args("2", "--landmarks"),
			want: "Node 1 is located at (40.000000, -73.000000) with degree 2\n",
		},
		{
			name: "LandmarkAtNode",
			args: args("1", "--landmarks"),
			want: "Node 2 is located at (40.100000, -73.100000) with degree 1\n" +
				"Node 3 is located at (40.200000, -73.200000) with degree 1\n" +
				"Landmark 5 is located at (40.000000, -73.000000) with name City Hall\n",
		},
		{name: "NotOnAnyEdge", args: args("4"), want: ""},
		{name: "UnknownUID", args: args("99"), code: errors.ErrCodeNotFound},
		{name: "BadUID", args: args("abc"), code: errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("neighbors = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("neighbors = %v", err)
			}
			if out != tt.want {
				t.Errorf("output =\n%s\nwant\n%s", out, tt.want)
			}
		})
	}
}

func TestExportCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	files := writeDataSet(t, testEdges)

	path := filepath.Join(t.TempDir(), "city.json")
	if _, err := execute(t, append([]string{"export", "-o", path}, files...)...); err != nil {
		t.Fatalf("export -o = %v", err)
	}
	s, err := graph.ReadGraphFile(path, losm.Options{})
	if err != nil {
		t.Fatalf("ReadGraphFile: %v", err)
	}
	if st := s.Stats(); st.Nodes != 4 || st.Edges != 2 || st.Landmarks != 1 {
		t.Errorf("exported stats = %+v", st)
	}

	out, err := execute(t, append([]string{"export"}, files...)...)
	if err != nil {
		t.Fatalf("export = %v", err)
	}
	g, err := graph.UnmarshalGraph([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a snapshot: %v\n%s", err, out)
	}
	if len(g.Nodes) != 4 || g.Resolution != "lenient" {
		t.Errorf("snapshot = %d nodes, resolution %q", len(g.Nodes), g.Resolution)
	}
}

const testExtract = `<osm version="0.6">
  <node id="1" lat="0" lon="0"/>
  <node id="2" lat="0" lon="1"/>
  <node id="3" lat="0" lon="2"/>
  <node id="7" lat="0" lon="2">
    <tag k="amenity" v="school"/>
    <tag k="name" v="North High"/>
  </node>
  <way id="10">
    <nd ref="1"/><nd ref="2"/><nd ref="3"/>
    <tag k="highway" v="residential"/>
    <tag k="name" v="Elm St"/>
  </way>
</osm>`

func TestConvertCommand(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "town.osm")
	if err := os.WriteFile(input, []byte(testExtract), 0o644); err != nil {
		t.Fatal(err)
	}
	prefix := filepath.Join(dir, "out", "town_")

	if _, err := execute(t, "convert", input, prefix, "--interest", "school"); err != nil {
		t.Fatalf("convert = %v", err)
	}

	files := []string{prefix + losm.NodesFile, prefix + losm.EdgesFile, prefix + losm.LandmarksFile}
	s, err := losm.Open(files[0], files[1], files[2], losm.Options{Resolution: losm.Strict})
	if err != nil {
		t.Fatalf("Open converted files: %v", err)
	}
	if st := s.Stats(); st.Nodes != 3 || st.Edges != 2 || st.Landmarks != 1 {
		t.Errorf("converted stats = %+v", st)
	}

	out, err := execute(t, append(append([]string{"neighbors"}, files...), "3", "--landmarks")...)
	if err != nil {
		t.Fatalf("neighbors on converted data = %v", err)
	}
	if !strings.Contains(out, "with name North High") {
		t.Errorf("neighbors output = %q, want the school landmark", out)
	}

	bad := filepath.Join(dir, "town.json")
	if err := os.WriteFile(bad, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "convert", bad); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("convert .json = %v, want INVALID_INPUT", err)
	}
}

func TestConfigFlag(t *testing.T) {
	files := writeDataSet(t, testEdges)
	cacheDir := t.TempDir()

	cfgPath := filepath.Join(t.TempDir(), "losm.toml")
	content := "[data]\n" +
		"nodes = \"" + files[0] + "\"\n" +
		"edges = \"" + files[1] + "\"\n" +
		"landmarks = \"" + files[2] + "\"\n" +
		"[cache]\n" +
		"dir = \"" + cacheDir + "\"\n" +
		"namespace = \"test\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfgPath, "neighbors", "3")
	if err != nil {
		t.Fatalf("neighbors with --config = %v", err)
	}
	if !strings.HasPrefix(out, "Node 1 ") {
		t.Errorf("output = %q", out)
	}
	if countEntries(t, cacheDir) != 1 {
		t.Errorf("configured cache dir holds %d entries, want 1", countEntries(t, cacheDir))
	}

	out, err = execute(t, "--config", cfgPath, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != cacheDir {
		t.Errorf("cache path = %q, want %q", out, cacheDir)
	}

	if _, err := execute(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "load"); !errors.Is(err, errors.ErrCodeFileOpen) {
		t.Errorf("missing config = %v, want FILE_OPEN", err)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir := filepath.Join(xdg, appName)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Errorf("clear on missing dir = %v", err)
	}

	files := writeDataSet(t, testEdges)
	if _, err := execute(t, append([]string{"load"}, files...)...); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, dir); n != 1 {
		t.Fatalf("cache holds %d entries after load, want 1", n)
	}
	if _, err := execute(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, dir); n != 0 {
		t.Errorf("cache holds %d entries after clear, want 0", n)
	}
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".entry") {
			n++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return n
}

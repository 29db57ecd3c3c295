package losm

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/losm/pkg/errors"
)

// File names used by [Save], appended to the caller's prefix.
const (
	NodesFile     = "nodes.dat"
	EdgesFile     = "edges.dat"
	LandmarksFile = "landmarks.dat"
)

// WriteNodes writes one "uid,x,y,degree" line per node.
func WriteNodes(w io.Writer, nodes []Node) error {
	bw := bufio.NewWriter(w)
	for _, n := range nodes {
		bw.WriteString(joinFields(
			strconv.FormatInt(n.UID, 10),
			formatFloat(n.X),
			formatFloat(n.Y),
			strconv.Itoa(n.Degree),
		))
	}
	return bw.Flush()
}

// WriteEdges writes one "uid1,uid2,name,distance,speed_limit,lanes" line per
// edge. Endpoints are written as the edge's raw uids.
func WriteEdges(w io.Writer, edges []Edge) error {
	bw := bufio.NewWriter(w)
	for i, e := range edges {
		if err := checkName(e.Name, "edge", i); err != nil {
			return err
		}
		bw.WriteString(joinFields(
			strconv.FormatInt(e.UID1, 10),
			strconv.FormatInt(e.UID2, 10),
			e.Name,
			formatFloat(e.Distance),
			strconv.Itoa(e.SpeedLimit),
			strconv.Itoa(e.Lanes),
		))
	}
	return bw.Flush()
}

// WriteLandmarks writes one "uid,x,y,name" line per landmark.
func WriteLandmarks(w io.Writer, landmarks []Landmark) error {
	bw := bufio.NewWriter(w)
	for i, l := range landmarks {
		if err := checkName(l.Name, "landmark", i); err != nil {
			return err
		}
		bw.WriteString(joinFields(
			strconv.FormatInt(l.UID, 10),
			formatFloat(l.X),
			formatFloat(l.Y),
			l.Name,
		))
	}
	return bw.Flush()
}

// Save writes the three files as prefix+NodesFile, prefix+EdgesFile, and
// prefix+LandmarksFile. prefix is used verbatim, so "out/" writes into a
// directory and "city_" prefixes the file names.
func Save(prefix string, nodes []Node, edges []Edge, landmarks []Landmark) error {
	if err := writeFile(prefix+NodesFile, func(w io.Writer) error { return WriteNodes(w, nodes) }); err != nil {
		return err
	}
	if err := writeFile(prefix+EdgesFile, func(w io.Writer) error { return WriteEdges(w, edges) }); err != nil {
		return err
	}
	return writeFile(prefix+LandmarksFile, func(w io.Writer) error { return WriteLandmarks(w, landmarks) })
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileOpen, err, "cannot create file").At(path, 0)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// checkName rejects names the line format cannot carry: a comma would split
// the field and a blank name would be dropped on read.
func checkName(name, kind string, i int) error {
	switch {
	case strings.ContainsAny(name, ",\n\r"):
		return errors.New(errors.ErrCodeInvalidInput, "%s %d: name %q contains a separator", kind, i, name)
	case strings.Trim(name, " ") == "":
		return errors.New(errors.ErrCodeInvalidInput, "%s %d: name is blank", kind, i)
	}
	return nil
}

func joinFields(fields ...string) string {
	return strings.Join(fields, ",") + "\n"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

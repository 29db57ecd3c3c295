package losm

import (
	"fmt"
	"io"
)

// Landmark is a named point of interest. Landmarks are a flat catalog with no
// link to nodes or edges.
type Landmark struct {
	UID  int64
	X    float64
	Y    float64
	Name string
}

// String describes the landmark.
func (l Landmark) String() string {
	return fmt.Sprintf("Landmark %d is located at (%f, %f) with name %s", l.UID, l.X, l.Y, l.Name)
}

const landmarkFields = 4

// LoadLandmarks reads the landmark file at path. See [ReadLandmarks].
func LoadLandmarks(path string) ([]Landmark, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLandmarks(f, path)
}

// ReadLandmarks parses rows of "uid, x, y, name". The name is kept verbatim
// after trimming. On the first malformed row nothing is returned.
func ReadLandmarks(r io.Reader, name string) ([]Landmark, error) {
	var landmarks []Landmark
	err := scanRows(r, name, landmarkFields, func(row int, fields []string) error {
		p := fieldParser{name: name, row: row}
		l := Landmark{
			UID:  p.int64("uid", fields[0]),
			X:    p.float("x", fields[1]),
			Y:    p.float("y", fields[2]),
			Name: fields[3],
		}
		if p.err != nil {
			return p.err
		}
		landmarks = append(landmarks, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if landmarks == nil {
		landmarks = []Landmark{}
	}
	return landmarks, nil
}

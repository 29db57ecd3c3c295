package losm

import (
	"bufio"
	"io"
	"os"
	"strconv"

	"github.com/matzehuels/losm/pkg/errors"
	"github.com/matzehuels/losm/pkg/textutil"
)

// maxLineSize bounds a single record line. Real rows are well under 1 KiB.
const maxLineSize = 1 << 20

// rowFunc handles one split row. row is 1-based.
type rowFunc func(row int, fields []string) error

// scanRows feeds every line of r to fn after checking it splits into exactly
// want fields. The first error stops the scan and is returned as-is.
func scanRows(r io.Reader, name string, want int, fn rowFunc) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	row := 0
	for scanner.Scan() {
		row++
		fields := textutil.SplitFields(scanner.Text())
		if len(fields) != want {
			return errors.New(errors.ErrCodeFieldCount, "expected %d fields, got %d", want, len(fields)).At(name, row)
		}
		if err := fn(row, fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeRead, err, "read failed after row %d", row).At(name, 0)
	}
	return nil
}

// openFile opens path for one of the parsers, mapping failures to FILE_OPEN.
func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileOpen, err, "cannot open file").At(path, 0)
	}
	return f, nil
}

// fieldParser converts the fields of a single row, remembering the first
// failure so call sites can parse every column and check once.
type fieldParser struct {
	name string
	row  int
	err  error
}

func (p *fieldParser) int64(field, s string) int64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.fail(field, "invalid integer", s, err)
	}
	return v
}

func (p *fieldParser) int(field, s string) int {
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		p.fail(field, "invalid integer", s, err)
	}
	return v
}

func (p *fieldParser) float(field, s string) float64 {
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(field, "invalid number", s, err)
	}
	return v
}

func (p *fieldParser) fail(field, what, value string, cause error) {
	if ne, ok := cause.(*strconv.NumError); ok {
		cause = ne.Err
	}
	p.err = errors.Wrap(errors.ErrCodeFieldConversion, cause, "%s %q", what, value).
		At(p.name, p.row).
		WithField(field)
}

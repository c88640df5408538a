// Package csvfile implements ports.RowReader over delimited text files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/jwarwick/hr-explore/domain/batted"
)

// Reader loads raw rows from one or more CSV files. Files only need to
// contain the expected header fields; no naming contract applies. The
// files are read concurrently and their rows concatenated only after every
// read has completed, so no row set crosses a file boundary mid-read.
type Reader struct {
	paths []string
}

// NewReader creates a reader over the given file paths.
func NewReader(paths ...string) *Reader {
	return &Reader{paths: paths}
}

// ReadRows implements ports.RowReader.
func (r *Reader) ReadRows(ctx context.Context) ([]batted.RawRow, error) {
	if len(r.paths) == 0 {
		return nil, fmt.Errorf("no input files configured")
	}

	perFile := make([][]batted.RawRow, len(r.paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range r.paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows, err := readFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			perFile[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []batted.RawRow
	for _, rows := range perFile {
		merged = append(merged, rows...)
	}
	return merged, nil
}

// readFile parses one CSV file into header-keyed rows.
func readFile(path string) ([]batted.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // tolerate ragged rows; normalization reports gaps

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows []batted.RawRow
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+2, err)
		}

		row := make(batted.RawRow, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = fields[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

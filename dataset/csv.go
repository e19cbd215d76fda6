// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadCSV reads a Dataset from comma-separated input. The first
// record names the fields. Each cell is converted with Parse.
// Records shorter than the header leave the trailing fields nil.
func ReadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyDataset
	} else if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	d := &Dataset{Fields: header}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", len(d.Rows)+1, err)
		}
		d.Rows = append(d.Rows, makeRow(header, rec))
	}
	return d, nil
}

// makeRow converts one record of text cells into a Row.
func makeRow(header, cells []string) Row {
	row := make(Row, len(header))
	for i, f := range header {
		if i >= len(cells) {
			break
		}
		if v := Parse(cells[i]); !v.IsNil() {
			row[f] = v
		}
	}
	return row
}

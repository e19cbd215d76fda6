// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a Dataset from one sheet of an Excel workbook. If
// sheet is "", the first sheet is used. The first row of the sheet
// names the fields; fully empty rows are skipped.
func ReadXLSX(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fromRecords(rows)
}

// fromRecords builds a Dataset from a header record followed by data
// records.
func fromRecords(recs [][]string) (*Dataset, error) {
	if len(recs) == 0 {
		return nil, ErrEmptyDataset
	}
	header := make([]string, len(recs[0]))
	for i, h := range recs[0] {
		header[i] = strings.TrimSpace(h)
	}
	d := &Dataset{Fields: header}
	for _, rec := range recs[1:] {
		if isBlank(rec) {
			continue
		}
		d.Rows = append(d.Rows, makeRow(header, rec))
	}
	return d, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

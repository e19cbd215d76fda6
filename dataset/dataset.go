// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset is the tabular input model for charts.
//
// A Dataset is an ordered sequence of Rows. Rows have no implicit key:
// a row is identified by its position in the Dataset. Each Row maps
// field names to Values, which may be numbers, strings, times, or
// nil (absent).
//
// Datasets can be built directly or read from CSV, XLSX, Go
// benchmark result files, or go-gg tables.
package dataset

import "errors"

// ErrEmptyDataset is returned by operations that need at least one
// row.
var ErrEmptyDataset = errors.New("dataset: no rows")

// A Row maps field names to values. Missing fields are nil.
type Row map[string]Value

// Get returns the value of field in r, or nil if r has no such field.
func (r Row) Get(field string) Value {
	return r[field]
}

// Dataset is an ordered sequence of rows.
type Dataset struct {
	// Fields lists the field names in column order. It is used
	// for output and to preserve the order fields were declared
	// in; rows may omit fields.
	Fields []string

	Rows []Row
}

// New returns a Dataset with the given field order and rows.
func New(fields []string, rows ...Row) *Dataset {
	return &Dataset{Fields: fields, Rows: rows}
}

// Len returns the number of rows in d. A nil Dataset has no rows.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// LastIndex returns the index of the last row, or -1 if d is empty.
func (d *Dataset) LastIndex() int {
	return d.Len() - 1
}

// Column returns the values of field for every row of d.
func (d *Dataset) Column(field string) []Value {
	col := make([]Value, d.Len())
	for i := range col {
		col[i] = d.Rows[i].Get(field)
	}
	return col
}

// HasField reports whether field is one of d's declared fields.
func (d *Dataset) HasField(field string) bool {
	if d == nil {
		return false
	}
	for _, f := range d.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Window returns rows start through end of d, inclusive. The bounds
// are clamped to d, so the result is empty only if d is empty.
func (d *Dataset) Window(start, end int) Window {
	n := d.Len()
	if n == 0 {
		return Window{}
	}
	if start < 0 {
		start = 0
	}
	if end > n-1 {
		end = n - 1
	} else if end < 0 {
		end = 0
	}
	if start > end {
		start = end
	}
	return Window{Start: start, Rows: d.Rows[start : end+1]}
}

// All returns a Window over every row of d.
func (d *Dataset) All() Window {
	return d.Window(0, d.Len()-1)
}

// A Window is a contiguous run of rows from a Dataset.
type Window struct {
	// Start is the index in the Dataset of Rows[0].
	Start int

	Rows []Row
}

// Len returns the number of rows in w.
func (w Window) Len() int {
	return len(w.Rows)
}

// Index returns the Dataset index of the i'th row of w.
func (w Window) Index(i int) int {
	return w.Start + i
}

// Column returns the values of field for every row of w.
func (w Window) Column(field string) []Value {
	col := make([]Value, len(w.Rows))
	for i, r := range w.Rows {
		col[i] = r.Get(field)
	}
	return col
}

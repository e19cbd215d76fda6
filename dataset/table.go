// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"reflect"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

var timeType = reflect.TypeOf(time.Time{})

// FromTable converts a go-gg table into a Dataset. Columns of any
// numeric type become numbers, time.Time columns become times, and
// everything else is formatted as strings. NaNs become nil.
func FromTable(t *table.Table) *Dataset {
	d := &Dataset{Fields: t.Columns()}
	d.Rows = make([]Row, t.Len())
	for i := range d.Rows {
		d.Rows[i] = make(Row, len(d.Fields))
	}
	for _, col := range d.Fields {
		vals := columnValues(t.Column(col))
		for i, v := range vals {
			if !v.IsNil() {
				d.Rows[i][col] = v
			}
		}
	}
	return d
}

// columnValues converts one table column to Values.
func columnValues(seq table.Slice) []Value {
	sv := reflect.ValueOf(seq)
	et := sv.Type().Elem()
	out := make([]Value, sv.Len())
	switch {
	case isNumeric(et.Kind()):
		var xs []float64
		slice.Convert(&xs, seq)
		for i, x := range xs {
			out[i] = Num(x)
		}
	case et == timeType:
		for i := range out {
			out[i] = TimeOf(sv.Index(i).Interface().(time.Time))
		}
	case et.Kind() == reflect.String:
		for i := range out {
			out[i] = Str(sv.Index(i).String())
		}
	default:
		for i := range out {
			out[i] = Str(fmt.Sprint(sv.Index(i).Interface()))
		}
	}
	return out
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// Table converts d into a go-gg table. Fields whose non-nil values
// are all numbers become []float64 columns with NaN for nil; all
// other fields become []string columns.
func (d *Dataset) Table() *table.Table {
	b := table.NewBuilder(nil)
	for _, f := range d.Fields {
		col := d.Column(f)
		numeric := true
		for _, v := range col {
			if !v.IsNil() && v.Kind() != Number {
				numeric = false
				break
			}
		}
		if numeric {
			xs := make([]float64, len(col))
			for i, v := range col {
				xs[i], _ = v.Float()
			}
			b.Add(f, xs)
			continue
		}
		ss := make([]string, len(col))
		for i, v := range col {
			ss[i] = v.String()
		}
		b.Add(f, ss)
	}
	return b.Done()
}

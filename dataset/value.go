// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind is the kind of a Value.
type Kind int

const (
	// Nil is an absent or null value. It is the zero Kind.
	Nil Kind = iota
	Number
	String
	Time
)

func (k Kind) String() string {
	switch k {
	case Nil:
		return "nil"
	case Number:
		return "number"
	case String:
		return "string"
	case Time:
		return "time"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single cell of a Row. It is a number, a string, a time,
// or nil. The zero Value is nil.
type Value struct {
	kind Kind
	num  float64
	str  string
	t    time.Time
}

// Num returns a number Value. NaN is not a number for plotting
// purposes, so Num(NaN) is nil.
func Num(x float64) Value {
	if math.IsNaN(x) {
		return Value{}
	}
	return Value{kind: Number, num: x}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: String, str: s}
}

// TimeOf returns a time Value.
func TimeOf(t time.Time) Value {
	return Value{kind: Time, t: t}
}

// Parse converts the text of a cell into a Value. Empty cells and
// the literals "null", "NaN" and "-" are nil. Otherwise the text is
// a number if it parses as a float, a time if it parses as RFC 3339,
// and a string if neither.
func Parse(s string) Value {
	s = strings.TrimSpace(s)
	switch s {
	case "", "null", "NULL", "NaN", "-":
		return Value{}
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return Num(x)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return TimeOf(t)
	}
	return Str(s)
}

// Kind returns the kind of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether v is absent.
func (v Value) IsNil() bool {
	return v.kind == Nil
}

// Float returns the numeric view of v. Times are returned as Unix
// milliseconds. ok is false for nil and string values.
func (v Value) Float() (x float64, ok bool) {
	switch v.kind {
	case Number:
		return v.num, true
	case Time:
		return float64(v.t.UnixMilli()) + float64(v.t.Nanosecond()%1e6)/1e6, true
	}
	return math.NaN(), false
}

// Time returns the time view of v. Numbers are interpreted as Unix
// milliseconds.
func (v Value) Time() (t time.Time, ok bool) {
	switch v.kind {
	case Time:
		return v.t, true
	case Number:
		return FromMillis(v.num), true
	}
	return time.Time{}, false
}

// String returns the text of v. Nil values format as the empty
// string.
func (v Value) String() string {
	switch v.kind {
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case String:
		return v.str
	case Time:
		return v.t.Format(time.RFC3339)
	}
	return ""
}

// Equal reports whether v and w are the same kind and hold the same
// value.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case Number:
		return v.num == w.num
	case String:
		return v.str == w.str
	case Time:
		return v.t.Equal(w.t)
	}
	return true
}

// FromMillis converts Unix milliseconds into a UTC time.
func FromMillis(ms float64) time.Time {
	sec := math.Floor(ms / 1e3)
	nsec := (ms - sec*1e3) * 1e6
	return time.Unix(int64(sec), int64(nsec)).UTC()
}

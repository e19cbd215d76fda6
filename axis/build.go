// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis computes axis domains, ticks and the scale functions
// that map domain values to pixels.
//
// Build resolves an axis Spec against the column of values the axis
// displays. The returned Resolved axis maps values onto its pixel
// Range, which the layout package assigns; until then the range is
// [0, 1].
package axis

import (
	"fmt"
	"math"

	"github.com/aclements/go-chartsync/dataset"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

// Type is the kind of domain of a resolved axis.
type Type int

const (
	Number Type = iota
	Category
	Time
)

func (t Type) String() string {
	switch t {
	case Number:
		return "number"
	case Category:
		return "category"
	case Time:
		return "time"
	}
	return "unknown"
}

// Tick is a labeled position on an axis, in domain units. Category
// tick values are slot indexes.
type Tick struct {
	Value float64
	Label string
}

// Resolved is an axis with a concrete domain, ticks, and pixel
// range.
type Resolved struct {
	Spec Spec
	Type Type

	// Min and Max are the domain of Number and Time axes. For
	// Category axes they are 0 and the last slot index.
	Min, Max float64

	// Categories is the ordered domain of a Category axis.
	Categories []string

	Ticks []Tick

	// Range is the pixel interval the domain maps onto, before
	// Spec.Reversed is applied. Range[0] is the left or bottom end.
	Range [2]float64

	lin   scale.Linear
	log   scale.Log
	isLog bool

	// slots maps a position in the built column to its category
	// slot. index maps a category to its first slot.
	slots []int
	index map[string]int
}

// Build resolves spec against column, the values of spec's data key
// in the rows the axis displays.
//
// Build only fails for malformed explicit configuration, with an
// error wrapping ErrInvalidDomain. Malformed data degrades: nil and
// unusable values are ignored, and an axis with no usable values gets
// the degenerate domain [0, 0].
func Build(spec Spec, column []dataset.Value) (*Resolved, error) {
	r := &Resolved{Spec: spec, Range: [2]float64{0, 1}}
	var err error
	switch s := spec.(type) {
	case *NumberSpec:
		err = r.buildNumber(s, column)
	case *CategorySpec:
		r.buildCategory(s, column)
	case *TimeSpec:
		err = r.buildTime(s, column)
	default:
		return nil, fmt.Errorf("axis: unknown spec type %T", spec)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// finiteBounds returns the extent of the finite values in xs, or ok
// false if there are none.
func finiteBounds(xs []float64) (min, max float64, ok bool) {
	var finite []float64
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return 0, 0, false
	}
	min, max = stats.Bounds(finite)
	return min, max, true
}

func floats(column []dataset.Value) []float64 {
	xs := make([]float64, len(column))
	for i, v := range column {
		xs[i], _ = v.Float()
	}
	return xs
}

func (r *Resolved) buildNumber(s *NumberSpec, column []dataset.Value) error {
	r.Type = Number
	n := tickCount(s.TickCount)
	xs := floats(column)
	if s.Scale == Log {
		return r.buildLog(s, xs, n)
	}

	if s.Domain != nil {
		lo, hi := s.Domain.Min, s.Domain.Max
		if err := checkBounds(s.ID, lo, hi); err != nil {
			return err
		}
		r.Min, r.Max = lo, hi
		r.lin = scale.Linear{Min: lo, Max: hi, Base: 10, Clamp: !s.AllowDataOverflow}
		if lo == hi {
			r.Ticks = []Tick{{Value: lo, Label: formatTick(lo, -1)}}
			return nil
		}
		o := scale.TickOptions{Max: n}
		if s.Integer {
			// Tick level 0 is a step of 1.
			o.MinLevel, o.MaxLevel = 0, 1000
		}
		major, _ := r.lin.Ticks(o)
		for _, x := range major {
			r.Ticks = append(r.Ticks, Tick{Value: x, Label: fmt.Sprintf("%.6g", x)})
		}
		return nil
	}

	min, max, _ := finiteBounds(xs)
	lo, hi, ticks := niceTicks(min, max, n, s.Integer)
	r.Min, r.Max = lo, hi
	r.lin = scale.Linear{Min: lo, Max: hi, Base: 10}
	d := -1
	if len(ticks) > 1 {
		d = stepDecimals(ticks[1] - ticks[0])
	}
	for _, x := range ticks {
		r.Ticks = append(r.Ticks, Tick{Value: x, Label: formatTick(x, d)})
	}
	return nil
}

func checkBounds(id string, lo, hi float64) error {
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return domainError(id, "NaN bound")
	case math.IsInf(lo, 0) || math.IsInf(hi, 0):
		return domainError(id, "infinite bound")
	case lo > hi:
		return domainError(id, "min %g > max %g", lo, hi)
	}
	return nil
}

func (r *Resolved) buildLog(s *NumberSpec, xs []float64, n int) error {
	var lo, hi float64
	if s.Domain != nil {
		lo, hi = s.Domain.Min, s.Domain.Max
		if err := checkBounds(s.ID, lo, hi); err != nil {
			return err
		}
		if lo <= 0 {
			return domainError(s.ID, "log domain must be positive, got min %g", lo)
		}
	} else {
		var pos []float64
		for _, x := range xs {
			if x > 0 {
				pos = append(pos, x)
			}
		}
		var ok bool
		if lo, hi, ok = finiteBounds(pos); !ok {
			lo, hi = 1, 10
		}
	}
	if lo == hi {
		lo, hi = lo/10, hi*10
	}

	ls, err := scale.NewLog(lo, hi, 10)
	if err != nil {
		return domainError(s.ID, "%v", err)
	}
	o := scale.TickOptions{Max: n}
	if s.Domain == nil {
		ls.Nice(o)
	} else {
		ls.Clamp = !s.AllowDataOverflow
	}
	r.log, r.isLog = ls, true
	r.Min, r.Max = ls.Min, ls.Max
	major, _ := ls.Ticks(o)
	for _, x := range major {
		r.Ticks = append(r.Ticks, Tick{Value: x, Label: fmt.Sprintf("%.6g", x)})
	}
	return nil
}

func (r *Resolved) buildCategory(s *CategorySpec, column []dataset.Value) {
	r.Type = Category
	r.index = make(map[string]int)
	switch {
	case s.Categories != nil:
		r.Categories = append([]string(nil), s.Categories...)
		for i, c := range r.Categories {
			if _, ok := r.index[c]; !ok {
				r.index[c] = i
			}
		}
	case s.UniqueCategories:
		r.slots = make([]int, len(column))
		for i, v := range column {
			if v.IsNil() {
				r.slots[i] = -1
				continue
			}
			key := v.String()
			slot, ok := r.index[key]
			if !ok {
				slot = len(r.Categories)
				r.index[key] = slot
				r.Categories = append(r.Categories, key)
			}
			r.slots[i] = slot
		}
	default:
		r.slots = make([]int, len(column))
		r.Categories = make([]string, len(column))
		for i, v := range column {
			key := v.String()
			r.Categories[i] = key
			r.slots[i] = i
			if _, ok := r.index[key]; !ok && !v.IsNil() {
				r.index[key] = i
			}
		}
	}

	r.Min, r.Max = 0, float64(len(r.Categories)-1)
	if len(r.Categories) == 0 {
		r.Max = 0
	}
	for i, c := range r.Categories {
		r.Ticks = append(r.Ticks, Tick{Value: float64(i), Label: c})
	}
}

func (r *Resolved) buildTime(s *TimeSpec, column []dataset.Value) error {
	r.Type = Time
	if s.Domain != nil {
		lo, _ := dataset.TimeOf(s.Domain.Min).Float()
		hi, _ := dataset.TimeOf(s.Domain.Max).Float()
		if lo > hi {
			return domainError(s.ID, "min %v after max %v", s.Domain.Min, s.Domain.Max)
		}
		r.Min, r.Max = lo, hi
		r.lin = scale.Linear{Min: lo, Max: hi, Clamp: true}
	} else {
		r.Min, r.Max, _ = finiteBounds(floats(column))
		r.lin = scale.Linear{Min: r.Min, Max: r.Max}
	}
	r.Ticks = timeTicks(r.Min, r.Max, tickCount(s.TickCount))
	return nil
}

// SetRange sets the pixel range of r. start is the left or bottom
// end of the axis.
func (r *Resolved) SetRange(start, end float64) {
	r.Range = [2]float64{start, end}
}

// ID returns the axis ID.
func (r *Resolved) ID() string {
	return r.Spec.Base().ID
}

// DataKey returns the field the axis displays.
func (r *Resolved) DataKey() string {
	return r.Spec.Base().DataKey
}

// pixelRange returns the range with Reversed applied.
func (r *Resolved) pixelRange() (p0, p1 float64) {
	p0, p1 = r.Range[0], r.Range[1]
	if r.Spec.Base().Reversed {
		p0, p1 = p1, p0
	}
	return
}

// unit maps a domain value to [0, 1] across the domain, or NaN if
// the value is outside the scale's definition (for example, a
// non-positive value on a log axis).
func (r *Resolved) unit(x float64) float64 {
	switch {
	case math.IsNaN(x):
		return math.NaN()
	case r.Type == Category:
		if r.Max == 0 {
			return 0.5
		}
		return x / r.Max
	case r.isLog:
		if x <= 0 {
			return math.NaN()
		}
		return r.log.Map(x)
	case r.Min == r.Max:
		return 0.5
	}
	return r.lin.Map(x)
}

// PixelOf maps a domain value to a pixel. Category axes look the
// value up by its text. ok is false if v is nil or cannot be placed
// on the axis.
func (r *Resolved) PixelOf(v dataset.Value) (px float64, ok bool) {
	if v.IsNil() {
		return math.NaN(), false
	}
	var x float64
	if r.Type == Category {
		slot, found := r.index[v.String()]
		if !found {
			return math.NaN(), false
		}
		x = float64(slot)
	} else {
		if x, ok = v.Float(); !ok {
			return math.NaN(), false
		}
	}
	return r.Pixel(x)
}

// PixelAt maps the value at position pos of the column r was built
// from. It differs from PixelOf only for Category axes whose
// categories were derived from the data, where pos selects the row's
// own slot.
func (r *Resolved) PixelAt(pos int, v dataset.Value) (px float64, ok bool) {
	if r.Type == Category && r.slots != nil {
		if pos < 0 || pos >= len(r.slots) || r.slots[pos] < 0 {
			return math.NaN(), false
		}
		return r.Pixel(float64(r.slots[pos]))
	}
	return r.PixelOf(v)
}

// Pixel maps a numeric domain value (a slot index for Category
// axes) to a pixel.
func (r *Resolved) Pixel(x float64) (px float64, ok bool) {
	u := r.unit(x)
	if math.IsNaN(u) {
		return math.NaN(), false
	}
	p0, p1 := r.pixelRange()
	return p0 + u*(p1-p0), true
}

// Invert maps a pixel back to a domain value. For Category axes it
// returns the nearest slot index. For a degenerate domain it returns
// Min.
func (r *Resolved) Invert(px float64) float64 {
	p0, p1 := r.pixelRange()
	var u float64
	if p1 != p0 {
		u = (px - p0) / (p1 - p0)
	}
	switch {
	case r.Type == Category:
		if len(r.Categories) == 0 {
			return 0
		}
		slot := math.Round(u * r.Max)
		return math.Max(0, math.Min(r.Max, slot))
	case r.isLog:
		return r.log.Unmap(u)
	case r.Min == r.Max:
		return r.Min
	}
	return r.lin.Unmap(u)
}

// TickPixels returns the pixel position of each tick.
func (r *Resolved) TickPixels() []float64 {
	px := make([]float64, len(r.Ticks))
	for i, t := range r.Ticks {
		px[i], _ = r.Pixel(t.Value)
	}
	return px
}

// Clone returns a copy of r that can be given a different range.
func (r *Resolved) Clone() *Resolved {
	c := *r
	c.Categories = append([]string(nil), r.Categories...)
	c.Ticks = append([]Tick(nil), r.Ticks...)
	return &c
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import "time"

// Orientation is the side of the plot rectangle an axis is drawn on.
type Orientation int

const (
	Bottom Orientation = iota
	Left
	Top
	Right
)

func (o Orientation) String() string {
	switch o {
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	}
	return "unknown"
}

// Horizontal reports whether o is Bottom or Top.
func (o Orientation) Horizontal() bool {
	return o == Bottom || o == Top
}

// Opposite returns the orientation on the other side of the plot.
func (o Orientation) Opposite() Orientation {
	switch o {
	case Bottom:
		return Top
	case Top:
		return Bottom
	case Left:
		return Right
	}
	return Left
}

// Padding is the space in pixels kept free at either end of an
// axis's pixel range. Start is the left end of a horizontal axis or
// the bottom end of a vertical axis.
type Padding struct {
	Start, End float64
}

// Common holds the fields shared by every axis type.
type Common struct {
	// ID identifies the axis. Series refer to axes by ID.
	ID string

	// DataKey is the field of each row mapped onto this axis.
	DataKey string

	// Orientation is the side of the plot the axis is drawn on.
	Orientation Orientation

	// Reversed flips the direction of the pixel range.
	Reversed bool

	// Mirror draws the axis on the opposite side of the plot.
	Mirror bool

	// Hide suppresses drawing the axis. Hidden axes reserve no
	// space but still have a pixel range.
	Hide bool

	Padding Padding

	// Size is the space in pixels the axis reserves
	// perpendicular to the plot edge. If 0, it is estimated from
	// the tick labels.
	Size float64

	// Label is the axis title.
	Label string
}

// Spec describes one axis. It is one of *NumberSpec, *CategorySpec,
// or *TimeSpec.
type Spec interface {
	// Base returns the fields common to all axis types.
	Base() Common

	isSpec()
}

// ScaleKind selects the transform of a number axis.
type ScaleKind int

const (
	Linear ScaleKind = iota
	Log
)

// Bounds is an explicit numeric domain.
type Bounds struct {
	Min, Max float64
}

// NumberSpec is a continuous numeric axis.
type NumberSpec struct {
	Common

	// Domain fixes the axis domain. If nil, the domain is
	// computed from the data and rounded to nice ticks.
	Domain *Bounds

	Scale ScaleKind

	// Integer restricts nice ticks and rounded domain bounds to
	// integers. It is the inverse of allowing decimals.
	Integer bool

	// AllowDataOverflow lets values outside an explicit Domain
	// map outside the pixel range. Otherwise they are clamped to
	// the range bounds.
	AllowDataOverflow bool

	// TickCount is the number of ticks wanted. 0 means 5.
	TickCount int
}

func (s *NumberSpec) Base() Common { return s.Common }
func (*NumberSpec) isSpec()        {}

// CategorySpec is a discrete axis that places each category at an
// evenly spaced point.
type CategorySpec struct {
	Common

	// Categories fixes the category list and order. If nil,
	// categories are derived from the data in first-seen order.
	Categories []string

	// UniqueCategories collapses repeated values into the slot
	// of their first occurrence. Otherwise every row gets its own
	// slot, even if its value repeats.
	UniqueCategories bool
}

func (s *CategorySpec) Base() Common { return s.Common }
func (*CategorySpec) isSpec()        {}

// TimeBounds is an explicit time domain.
type TimeBounds struct {
	Min, Max time.Time
}

// TimeSpec is a continuous time axis. Numeric values on a time axis
// are Unix milliseconds.
type TimeSpec struct {
	Common

	// Domain fixes the axis domain. If nil, it is the data extent.
	Domain *TimeBounds

	// TickCount is the maximum number of ticks wanted. 0 means 5.
	TickCount int
}

func (s *TimeSpec) Base() Common { return s.Common }
func (*TimeSpec) isSpec()        {}

// IsAuto reports whether s computes its domain from the data. Auto
// axes are rebuilt when the visible window changes.
func IsAuto(s Spec) bool {
	switch s := s.(type) {
	case *NumberSpec:
		return s.Domain == nil
	case *CategorySpec:
		return s.Categories == nil
	case *TimeSpec:
		return s.Domain == nil
	}
	return false
}

func tickCount(n int) int {
	if n <= 0 {
		return 5
	}
	if n < 2 {
		return 2
	}
	return n
}

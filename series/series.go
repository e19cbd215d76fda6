// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package series turns a window of rows and a pair of axes into
// pixel-space points and curve segments.
package series

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-chartsync/dataset"
)

// Mapper maps the value at position pos of a window column to a
// pixel. *axis.Resolved implements Mapper.
type Mapper interface {
	PixelAt(pos int, v dataset.Value) (px float64, ok bool)
}

// Interpolation selects how consecutive points are joined.
type Interpolation int

const (
	// Linear joins points with straight lines.
	Linear Interpolation = iota

	// Monotone joins points with cubic curves that preserve the
	// monotonicity of the data in y (assuming x increases). The
	// curve never overshoots either endpoint of a segment.
	Monotone

	// Step changes y halfway between points.
	Step

	// StepBefore changes y at the start of each interval.
	StepBefore

	// StepAfter changes y at the end of each interval.
	StepAfter
)

var interpNames = []string{"linear", "monotone", "step", "stepBefore", "stepAfter"}

func (i Interpolation) String() string {
	if i >= 0 && int(i) < len(interpNames) {
		return interpNames[i]
	}
	return fmt.Sprintf("Interpolation(%d)", int(i))
}

// ParseInterpolation returns the Interpolation named s. Names are
// matched case-insensitively and "monotoneX" is accepted for
// Monotone.
func ParseInterpolation(s string) (Interpolation, error) {
	if strings.EqualFold(s, "monotoneX") {
		return Monotone, nil
	}
	for i, name := range interpNames {
		if strings.EqualFold(s, name) {
			return Interpolation(i), nil
		}
	}
	if s == "" {
		return Linear, nil
	}
	return Linear, fmt.Errorf("unknown interpolation %q", s)
}

// Point is one row of a series in pixel space.
type Point struct {
	X, Y float64

	// Value is the row's y value.
	Value dataset.Value

	// Row is the index of the row in the dataset.
	Row int

	// IsNil marks a gap. Y is NaN for nil points, but X is kept
	// when the x value can be mapped.
	IsNil bool
}

// Options configure Generate.
type Options struct {
	XKey, YKey    string
	Interpolation Interpolation

	// ConnectNulls joins the points on either side of a gap.
	ConnectNulls bool
}

// Geometry is the drawable form of a series.
type Geometry struct {
	// Points has one Point per row of the window, in row order.
	Points []Point

	// Segments are the drawn curves.
	Segments []Segment
}

// Markers returns the non-nil points, which are drawn as dots.
func (g *Geometry) Markers() []Point {
	var ms []Point
	for _, p := range g.Points {
		if !p.IsNil {
			ms = append(ms, p)
		}
	}
	return ms
}

// Generate computes the points and segments of the rows in w. x and
// y must map positions in w's columns.
//
// Without ConnectNulls, each maximal run of non-nil points is a
// segment. With ConnectNulls, all non-nil points form one segment.
// If w has at most one non-nil point, there are no segments. An empty
// window gives empty geometry.
func Generate(w dataset.Window, x, y Mapper, o Options) *Geometry {
	g := &Geometry{Points: make([]Point, w.Len())}
	xs, ys := w.Column(o.XKey), w.Column(o.YKey)
	valid := 0
	for i := range g.Points {
		p := Point{Value: ys[i], Row: w.Index(i), Y: math.NaN()}
		var okx, oky bool
		p.X, okx = x.PixelAt(i, xs[i])
		if okx {
			p.Y, oky = y.PixelAt(i, ys[i])
		}
		p.IsNil = !okx || !oky
		if p.IsNil {
			p.Y = math.NaN()
		} else {
			valid++
		}
		g.Points[i] = p
	}
	if valid <= 1 {
		return g
	}

	var run []Point
	flush := func() {
		if len(run) > 0 {
			g.Segments = append(g.Segments, newSegment(run, o.Interpolation))
		}
		run = nil
	}
	for _, p := range g.Points {
		switch {
		case !p.IsNil:
			run = append(run, p)
		case !o.ConnectNulls:
			flush()
		}
	}
	flush()
	return g
}

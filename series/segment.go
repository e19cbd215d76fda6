// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"math"
	"strconv"
)

// Op is a path drawing operation.
type Op byte

const (
	MoveTo  Op = 'M'
	LineTo  Op = 'L'
	CurveTo Op = 'C'
)

// Command is one path operation. (X, Y) is the end point. CurveTo
// commands are cubic Béziers with control points (X1, Y1) and (X2, Y2).
type Command struct {
	Op             Op
	X1, Y1, X2, Y2 float64
	X, Y           float64
}

// Segment is one continuous curve through a run of points.
type Segment struct {
	Points   []Point
	Commands []Command
}

func newSegment(pts []Point, interp Interpolation) Segment {
	s := Segment{Points: pts}
	s.Commands = append(s.Commands, Command{Op: MoveTo, X: pts[0].X, Y: pts[0].Y})
	switch interp {
	case Monotone:
		s.monotone()
	case Step, StepBefore, StepAfter:
		s.steps(interp)
	default:
		for _, p := range pts[1:] {
			s.lineTo(p.X, p.Y)
		}
	}
	return s
}

func (s *Segment) lineTo(x, y float64) {
	s.Commands = append(s.Commands, Command{Op: LineTo, X: x, Y: y})
}

func (s *Segment) steps(interp Interpolation) {
	for i := 1; i < len(s.Points); i++ {
		p0, p1 := s.Points[i-1], s.Points[i]
		switch interp {
		case Step:
			mid := (p0.X + p1.X) / 2
			s.lineTo(mid, p0.Y)
			s.lineTo(mid, p1.Y)
		case StepBefore:
			s.lineTo(p0.X, p1.Y)
		case StepAfter:
			s.lineTo(p1.X, p0.Y)
		}
		s.lineTo(p1.X, p1.Y)
	}
}

// monotone fits a monotone cubic through the points. Interior
// tangents are limited so that each Bézier's control points stay
// within the y extent of its segment, so no segment overshoots.
// End tangents use the one-sided three-point estimate.
func (s *Segment) monotone() {
	pts := s.Points
	n := len(pts)
	if n == 2 {
		s.lineTo(pts[1].X, pts[1].Y)
		return
	}
	t := make([]float64, n)
	for i := 1; i < n-1; i++ {
		t[i] = slope3(pts[i-1], pts[i], pts[i+1])
	}
	t[0] = slope2(pts[0], pts[1], t[1])
	t[n-1] = slope2(pts[n-2], pts[n-1], t[n-2])
	for i := 0; i < n-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		dx := (p1.X - p0.X) / 3
		s.Commands = append(s.Commands, Command{
			Op: CurveTo,
			X1: p0.X + dx, Y1: p0.Y + dx*t[i],
			X2: p1.X - dx, Y2: p1.Y - dx*t[i+1],
			X: p1.X, Y: p1.Y,
		})
	}
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// slope3 returns the tangent at p1. It is zero at local extrema and
// at most twice the smaller adjacent secant slope.
func slope3(p0, p1, p2 Point) float64 {
	h0, h1 := p1.X-p0.X, p2.X-p1.X
	s0, s1 := (p1.Y-p0.Y)/h0, (p2.Y-p1.Y)/h1
	p := (s0*h1 + s1*h0) / (h0 + h1)
	m := (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
	if math.IsNaN(m) {
		return 0
	}
	return m
}

// slope2 returns the end tangent of the segment p0-p1 given the
// tangent t at the other end.
func slope2(p0, p1 Point, t float64) float64 {
	h := p1.X - p0.X
	if h == 0 {
		return t
	}
	return (3*(p1.Y-p0.Y)/h - t) / 2
}

// Path returns s as SVG path data.
func (s *Segment) Path() string {
	var path []byte
	pt := func(x, y float64) {
		path = append(path, ' ')
		path = strconv.AppendFloat(path, x, 'g', 6, 64)
		path = append(path, ' ')
		path = strconv.AppendFloat(path, y, 'g', 6, 64)
	}
	for _, c := range s.Commands {
		path = append(path, byte(c.Op))
		if c.Op == CurveTo {
			pt(c.X1, c.Y1)
			pt(c.X2, c.Y2)
		}
		pt(c.X, c.Y)
	}
	return string(path)
}

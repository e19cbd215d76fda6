// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout assigns resolved axes their pixel ranges within a
// chart and reserves margin space for axis bands.
//
// Coordinates follow SVG conventions: x increases to the right and y
// increases downward, so a vertical axis's range runs from the
// bottom of the plot (larger y) to the top.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aclements/go-chartsync/axis"
	gglayout "github.com/aclements/go-gg/gg/layout"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ErrDuplicateAxis is returned when two axes share an ID.
var ErrDuplicateAxis = errors.New("duplicate axis id")

// Dimensions used to estimate the space an axis needs.
const (
	TickLength = 6
	LabelGap   = 3
)

// Face is the font used to measure tick labels.
var Face = basicfont.Face7x13

// Margin is space around the plot reserved for neither axes nor
// data.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Rect is the rectangle a chart is laid out in.
type Rect struct {
	X, Y, Width, Height float64
	Margin              Margin
}

// Box is an axis-aligned rectangle.
type Box struct {
	X, Y, W, H float64
}

func (b Box) Left() float64   { return b.X }
func (b Box) Right() float64  { return b.X + b.W }
func (b Box) Top() float64    { return b.Y }
func (b Box) Bottom() float64 { return b.Y + b.H }

// Band is the strip outside the plot where an axis is drawn.
type Band struct {
	gglayout.Leaf

	Axis *axis.Resolved

	// Side is the edge of the plot the band is attached to. It is
	// the opposite of the axis orientation for mirrored axes.
	Side axis.Orientation

	// Size is the band's extent perpendicular to Side.
	Size float64
}

// SizeHint returns the band's fixed size perpendicular to its side.
// It stretches along the side.
func (b *Band) SizeHint() (w, h float64, flexw, flexh bool) {
	if b.Side.Horizontal() {
		return 0, b.Size, true, false
	}
	return b.Size, 0, false, true
}

// Box returns the band's layout.
func (b *Band) Box() Box {
	x, y, w, h := b.Layout()
	return Box{x, y, w, h}
}

// Result is a resolved chart layout.
type Result struct {
	// Plot is the data area after axis bands are reserved.
	Plot Box

	// Bands are the drawn axes in declaration order. Hidden axes
	// have no band.
	Bands []*Band

	// Ranges maps axis ID to the pixel range assigned with
	// SetRange.
	Ranges map[string][2]float64
}

// Resolve lays out axes in r and sets each axis's pixel range.
//
// Axes on the same side stack outward from the plot in declaration
// order, each reserving its Size (or an estimate from its tick labels
// if Size is 0). A mirrored axis is drawn on the opposite side. It
// reserves space only if nothing has reserved that side yet.
// Otherwise it is drawn in the innermost position. Hidden axes reserve
// no space but still get a range.
//
// Resolve is deterministic: the same axes and r always give the same
// result.
func Resolve(axes []*axis.Resolved, r Rect) (*Result, error) {
	seen := make(map[string]bool)
	for _, a := range axes {
		if seen[a.ID()] {
			return nil, fmt.Errorf("%w %q", ErrDuplicateAxis, a.ID())
		}
		seen[a.ID()] = true
	}

	var reserved [4]float64
	var bands []*Band
	offsets := make(map[*Band]float64)
	place := func(a *axis.Resolved, side axis.Orientation, mirrored bool) {
		b := &Band{Axis: a, Side: side, Size: Size(a)}
		if mirrored && reserved[side] > 0 {
			offsets[b] = 0
		} else {
			offsets[b] = reserved[side]
			reserved[side] += b.Size
		}
		bands = append(bands, b)
	}
	for _, a := range axes {
		if c := a.Spec.Base(); !c.Hide && !c.Mirror {
			place(a, c.Orientation, false)
		}
	}
	for _, a := range axes {
		if c := a.Spec.Base(); !c.Hide && c.Mirror {
			place(a, c.Orientation.Opposite(), true)
		}
	}

	left := r.X + r.Margin.Left + reserved[axis.Left]
	right := r.X + r.Width - r.Margin.Right - reserved[axis.Right]
	top := r.Y + r.Margin.Top + reserved[axis.Top]
	bottom := r.Y + r.Height - r.Margin.Bottom - reserved[axis.Bottom]
	if right < left {
		left, right = (left+right)/2, (left+right)/2
	}
	if bottom < top {
		top, bottom = (top+bottom)/2, (top+bottom)/2
	}
	res := &Result{
		Plot:   Box{left, top, right - left, bottom - top},
		Ranges: make(map[string][2]float64),
	}

	for _, b := range bands {
		off := offsets[b]
		switch b.Side {
		case axis.Bottom:
			b.SetLayout(left, bottom+off, right-left, b.Size)
		case axis.Top:
			b.SetLayout(left, top-off-b.Size, right-left, b.Size)
		case axis.Left:
			b.SetLayout(left-off-b.Size, top, b.Size, bottom-top)
		case axis.Right:
			b.SetLayout(right+off, top, b.Size, bottom-top)
		}
	}
	// Restore declaration order.
	for _, a := range axes {
		for _, b := range bands {
			if b.Axis == a {
				res.Bands = append(res.Bands, b)
			}
		}
	}

	for _, a := range axes {
		c := a.Spec.Base()
		if c.Orientation.Horizontal() {
			a.SetRange(pad(left, right, c.Padding))
		} else {
			end, start := pad(top, bottom, axis.Padding{Start: c.Padding.End, End: c.Padding.Start})
			a.SetRange(start, end)
		}
		res.Ranges[a.ID()] = a.Range
	}
	return res, nil
}

// pad insets [lo, hi] by p. The result stays inside [lo, hi]. If the
// padding is wider than the span, both ends meet at the point that
// splits the span in proportion to p.
func pad(lo, hi float64, p axis.Padding) (start, end float64) {
	start, end = lo+p.Start, hi-p.End
	if start <= end {
		return start, end
	}
	mid := (lo + hi) / 2
	if total := p.Start + p.End; total > 0 {
		mid = lo + (hi-lo)*p.Start/total
	}
	return mid, mid
}

// Size returns the space a's band reserves perpendicular to its
// side: its configured Size, or an estimate from its tick labels and
// title.
func Size(a *axis.Resolved) float64 {
	c := a.Spec.Base()
	if c.Size > 0 {
		return c.Size
	}
	lineHeight := float64(Face.Height)
	size := float64(TickLength + LabelGap)
	if c.Orientation.Horizontal() {
		size += lineHeight
	} else {
		var widest float64
		for _, t := range a.Ticks {
			if w := TextWidth(t.Label); w > widest {
				widest = w
			}
		}
		size += widest
	}
	if strings.TrimSpace(c.Label) != "" {
		size += LabelGap + lineHeight
	}
	return size
}

// TextWidth returns the width in pixels of s in Face.
func TextWidth(s string) float64 {
	return float64(font.MeasureString(Face, s).Ceil())
}

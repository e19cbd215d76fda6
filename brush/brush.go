// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package brush implements the drag state machine that selects a
// window of dataset rows.
//
// A Controller spans a pixel extent with one slot per row. Dragging
// the start or end handle moves one end of the window; dragging the
// selected area slides the whole window. The window is committed when
// the pointer is released.
package brush

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

// Handle is the part of the brush being dragged.
type Handle int

const (
	Start Handle = iota
	End
	Slide
)

func (h Handle) String() string {
	switch h {
	case Start:
		return "start"
	case End:
		return "end"
	case Slide:
		return "slide"
	}
	return "unknown"
}

// State is the drag state of a Controller.
type State int

const (
	Idle State = iota
	Dragging
)

// Window is an inclusive range of row indexes.
type Window struct {
	Start, End int
}

// Len returns the number of rows in w.
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Controller tracks the brush window over a dataset of n rows.
//
// For a non-empty dataset the window always satisfies
// 0 <= Start <= End <= n-1.
type Controller struct {
	// OnChange, if non-nil, is called with each committed window
	// that differs from the previous committed window.
	OnChange func(Window)

	n      int
	x0, x1 float64
	index  scale.Linear

	state  State
	handle Handle

	live, committed Window

	// Slide origin.
	downIndex int
	downWin   Window
}

// New returns an idle Controller over n rows with the full window
// selected, spanning pixels x0 to x1.
func New(n int, x0, x1 float64) *Controller {
	c := &Controller{x0: x0, x1: x1}
	c.Reset(n)
	return c
}

// Reset sets the number of rows to n, selects every row, and cancels
// any drag. It does not call OnChange.
func (c *Controller) Reset(n int) {
	if n < 0 {
		n = 0
	}
	c.n = n
	c.state = Idle
	c.index = scale.Linear{Min: 0, Max: math.Max(0, float64(n-1))}
	c.live = Window{0, n - 1}
	if n == 0 {
		c.live = Window{0, 0}
	}
	c.committed = c.live
}

// SetExtent sets the pixel span of the brush.
func (c *Controller) SetExtent(x0, x1 float64) {
	c.x0, c.x1 = x0, x1
}

// Len returns the number of rows the brush spans.
func (c *Controller) Len() int {
	return c.n
}

// Window returns the committed window.
func (c *Controller) Window() Window {
	return c.committed
}

// Live returns the window including any drag in progress.
func (c *Controller) Live() Window {
	return c.live
}

// State returns the drag state and, if dragging, the dragged handle.
func (c *Controller) State() (State, Handle) {
	return c.state, c.handle
}

// Index returns the row index nearest pixel px, clamped to the
// dataset.
func (c *Controller) Index(px float64) int {
	if c.n <= 1 || c.x0 == c.x1 {
		return 0
	}
	u := (px - c.x0) / (c.x1 - c.x0)
	u = math.Max(0, math.Min(1, u))
	i := int(math.Round(c.index.Unmap(u)))
	if i > c.n-1 {
		i = c.n - 1
	}
	return i
}

// Pixels returns the pixel position of every row slot.
func (c *Controller) Pixels() []float64 {
	switch c.n {
	case 0:
		return nil
	case 1:
		return []float64{(c.x0 + c.x1) / 2}
	}
	return vec.Linspace(c.x0, c.x1, c.n)
}

// HandlePixels returns the pixel positions of the live window's
// handles.
func (c *Controller) HandlePixels() (start, end float64) {
	px := c.Pixels()
	if px == nil {
		return c.x0, c.x1
	}
	return px[c.live.Start], px[c.live.End]
}

// Down starts dragging h with the pointer at px. It is ignored for an
// empty dataset.
func (c *Controller) Down(h Handle, px float64) {
	if c.n == 0 {
		return
	}
	c.state, c.handle = Dragging, h
	c.downIndex, c.downWin = c.Index(px), c.live
	c.Move(px)
}

// Move updates the live window for the pointer at px. Handles are
// clamped to the dataset and never cross.
func (c *Controller) Move(px float64) {
	if c.state != Dragging {
		return
	}
	i := c.Index(px)
	switch c.handle {
	case Start:
		if i > c.live.End {
			i = c.live.End
		}
		c.live.Start = i
	case End:
		if i < c.live.Start {
			i = c.live.Start
		}
		c.live.End = i
	case Slide:
		width := c.downWin.End - c.downWin.Start
		start := c.downWin.Start + i - c.downIndex
		start = clamp(start, 0, c.n-1-width)
		c.live = Window{start, start + width}
	}
}

// Up ends the drag and commits the live window. If valid, the
// pointer position px is applied first. Otherwise the pointer was
// released outside the brush and the last valid position is
// committed.
func (c *Controller) Up(px float64, valid bool) {
	if c.state != Dragging {
		return
	}
	if valid {
		c.Move(px)
	}
	c.state = Idle
	c.commit()
}

// SetWindow commits w, clamped to the dataset. Reversed bounds are
// swapped. Any drag in progress is canceled.
func (c *Controller) SetWindow(w Window) {
	if c.n == 0 {
		return
	}
	if w.Start > w.End {
		w.Start, w.End = w.End, w.Start
	}
	c.state = Idle
	c.live = Window{clamp(w.Start, 0, c.n-1), clamp(w.End, 0, c.n-1)}
	c.commit()
}

func (c *Controller) commit() {
	if c.live == c.committed {
		return
	}
	c.committed = c.live
	if c.OnChange != nil {
		c.OnChange(c.committed)
	}
}

func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

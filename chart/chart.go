// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart ties axes, layout, series geometry, the brush, and
// cross-chart sync together into a chart instance.
//
// A Chart recomputes synchronously whenever its data, size, or brush
// window changes: axes are built from the visible window, laid out,
// and then series geometry is generated. Axes with a fixed domain are
// not rebuilt when only the window changes.
//
// Charts in a sync group share both the active row and the committed
// brush window.
package chart

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/aclements/go-chartsync/axis"
	"github.com/aclements/go-chartsync/axis/layout"
	"github.com/aclements/go-chartsync/brush"
	"github.com/aclements/go-chartsync/chartsync"
	"github.com/aclements/go-chartsync/dataset"
	"github.com/aclements/go-chartsync/series"
	"github.com/aclements/go-gg/generic/slice"
)

// Warning is the logger for non-fatal chart problems.
var Warning = log.New(os.Stderr, "[chart] ", log.Lshortfile)

// ErrAxisNotFound is wrapped by errors for series that refer to a
// missing axis.
var ErrAxisNotFound = errors.New("axis not found")

// AxisRefError is a series reference to an axis that does not exist.
type AxisRefError struct {
	Series string
	AxisID string
}

func (e *AxisRefError) Error() string {
	return fmt.Sprintf("series %q: %v: %q", e.Series, ErrAxisNotFound, e.AxisID)
}

func (e *AxisRefError) Unwrap() error {
	return ErrAxisNotFound
}

// SeriesSpec describes one line series.
type SeriesSpec struct {
	Name string

	// XAxis and YAxis are axis IDs. If empty, the first
	// horizontal or vertical axis is used.
	XAxis, YAxis string

	// DataKey is the field plotted in y. The x field is the x
	// axis's DataKey.
	DataKey string

	Interpolation series.Interpolation
	ConnectNulls  bool

	// HideDots suppresses point markers.
	HideDots bool

	// Stroke is the line color.
	Stroke string
}

// BrushConfig enables a brush strip below the plot.
type BrushConfig struct {
	Height float64

	// Start and End are the initial window. End 0 means the last
	// row.
	Start, End int
}

// Config describes a chart.
type Config struct {
	ID string

	// SyncID, if non-empty, joins the chart to a sync group.
	SyncID     string
	SyncMethod chartsync.Method

	// SyncKey is the field compared by value sync. If empty, it
	// is the DataKey of the first series's x axis.
	SyncKey string

	// SyncResolver, if non-nil, overrides SyncMethod.
	SyncResolver chartsync.Resolver

	Width, Height float64
	Margin        layout.Margin

	Axes   []axis.Spec
	Series []SeriesSpec

	Brush *BrushConfig
}

// Plot is the geometry of one series.
type Plot struct {
	Spec     SeriesSpec
	X, Y     *axis.Resolved
	Geometry *series.Geometry
}

// Chart is a chart instance.
type Chart struct {
	cfg  Config
	data *dataset.Dataset

	reg   *chartsync.Registry
	unsub func()

	cache axis.Cache
	brush *brush.Controller

	win    dataset.Window
	axes   []*axis.Resolved
	byID   map[string]*axis.Resolved
	layout *layout.Result
	plots  []Plot
	active int

	// syncing is set while applying a window from the sync group.
	syncing bool

	// OnUpdate, if non-nil, is called after each recompute and
	// each change to the active row.
	OnUpdate func(*Chart)
}

// New validates cfg and returns a chart showing data. If cfg.SyncID
// is set, the chart subscribes to reg, which must then be non-nil.
// Close unsubscribes it.
func New(cfg Config, data *dataset.Dataset, reg *chartsync.Registry) (*Chart, error) {
	if cfg.ID == "" {
		return nil, errors.New("chart: missing id")
	}
	if cfg.SyncID != "" && reg == nil {
		return nil, fmt.Errorf("chart %q: sync id %q without a registry", cfg.ID, cfg.SyncID)
	}
	ids := make(map[string]axis.Spec)
	for _, s := range cfg.Axes {
		ids[s.Base().ID] = s
	}
	cfg.Series = append([]SeriesSpec(nil), cfg.Series...)
	for i := range cfg.Series {
		s := &cfg.Series[i]
		if s.Name == "" {
			s.Name = s.DataKey
		}
		var err error
		if s.XAxis, err = findAxis(cfg.Axes, ids, s.Name, s.XAxis, true); err != nil {
			return nil, err
		}
		if s.YAxis, err = findAxis(cfg.Axes, ids, s.Name, s.YAxis, false); err != nil {
			return nil, err
		}
	}
	if cfg.SyncKey == "" && len(cfg.Series) > 0 {
		cfg.SyncKey = ids[cfg.Series[0].XAxis].Base().DataKey
	}

	c := &Chart{cfg: cfg, data: data, reg: reg, active: -1}
	if cfg.Brush != nil {
		c.brush = brush.New(data.Len(), 0, 0)
		if b := cfg.Brush; b.Start != 0 || b.End != 0 {
			end := b.End
			if end == 0 {
				end = data.LastIndex()
			}
			c.brush.SetWindow(brush.Window{Start: b.Start, End: end})
		}
		c.brush.OnChange = func(w brush.Window) {
			c.update()
			if !c.syncing && c.reg != nil && c.cfg.SyncID != "" {
				c.reg.PublishWindow(c.cfg.SyncID, c.cfg.ID, chartsync.Window{Start: w.Start, End: w.End})
			}
		}
	}
	if err := c.recompute(); err != nil {
		return nil, err
	}
	if cfg.SyncID != "" {
		c.unsub = reg.Subscribe(cfg.SyncID, chartsync.Member{
			ChartID:  cfg.ID,
			Data:     data,
			Key:      cfg.SyncKey,
			Method:   cfg.SyncMethod,
			Resolver: cfg.SyncResolver,
			Listener: chartsync.ListenerFunc(c.activate),
			Window:   chartsync.WindowListenerFunc(c.syncWindow),
		})
	}
	return c, nil
}

func findAxis(specs []axis.Spec, ids map[string]axis.Spec, series, id string, horizontal bool) (string, error) {
	if id != "" {
		if _, ok := ids[id]; !ok {
			return "", &AxisRefError{series, id}
		}
		return id, nil
	}
	for _, s := range specs {
		if s.Base().Orientation.Horizontal() == horizontal {
			return s.Base().ID, nil
		}
	}
	return "", &AxisRefError{series, ""}
}

// Close removes c from its sync group.
func (c *Chart) Close() {
	if c.unsub != nil {
		c.unsub()
		c.unsub = nil
	}
}

// ID returns the chart ID.
func (c *Chart) ID() string { return c.cfg.ID }

// Config returns the validated configuration of c.
func (c *Chart) Config() Config { return c.cfg }

// Data returns the chart's dataset.
func (c *Chart) Data() *dataset.Dataset { return c.data }

// SetData replaces the dataset, resets the brush to the full window,
// and recomputes.
func (c *Chart) SetData(data *dataset.Dataset) error {
	c.data = data
	c.active = -1
	if c.brush != nil {
		c.brush.Reset(data.Len())
	}
	if c.reg != nil && c.cfg.SyncID != "" {
		c.reg.Update(c.cfg.SyncID, c.cfg.ID, data)
	}
	return c.recompute()
}

// Resize changes the chart size and recomputes.
func (c *Chart) Resize(width, height float64) error {
	c.cfg.Width, c.cfg.Height = width, height
	return c.recompute()
}

func (c *Chart) update() {
	if err := c.recompute(); err != nil {
		Warning.Printf("chart %q: %v", c.cfg.ID, err)
	}
}

// recompute rebuilds axes, layout and geometry, in that order.
func (c *Chart) recompute() error {
	if c.brush != nil {
		w := c.brush.Window()
		c.win = c.data.Window(w.Start, w.End)
	} else {
		c.win = c.data.All()
	}

	c.axes = nil
	c.byID = make(map[string]*axis.Resolved)
	for _, spec := range c.cfg.Axes {
		var col []dataset.Value
		if axis.IsAuto(spec) {
			col = c.column(spec)
		}
		r, err := c.cache.Build(spec, col)
		if err != nil {
			return fmt.Errorf("chart %q: %w", c.cfg.ID, err)
		}
		c.axes = append(c.axes, r)
		c.byID[r.ID()] = r
	}

	rect := layout.Rect{Width: c.cfg.Width, Height: c.cfg.Height - c.brushHeight(), Margin: c.cfg.Margin}
	res, err := layout.Resolve(c.axes, rect)
	if err != nil {
		return fmt.Errorf("chart %q: %w", c.cfg.ID, err)
	}
	c.layout = res
	if c.brush != nil {
		c.brush.SetExtent(res.Plot.Left(), res.Plot.Right())
	}

	c.plots = nil
	shared := make(map[string]int)
	for _, s := range c.cfg.Series {
		x, y := c.byID[s.XAxis], c.byID[s.YAxis]
		var ym series.Mapper = y
		if y.Type == axis.Category && y.DataKey() == "" {
			// The axis was built from every series's column in
			// turn. See column.
			ym = offsetMapper{y, shared[s.YAxis] * c.win.Len()}
			shared[s.YAxis]++
		}
		g := series.Generate(c.win, x, ym, series.Options{
			XKey:          x.DataKey(),
			YKey:          s.DataKey,
			Interpolation: s.Interpolation,
			ConnectNulls:  s.ConnectNulls,
		})
		c.plots = append(c.plots, Plot{s, x, y, g})
	}
	if c.OnUpdate != nil {
		c.OnUpdate(c)
	}
	return nil
}

// column returns the window values that determine spec's domain: its
// own DataKey, or else the y values of every series drawn against it.
func (c *Chart) column(spec axis.Spec) []dataset.Value {
	com := spec.Base()
	if com.DataKey != "" {
		return c.win.Column(com.DataKey)
	}
	var col []dataset.Value
	for _, s := range c.cfg.Series {
		if s.YAxis == com.ID {
			col = append(col, c.win.Column(s.DataKey)...)
		}
	}
	return col
}

// offsetMapper maps position pos of a series column to position
// pos+off of the concatenated column its axis was built from.
type offsetMapper struct {
	m   series.Mapper
	off int
}

func (o offsetMapper) PixelAt(pos int, v dataset.Value) (float64, bool) {
	return o.m.PixelAt(pos+o.off, v)
}

func (c *Chart) brushHeight() float64 {
	if c.brush == nil {
		return 0
	}
	return c.cfg.Brush.Height
}

// Axes returns the resolved axes in declaration order.
func (c *Chart) Axes() []*axis.Resolved { return c.axes }

// Axis returns the resolved axis id, or nil.
func (c *Chart) Axis(id string) *axis.Resolved { return c.byID[id] }

// Layout returns the current layout.
func (c *Chart) Layout() *layout.Result { return c.layout }

// Plots returns the geometry of each series.
func (c *Chart) Plots() []Plot { return c.plots }

// Window returns the visible rows.
func (c *Chart) Window() dataset.Window { return c.win }

// Brush returns the brush controller, or nil if the chart has no
// brush.
func (c *Chart) Brush() *brush.Controller { return c.brush }

// BrushBox returns the area of the brush strip.
func (c *Chart) BrushBox() (layout.Box, bool) {
	if c.brush == nil {
		return layout.Box{}, false
	}
	p := c.layout.Plot
	return layout.Box{X: p.X, Y: c.cfg.Height - c.cfg.Brush.Height, W: p.W, H: c.cfg.Brush.Height}, true
}

// Active returns the active row index in the dataset, or -1.
func (c *Chart) Active() int { return c.active }

func (c *Chart) setActive(i int) {
	c.active = i
	if c.OnUpdate != nil {
		c.OnUpdate(c)
	}
}

func (c *Chart) activate(a chartsync.Activation) {
	c.setActive(a.Index)
}

// syncWindow applies a window published by another chart in the
// group. Charts without a brush ignore it.
func (c *Chart) syncWindow(source string, w chartsync.Window) {
	if c.brush == nil {
		return
	}
	c.syncing = true
	defer func() { c.syncing = false }()
	c.brush.SetWindow(brush.Window{Start: w.Start, End: w.End})
}

// Hover activates the visible row nearest to pixel x and publishes
// it to the sync group. A pointer outside the plot area is treated as
// Leave. It returns the active row, or -1.
func (c *Chart) Hover(px, py float64) int {
	p := c.layout.Plot
	if px < p.Left() || px > p.Right() || py < p.Top() || py > p.Bottom() || c.win.Len() == 0 || len(c.plots) == 0 {
		c.Leave()
		return -1
	}
	x := c.plots[0].X
	xs := c.win.Column(x.DataKey())
	dist := make([]float64, len(xs))
	for i, v := range xs {
		dist[i] = math.Inf(1)
		if xp, ok := x.PixelAt(i, v); ok {
			dist[i] = math.Abs(xp - px)
		}
	}
	i := slice.ArgMin(dist)
	if math.IsInf(dist[i], 1) {
		c.Leave()
		return -1
	}
	row := c.win.Index(i)
	c.setActive(row)
	c.publish(chartsync.At(c.cfg.ID, row))
	return row
}

// Leave clears the active row here and in the sync group.
func (c *Chart) Leave() {
	c.setActive(-1)
	c.publish(chartsync.None(c.cfg.ID))
}

func (c *Chart) publish(sel chartsync.Selection) {
	if c.reg != nil && c.cfg.SyncID != "" {
		c.reg.Publish(c.cfg.SyncID, sel)
	}
}

// BrushDown starts dragging handle h of the brush at pixel px.
func (c *Chart) BrushDown(h brush.Handle, px float64) {
	if c.brush != nil {
		c.brush.Down(h, px)
	}
}

// BrushMove moves the dragged brush handle to pixel px.
func (c *Chart) BrushMove(px float64) {
	if c.brush != nil {
		c.brush.Move(px)
	}
}

// BrushUp releases the brush. A committed window change recomputes
// the chart and is published to the sync group.
func (c *Chart) BrushUp(px float64, valid bool) {
	if c.brush != nil {
		c.brush.Up(px, valid)
	}
}

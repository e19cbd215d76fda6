// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws charts as SVG.
package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"math"
	"os"

	"github.com/aclements/go-chartsync/axis"
	"github.com/aclements/go-chartsync/axis/layout"
	"github.com/aclements/go-chartsync/chart"
	"github.com/aclements/go-chartsync/series"
	"github.com/ajstarks/svgo"
)

// Warning is the logger for rendering problems that don't stop the
// image from being drawn.
var Warning = log.New(os.Stderr, "[render] ", log.Lshortfile)

// fontSize is the font size in pixels. It matches layout.Face.
const fontSize = 13

const dotRadius = 3

// palette is the default series stroke, cycled by series index.
var palette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// r rounds a pixel position to the nearest integer.
func r(x float64) int {
	return int(math.Floor(x + 0.5))
}

// SVG writes charts to w as a single SVG image, stacked vertically
// in order. The image is as wide as the widest chart.
func SVG(w io.Writer, charts ...*chart.Chart) error {
	if len(charts) == 0 {
		return errors.New("render: no charts")
	}
	var width, height float64
	for _, c := range charts {
		cfg := c.Config()
		width = math.Max(width, cfg.Width)
		height += cfg.Height
	}

	canvas := svg.New(w)
	canvas.Start(r(width), r(height), fmt.Sprintf(`font-size="%dpx" font-family="sans-serif"`, fontSize))
	defer canvas.End()

	var y float64
	for i, c := range charts {
		canvas.Group(fmt.Sprintf(`id="%s" transform="translate(0,%d)"`, html.EscapeString(c.ID()), r(y)))
		renderChart(canvas, c, i)
		canvas.Gend()
		y += c.Config().Height
	}
	return nil
}

func renderChart(canvas *svg.SVG, c *chart.Chart, n int) {
	lay := c.Layout()
	p := lay.Plot
	xi, yi := r(p.Left()), r(p.Top())
	wi, hi := r(p.Right())-xi, r(p.Bottom())-yi

	canvas.Rect(xi, yi, wi, hi, "fill:#fafafa")
	for _, b := range lay.Bands {
		renderGrid(canvas, b, p)
	}

	// Series are clipped to the plot area.
	clipID := fmt.Sprintf("clip%d", n)
	canvas.ClipPath(`id="` + clipID + `"`)
	canvas.Rect(xi, yi, wi, hi)
	canvas.ClipEnd()
	canvas.Group(`clip-path="url(#` + clipID + `)"`)
	for i, pl := range c.Plots() {
		renderPlot(canvas, pl, stroke(pl.Spec, i))
	}
	canvas.Gend()

	for _, b := range lay.Bands {
		renderBand(canvas, b)
	}
	renderCursor(canvas, c)
	renderBrush(canvas, c)
}

func stroke(s chart.SeriesSpec, i int) string {
	if s.Stroke != "" {
		return s.Stroke
	}
	return palette[i%len(palette)]
}

func renderGrid(canvas *svg.SVG, b *layout.Band, p layout.Box) {
	var path []byte
	for _, px := range b.Axis.TickPixels() {
		if math.IsNaN(px) {
			continue
		}
		if b.Side.Horizontal() {
			path = fmt.Appendf(path, "M%d %dV%d", r(px), r(p.Top()), r(p.Bottom()))
		} else {
			path = fmt.Appendf(path, "M%d %dH%d", r(p.Left()), r(px), r(p.Right()))
		}
	}
	if len(path) > 0 {
		canvas.Path(string(path), "stroke:#e5e5e5; stroke-width:1")
	}
}

// renderBand draws an axis line, its ticks, and labels. The line runs
// along the band edge next to the plot.
func renderBand(canvas *svg.SVG, b *layout.Band) {
	box := b.Box()
	a := b.Axis
	var edge, dir float64
	switch b.Side {
	case axis.Bottom:
		edge, dir = box.Top(), 1
	case axis.Top:
		edge, dir = box.Bottom(), -1
	case axis.Left:
		edge, dir = box.Right(), -1
	case axis.Right:
		edge, dir = box.Left(), 1
	}
	tick := dir * layout.TickLength
	label := dir * (layout.TickLength + layout.LabelGap)

	const style = "stroke:#666; stroke-width:1; fill:none"
	if b.Side.Horizontal() {
		canvas.Line(r(box.Left()), r(edge), r(box.Right()), r(edge), style)
	} else {
		canvas.Line(r(edge), r(box.Top()), r(edge), r(box.Bottom()), style)
	}

	var path []byte
	for i, px := range a.TickPixels() {
		if math.IsNaN(px) {
			Warning.Printf("axis %s: tick %v has no pixel position", a.ID(), a.Ticks[i].Value)
			continue
		}
		text := a.Ticks[i].Label
		switch {
		case b.Side == axis.Bottom:
			path = fmt.Appendf(path, "M%d %dv%d", r(px), r(edge), r(tick))
			canvas.Text(r(px), r(edge+label), text, `text-anchor="middle" dy="1em" fill="#444"`)
		case b.Side == axis.Top:
			path = fmt.Appendf(path, "M%d %dv%d", r(px), r(edge), r(tick))
			canvas.Text(r(px), r(edge+label), text, `text-anchor="middle" fill="#444"`)
		case b.Side == axis.Left:
			path = fmt.Appendf(path, "M%d %dh%d", r(edge), r(px), r(tick))
			canvas.Text(r(edge+label), r(px), text, `text-anchor="end" dy=".3em" fill="#444"`)
		default:
			path = fmt.Appendf(path, "M%d %dh%d", r(edge), r(px), r(tick))
			canvas.Text(r(edge+label), r(px), text, `text-anchor="start" dy=".3em" fill="#444"`)
		}
	}
	if len(path) > 0 {
		canvas.Path(string(path), style)
	}

	if l := a.Spec.Base().Label; l != "" {
		// The axis label sits at the outer edge of the band.
		cx, cy := r(box.X+box.W/2), r(box.Y+box.H/2)
		switch b.Side {
		case axis.Bottom:
			canvas.Text(cx, r(box.Bottom()), l, `text-anchor="middle" fill="#222"`)
		case axis.Top:
			canvas.Text(cx, r(box.Top()), l, `text-anchor="middle" dy="1em" fill="#222"`)
		case axis.Left:
			x := r(box.Left() + fontSize)
			canvas.Text(x, cy, l, fmt.Sprintf(`text-anchor="middle" fill="#222" transform="rotate(-90 %d %d)"`, x, cy))
		default:
			x := r(box.Right() - fontSize)
			canvas.Text(x, cy, l, fmt.Sprintf(`text-anchor="middle" fill="#222" transform="rotate(90 %d %d)"`, x, cy))
		}
	}
}

func renderPlot(canvas *svg.SVG, pl chart.Plot, color string) {
	g := pl.Geometry
	for _, seg := range g.Segments {
		if len(seg.Points) < 2 {
			// A lone point has no curve; its dot marks it.
			continue
		}
		canvas.Path(seg.Path(), "stroke:"+color+"; fill:none; stroke-width:2")
	}
	if pl.Spec.HideDots {
		return
	}
	for _, m := range g.Markers() {
		if !finite(m.X) || !finite(m.Y) {
			continue
		}
		canvas.Circle(r(m.X), r(m.Y), dotRadius, "fill:#fff; stroke:"+color+"; stroke-width:1")
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// point returns the point of row in g, if the row is visible.
func point(g *series.Geometry, row int) (series.Point, bool) {
	for _, p := range g.Points {
		if p.Row == row {
			return p, true
		}
	}
	return series.Point{}, false
}

// renderCursor draws the active row as a vertical rule with each
// series' point highlighted.
func renderCursor(canvas *svg.SVG, c *chart.Chart) {
	row := c.Active()
	if row < 0 {
		return
	}
	p := c.Layout().Plot
	drawn := false
	for i, pl := range c.Plots() {
		pt, ok := point(pl.Geometry, row)
		if !ok || !finite(pt.X) {
			continue
		}
		if !drawn {
			canvas.Line(r(pt.X), r(p.Top()), r(pt.X), r(p.Bottom()), `class="cursor"`, "stroke:#999; stroke-width:1")
			drawn = true
		}
		if !pt.IsNil && finite(pt.Y) {
			canvas.Circle(r(pt.X), r(pt.Y), dotRadius+1, `class="cursor"`, "fill:"+stroke(pl.Spec, i))
		}
	}
}

// renderBrush draws the brush strip with the selected window and its
// two handles.
func renderBrush(canvas *svg.SVG, c *chart.Chart) {
	box, ok := c.BrushBox()
	if !ok {
		return
	}
	yi, hi := r(box.Top()), r(box.H)
	canvas.Rect(r(box.Left()), yi, r(box.Right())-r(box.Left()), hi, `class="brush"`, "fill:#fff; stroke:#666")
	x0, x1 := c.Brush().HandlePixels()
	canvas.Rect(r(x0), yi, r(x1)-r(x0), hi, `class="brush-window"`, "fill:#666; fill-opacity:0.2")
	const handleWidth = 5
	for _, x := range []float64{x0, x1} {
		canvas.Rect(r(x)-handleWidth/2, yi, handleWidth, hi, `class="brush-handle"`, "fill:#666")
	}
}

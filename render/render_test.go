// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aclements/go-chartsync/axis"
	"github.com/aclements/go-chartsync/axis/layout"
	"github.com/aclements/go-chartsync/chart"
	"github.com/aclements/go-chartsync/chartsync"
	"github.com/aclements/go-chartsync/dataset"
)

func squares(n int) *dataset.Dataset {
	d := dataset.New([]string{"x", "y"})
	for i := 0; i < n; i++ {
		x := float64(i)
		d.Rows = append(d.Rows, dataset.Row{"x": dataset.Num(x), "y": dataset.Num(x * x)})
	}
	return d
}

func config(id string) chart.Config {
	return chart.Config{
		ID:     id,
		SyncID: "g",
		Width:  300,
		Height: 200,
		Margin: layout.Margin{Top: 10, Right: 10, Bottom: 10, Left: 10},
		Axes: []axis.Spec{
			&axis.NumberSpec{Common: axis.Common{ID: "x", DataKey: "x", Orientation: axis.Bottom, Label: "step"}},
			&axis.NumberSpec{Common: axis.Common{ID: "y", Orientation: axis.Left}},
		},
		Series: []chart.SeriesSpec{{DataKey: "y", Stroke: "#123456"}},
	}
}

func TestSVG(t *testing.T) {
	var reg chartsync.Registry
	a, err := chart.New(config("a"), squares(5), &reg)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config("b")
	cfg.Width = 400
	cfg.Series[0].HideDots = true
	cfg.Brush = &chart.BrushConfig{Height: 30}
	b, err := chart.New(cfg, squares(5), &reg)
	if err != nil {
		t.Fatal(err)
	}
	p := a.Layout().Plot
	a.Hover(p.X+p.W/2, p.Y+p.H/2)

	var buf bytes.Buffer
	if err := SVG(&buf, a, b); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		`width="400" height="400"`,
		`id="a" transform="translate(0,0)"`,
		`id="b" transform="translate(0,200)"`,
		"stroke:#123456",
		">step</text>",
		`class="brush-window"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	// Only a has dots; both charts show the synchronized cursor.
	if n := strings.Count(out, `class="cursor"`); n != 4 {
		t.Errorf("want a cursor rule and dot in each chart; got %d cursor elements", n)
	}
	if n := strings.Count(out, `r="3"`); n != 5 {
		t.Errorf("want 5 dots from chart a; got %d", n)
	}
	if n := strings.Count(out, `class="brush-handle"`); n != 2 {
		t.Errorf("want 2 brush handles; got %d", n)
	}
}

func TestSVGNoCursor(t *testing.T) {
	cfg := config("a")
	cfg.SyncID = ""
	c, err := chart.New(cfg, squares(3), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := SVG(&buf, c); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "cursor") || strings.Contains(buf.String(), "brush") {
		t.Errorf("idle chart without brush should draw no cursor or brush")
	}
}

func TestSVGEmpty(t *testing.T) {
	if err := SVG(new(bytes.Buffer)); err == nil {
		t.Errorf("SVG with no charts should fail")
	}
}

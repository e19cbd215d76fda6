// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"errors"
	"reflect"
	"testing"

	"github.com/aclements/go-chartsync/axis"
)

func build(t *testing.T, c axis.Common) *axis.Resolved {
	t.Helper()
	r, err := axis.Build(&axis.NumberSpec{Common: c, Domain: &axis.Bounds{Min: 0, Max: 1}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

var rect = Rect{Width: 400, Height: 300, Margin: Margin{10, 10, 10, 10}}

func TestResolve(t *testing.T) {
	x := build(t, axis.Common{ID: "x", Orientation: axis.Bottom, Size: 30, Padding: axis.Padding{Start: 5, End: 10}})
	y := build(t, axis.Common{ID: "y", Orientation: axis.Left, Size: 40})
	y2 := build(t, axis.Common{ID: "y2", Orientation: axis.Right, Size: 50})
	xm := build(t, axis.Common{ID: "xm", Orientation: axis.Bottom, Mirror: true, Size: 20})

	res, err := Resolve([]*axis.Resolved{x, y, y2, xm}, rect)
	if err != nil {
		t.Fatal(err)
	}
	if want := (Box{50, 30, 290, 230}); res.Plot != want {
		t.Errorf("plot should be %+v; got %+v", want, res.Plot)
	}
	wantRanges := map[string][2]float64{
		"x":  {55, 330},
		"y":  {260, 30},
		"y2": {260, 30},
		"xm": {50, 340},
	}
	if !reflect.DeepEqual(res.Ranges, wantRanges) {
		t.Errorf("ranges should be %v; got %v", wantRanges, res.Ranges)
	}
	if y.Range != wantRanges["y"] {
		t.Errorf("axis range should be set; got %v", y.Range)
	}

	wantBands := []Box{
		{50, 260, 290, 30},
		{10, 30, 40, 230},
		{340, 30, 50, 230},
		{50, 10, 290, 20},
	}
	if len(res.Bands) != len(wantBands) {
		t.Fatalf("want %d bands; got %d", len(wantBands), len(res.Bands))
	}
	for i, b := range res.Bands {
		if b.Box() != wantBands[i] {
			t.Errorf("band %s should be %+v; got %+v", b.Axis.ID(), wantBands[i], b.Box())
		}
	}
	if res.Bands[3].Side != axis.Top {
		t.Errorf("mirrored bottom axis should be on top; got %v", res.Bands[3].Side)
	}
}

func TestStack(t *testing.T) {
	y1 := build(t, axis.Common{ID: "y1", Orientation: axis.Left, Size: 40})
	y2 := build(t, axis.Common{ID: "y2", Orientation: axis.Left, Size: 30})
	res, err := Resolve([]*axis.Resolved{y1, y2}, rect)
	if err != nil {
		t.Fatal(err)
	}
	if res.Plot.Left() != 80 {
		t.Errorf("stacked axes should reserve 70px; plot left %v", res.Plot.Left())
	}
	if x := res.Bands[0].Box().X; x != 40 {
		t.Errorf("first axis should be innermost at x=40; got %v", x)
	}
	if x := res.Bands[1].Box().X; x != 10 {
		t.Errorf("second axis should be outermost at x=10; got %v", x)
	}
}

func TestMirrorReserved(t *testing.T) {
	y := build(t, axis.Common{ID: "y", Orientation: axis.Left, Size: 40})
	ym := build(t, axis.Common{ID: "ym", Orientation: axis.Right, Mirror: true, Size: 25})
	res, err := Resolve([]*axis.Resolved{y, ym}, rect)
	if err != nil {
		t.Fatal(err)
	}
	if res.Plot.Left() != 50 || res.Plot.Right() != 390 {
		t.Errorf("mirror onto reserved side should not reserve more; plot %+v", res.Plot)
	}
	if b := res.Bands[1].Box(); b.X != 25 {
		t.Errorf("mirrored band should be innermost at x=25; got %+v", b)
	}
}

func TestHidden(t *testing.T) {
	x := build(t, axis.Common{ID: "x", Orientation: axis.Bottom, Hide: true, Size: 30})
	res, err := Resolve([]*axis.Resolved{x}, rect)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Bands) != 0 {
		t.Errorf("hidden axis should have no band")
	}
	if res.Plot.Bottom() != 290 {
		t.Errorf("hidden axis should reserve nothing; plot %+v", res.Plot)
	}
	if x.Range != [2]float64{10, 390} {
		t.Errorf("hidden axis should still get a range; got %v", x.Range)
	}
}

func TestWidePadding(t *testing.T) {
	// The plot is [10, 390] by [10, 290].
	x := build(t, axis.Common{ID: "x", Orientation: axis.Bottom, Hide: true, Padding: axis.Padding{Start: 300, End: 100}})
	y := build(t, axis.Common{ID: "y", Orientation: axis.Left, Hide: true, Padding: axis.Padding{Start: 1000, End: 1000}})
	res, err := Resolve([]*axis.Resolved{x, y}, rect)
	if err != nil {
		t.Fatal(err)
	}
	if want := [2]float64{295, 295}; res.Ranges["x"] != want {
		t.Errorf("padding wider than the plot should collapse x to %v; got %v", want, res.Ranges["x"])
	}
	if want := [2]float64{150, 150}; res.Ranges["y"] != want {
		t.Errorf("padding wider than the plot should collapse y to %v; got %v", want, res.Ranges["y"])
	}
}

func TestDuplicate(t *testing.T) {
	a := build(t, axis.Common{ID: "a"})
	b := build(t, axis.Common{ID: "a", Orientation: axis.Left})
	if _, err := Resolve([]*axis.Resolved{a, b}, rect); !errors.Is(err, ErrDuplicateAxis) {
		t.Errorf("want ErrDuplicateAxis; got %v", err)
	}
}

func TestIdempotent(t *testing.T) {
	axes := []*axis.Resolved{
		build(t, axis.Common{ID: "x", Orientation: axis.Bottom}),
		build(t, axis.Common{ID: "y", Orientation: axis.Left, Label: "ns/op"}),
		build(t, axis.Common{ID: "y2", Orientation: axis.Left, Mirror: true}),
	}
	r1, err := Resolve(axes, rect)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Resolve(axes, rect)
	if err != nil {
		t.Fatal(err)
	}
	if r1.Plot != r2.Plot || !reflect.DeepEqual(r1.Ranges, r2.Ranges) {
		t.Errorf("Resolve should be idempotent; got %+v %v then %+v %v", r1.Plot, r1.Ranges, r2.Plot, r2.Ranges)
	}
}

func TestSize(t *testing.T) {
	cat := func(c axis.Common) *axis.Resolved {
		r, err := axis.Build(&axis.CategorySpec{Common: c, Categories: []string{"a", "bbb"}}, nil)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	tests := []struct {
		c    axis.Common
		want float64
	}{
		{axis.Common{Orientation: axis.Bottom}, 6 + 3 + 13},
		{axis.Common{Orientation: axis.Bottom, Label: "x"}, 6 + 3 + 13 + 3 + 13},
		{axis.Common{Orientation: axis.Left}, 6 + 3 + 21},
		{axis.Common{Orientation: axis.Left, Size: 99}, 99},
	}
	for _, test := range tests {
		if got := Size(cat(test.c)); got != test.want {
			t.Errorf("Size(%+v) = %v; want %v", test.c, got, test.want)
		}
	}
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/aclements/go-chartsync/dataset"
)

func nums(xs ...float64) []dataset.Value {
	vs := make([]dataset.Value, len(xs))
	for i, x := range xs {
		vs[i] = dataset.Num(x)
	}
	return vs
}

func strs(ss ...string) []dataset.Value {
	vs := make([]dataset.Value, len(ss))
	for i, s := range ss {
		if s == "" {
			continue
		}
		vs[i] = dataset.Str(s)
	}
	return vs
}

func TestNiceTicks(t *testing.T) {
	tests := []struct {
		min, max float64
		n        int
		integer  bool
		lo, hi   float64
		ticks    []float64
	}{
		{0, 8, 5, false, 0, 8, []float64{0, 2, 4, 6, 8}},
		{-3, 7, 5, false, -5, 15, []float64{-5, 0, 5, 10, 15}},
		{-10, -2, 5, false, -10, -2, []float64{-10, -8, -6, -4, -2}},
		{0.1, 0.9, 5, false, 0, 2, []float64{0, 0.5, 1, 1.5, 2}},
		{0, 2, 5, true, 0, 4, []float64{0, 1, 2, 3, 4}},
		{3, 3, 5, false, 3, 3, []float64{3}},
		// Spans that overflow or underflow float64 steps.
		{-1e308, 1e308, 5, false, -1e308, 1e308, []float64{-1e308, 1e308}},
		{0, 5e-324, 5, false, 0, 5e-324, []float64{0, 5e-324}},
		{0, 5e-324, 2, false, 0, 5e-324, []float64{0, 5e-324}},
		{0, 1.7e308, 5, false, 0, 1.7e308, []float64{0, 1.7e308}},
	}
	for _, test := range tests {
		lo, hi, ticks := niceTicks(test.min, test.max, test.n, test.integer)
		if lo != test.lo || hi != test.hi || !reflect.DeepEqual(ticks, test.ticks) {
			t.Errorf("niceTicks(%v, %v, %d, %v) = %v, %v, %v; want %v, %v, %v",
				test.min, test.max, test.n, test.integer,
				lo, hi, ticks, test.lo, test.hi, test.ticks)
		}
	}
}

func TestExtremeSpans(t *testing.T) {
	for _, test := range []struct {
		lo, hi float64
		labels []string
	}{
		{-1e308, 1e308, []string{"-1e+308", "1e+308"}},
		{0, 5e-324, []string{"0", "5e-324"}},
	} {
		ax, err := Build(&NumberSpec{Common: Common{ID: "y"}}, nums(test.lo, test.hi))
		if err != nil {
			t.Fatal(err)
		}
		var labels []string
		for _, tick := range ax.Ticks {
			labels = append(labels, tick.Label)
		}
		if ax.Min != test.lo || ax.Max != test.hi || !reflect.DeepEqual(labels, test.labels) {
			t.Errorf("axis over [%g, %g] should keep its extent with labels %q; got [%g, %g] %q",
				test.lo, test.hi, test.labels, ax.Min, ax.Max, labels)
		}
	}
}

func TestAutoDomainContainsData(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for iter := 0; iter < 500; iter++ {
		n := 2 + r.Intn(20)
		xs := make([]float64, n)
		scale := math.Pow(10, float64(r.Intn(10)-5))
		off := (r.Float64() - 0.5) * 100 * scale
		for i := range xs {
			xs[i] = off + (r.Float64()-0.5)*scale
		}
		xs[1] = xs[0] + scale/7
		spec := &NumberSpec{Common: Common{ID: "y"}, TickCount: 2 + r.Intn(8)}
		ax, err := Build(spec, nums(xs...))
		if err != nil {
			t.Fatal(err)
		}
		for _, x := range xs {
			if x < ax.Min || x > ax.Max {
				t.Fatalf("domain [%v, %v] should contain %v (data %v)", ax.Min, ax.Max, x, xs)
			}
		}
		if len(ax.Ticks) != spec.TickCount {
			t.Fatalf("want %d ticks; got %v", spec.TickCount, ax.Ticks)
		}
	}
}

func TestNumberRoundTrip(t *testing.T) {
	ax, err := Build(&NumberSpec{Common: Common{ID: "y"}}, nums(3, 17, -4, 12))
	if err != nil {
		t.Fatal(err)
	}
	ax.SetRange(300, 20)
	for _, x := range []float64{-4, 0, 3, 12, 17} {
		px, ok := ax.Pixel(x)
		if !ok {
			t.Fatalf("Pixel(%v) not ok", x)
		}
		if got := ax.Invert(px); math.Abs(got-x) > 1e-9 {
			t.Errorf("Invert(Pixel(%v)) = %v", x, got)
		}
	}
}

func TestNumberAllNil(t *testing.T) {
	ax, err := Build(&NumberSpec{Common: Common{ID: "y"}}, []dataset.Value{{}, {}})
	if err != nil {
		t.Fatal(err)
	}
	if ax.Min != 0 || ax.Max != 0 {
		t.Errorf("all-nil domain should be [0, 0]; got [%v, %v]", ax.Min, ax.Max)
	}
	ax.SetRange(0, 100)
	if px, _ := ax.Pixel(42); px != 50 {
		t.Errorf("degenerate domain should map to midpoint 50; got %v", px)
	}
}

func TestExplicitDomain(t *testing.T) {
	spec := &NumberSpec{Common: Common{ID: "y"}, Domain: &Bounds{0, 10}}
	ax, err := Build(spec, nums(-5, 20))
	if err != nil {
		t.Fatal(err)
	}
	if ax.Min != 0 || ax.Max != 10 {
		t.Errorf("explicit domain should be kept; got [%v, %v]", ax.Min, ax.Max)
	}
	ax.SetRange(0, 100)
	if px, _ := ax.Pixel(20); px != 100 {
		t.Errorf("overflow should clamp to 100; got %v", px)
	}
	if px, _ := ax.Pixel(-5); px != 0 {
		t.Errorf("underflow should clamp to 0; got %v", px)
	}
	if len(ax.Ticks) < 2 || len(ax.Ticks) > 5 {
		t.Errorf("want 2 to 5 ticks; got %v", ax.Ticks)
	}
	for _, tick := range ax.Ticks {
		if tick.Value < 0 || tick.Value > 10 {
			t.Errorf("tick %v outside domain", tick.Value)
		}
	}

	spec.AllowDataOverflow = true
	ax, err = Build(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	ax.SetRange(0, 100)
	if px, _ := ax.Pixel(20); px != 200 {
		t.Errorf("overflow should map to 200; got %v", px)
	}
}

func TestExplicitIntegerTicks(t *testing.T) {
	spec := &NumberSpec{Common: Common{ID: "y"}, Domain: &Bounds{0, 3}, Integer: true, TickCount: 10}
	ax, err := Build(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, tick := range ax.Ticks {
		if tick.Value != math.Trunc(tick.Value) {
			t.Errorf("integer axis should have integer ticks; got %v", ax.Ticks)
			break
		}
	}
}

func TestInvalidDomain(t *testing.T) {
	specs := []Spec{
		&NumberSpec{Common: Common{ID: "a"}, Domain: &Bounds{10, 0}},
		&NumberSpec{Common: Common{ID: "b"}, Domain: &Bounds{math.NaN(), 1}},
		&NumberSpec{Common: Common{ID: "c"}, Domain: &Bounds{0, math.Inf(1)}},
		&NumberSpec{Common: Common{ID: "d"}, Domain: &Bounds{0, 10}, Scale: Log},
		&TimeSpec{Common: Common{ID: "e"}, Domain: &TimeBounds{time.Unix(10, 0), time.Unix(0, 0)}},
	}
	for _, spec := range specs {
		_, err := Build(spec, nums(1, 2))
		if !errors.Is(err, ErrInvalidDomain) {
			t.Errorf("%s: want ErrInvalidDomain; got %v", spec.Base().ID, err)
			continue
		}
		var de *DomainError
		if !errors.As(err, &de) || de.AxisID != spec.Base().ID {
			t.Errorf("%s: want DomainError for axis; got %#v", spec.Base().ID, err)
		}
	}
}

func TestLog(t *testing.T) {
	ax, err := Build(&NumberSpec{Common: Common{ID: "y"}, Scale: Log}, nums(2, 0, -1, 700))
	if err != nil {
		t.Fatal(err)
	}
	if ax.Min > 2 || ax.Max < 700 {
		t.Errorf("log domain [%v, %v] should contain [2, 700]", ax.Min, ax.Max)
	}
	ax.SetRange(0, 100)
	if _, ok := ax.Pixel(0); ok {
		t.Errorf("Pixel(0) on log axis should not be ok")
	}
	last := math.Inf(-1)
	for _, x := range []float64{2, 10, 100, 700} {
		px, ok := ax.Pixel(x)
		if !ok || px <= last {
			t.Errorf("log scale should increase at %v; got %v after %v", x, px, last)
		}
		last = px
	}
}

func TestCategory(t *testing.T) {
	col := strs("a", "b", "a", "")
	tests := []struct {
		spec  *CategorySpec
		cats  []string
		pos   int
		value string
		px    float64
	}{
		// Every row gets its own slot.
		{&CategorySpec{}, []string{"a", "b", "a", ""}, 2, "a", 200},
		// Row 2 maps to the first "a".
		{&CategorySpec{UniqueCategories: true}, []string{"a", "b"}, 2, "a", 0},
		{&CategorySpec{Categories: []string{"z", "b", "a"}}, []string{"z", "b", "a"}, 0, "a", 200},
	}
	for _, test := range tests {
		ax, err := Build(test.spec, col)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ax.Categories, test.cats) {
			t.Errorf("%+v: categories should be %q; got %q", test.spec, test.cats, ax.Categories)
		}
		// Slots are 100px apart.
		ax.SetRange(0, 100*float64(len(test.cats)-1))
		px, ok := ax.PixelAt(test.pos, dataset.Str(test.value))
		if !ok || px != test.px {
			t.Errorf("%+v: PixelAt(%d) should be %v; got %v, %v", test.spec, test.pos, test.px, px, ok)
		}
	}
}

func TestCategoryInvert(t *testing.T) {
	ax, err := Build(&CategorySpec{Categories: []string{"a", "b", "c"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ax.SetRange(0, 100)
	for px, want := range map[float64]float64{0: 0, 20: 0, 30: 1, 74: 1, 76: 2, 500: 2, -9: 0} {
		if got := ax.Invert(px); got != want {
			t.Errorf("Invert(%v) should be slot %v; got %v", px, want, got)
		}
	}

	one, _ := Build(&CategorySpec{Categories: []string{"only"}}, nil)
	one.SetRange(0, 100)
	if px, _ := one.PixelOf(dataset.Str("only")); px != 50 {
		t.Errorf("single category should map to midpoint; got %v", px)
	}
}

func TestReversed(t *testing.T) {
	spec := &NumberSpec{Common: Common{ID: "x", Reversed: true}, Domain: &Bounds{0, 10}}
	ax, err := Build(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	ax.SetRange(0, 100)
	if px, _ := ax.Pixel(0); px != 100 {
		t.Errorf("reversed axis should put min at 100; got %v", px)
	}
	if px, _ := ax.Pixel(10); px != 0 {
		t.Errorf("reversed axis should put max at 0; got %v", px)
	}
}

func TestTimeTicks(t *testing.T) {
	ticks := timeTicks(0, 10000, 5)
	want := []Tick{{0, "00:00:00"}, {5000, "00:00:05"}, {10000, "00:00:10"}}
	if !reflect.DeepEqual(ticks, want) {
		t.Errorf("timeTicks(0, 10s, 5) = %v; want %v", ticks, want)
	}

	lo := float64(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())
	hi := float64(time.Date(2020, 1, 4, 0, 0, 0, 0, time.UTC).UnixMilli())
	ticks = timeTicks(lo, hi, 5)
	if len(ticks) != 4 || ticks[0].Label != "Jan 1" || ticks[3].Label != "Jan 4" {
		t.Errorf("want daily ticks Jan 1 to Jan 4; got %v", ticks)
	}

	// Spans of millennia and beyond step in decades of years.
	for _, test := range []struct{ lo, hi float64 }{
		{float64(time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()),
			float64(time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli())},
		{0, 1e17},
	} {
		ticks := timeTicks(test.lo, test.hi, 5)
		if len(ticks) == 0 || len(ticks) > 5 {
			t.Errorf("timeTicks(%g, %g, 5) should give 1 to 5 ticks; got %v", test.lo, test.hi, ticks)
			continue
		}
		for i, tick := range ticks {
			if tick.Value < test.lo || tick.Value > test.hi || (i > 0 && tick.Value <= ticks[i-1].Value) {
				t.Errorf("timeTicks(%g, %g, 5) should be increasing inside the span; got %v", test.lo, test.hi, ticks)
				break
			}
		}
	}
}

func TestTimeAxisMillennia(t *testing.T) {
	lo := time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)
	ax, err := Build(&TimeSpec{Common: Common{ID: "t"}}, []dataset.Value{dataset.TimeOf(lo), dataset.TimeOf(hi)})
	if err != nil {
		t.Fatal(err)
	}
	for _, tick := range ax.Ticks {
		year, err := strconv.Atoi(tick.Label)
		if err != nil || year < 1000 || year > 3000 {
			t.Errorf("ticks should be years in [1000, 3000]; got %v", ax.Ticks)
			break
		}
	}
	ax.SetRange(0, 100)
	mid := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	px, ok := ax.PixelOf(dataset.TimeOf(mid))
	if !ok || px < 45 || px > 55 {
		t.Errorf("year 2000 should map near the middle; got %v, %v", px, ok)
	}
}

func TestTimeAxis(t *testing.T) {
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	col := []dataset.Value{dataset.TimeOf(t0), {}, dataset.TimeOf(t0.Add(time.Hour))}
	ax, err := Build(&TimeSpec{Common: Common{ID: "t"}}, col)
	if err != nil {
		t.Fatal(err)
	}
	ax.SetRange(0, 60)
	px, ok := ax.PixelOf(dataset.TimeOf(t0.Add(30 * time.Minute)))
	if !ok || math.Abs(px-30) > 1e-9 {
		t.Errorf("half hour should map to 30; got %v, %v", px, ok)
	}
	if len(ax.Ticks) == 0 || len(ax.Ticks) > 5 {
		t.Errorf("want 1 to 5 ticks; got %v", ax.Ticks)
	}
}

func TestCache(t *testing.T) {
	var c Cache
	spec := &NumberSpec{Common: Common{ID: "y"}, Domain: &Bounds{0, 10}}
	a, _ := c.Build(spec, nums(1, 2))
	b, _ := c.Build(spec, nums(1, 2))
	if c.Hits != 1 || c.Misses != 1 {
		t.Errorf("want 1 hit, 1 miss; got %d, %d", c.Hits, c.Misses)
	}
	a.SetRange(0, 100)
	if b.Range == a.Range {
		t.Errorf("cached results should be independent copies")
	}

	spec.Domain.Max = 20
	d, _ := c.Build(spec, nums(1, 2))
	if c.Misses != 2 || d.Max != 20 {
		t.Errorf("editing the axis spec should rebuild; misses %d, max %v", c.Misses, d.Max)
	}
	c.Build(spec, nums(1, 3))
	if c.Misses != 3 {
		t.Errorf("a changed column should rebuild; misses %d", c.Misses)
	}
}

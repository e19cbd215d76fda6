// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"

	"github.com/aclements/go-chartsync/dataset"
)

// Tick spacings in milliseconds.
const (
	msSecond = 1e3
	msMinute = 60 * msSecond
	msHour   = 60 * msMinute
	msDay    = 24 * msHour
	msYear   = 365 * msDay
)

// timeSteps is the ladder of tick spacings for time axes, in
// milliseconds, finest first.
var timeSteps = []float64{
	1, 2, 5, 10, 20, 50, 100, 200, 500,
	msSecond, 2 * msSecond, 5 * msSecond, 10 * msSecond,
	15 * msSecond, 30 * msSecond,
	msMinute, 2 * msMinute, 5 * msMinute, 10 * msMinute,
	15 * msMinute, 30 * msMinute,
	msHour, 2 * msHour, 3 * msHour, 6 * msHour, 12 * msHour,
	msDay, 2 * msDay, 7 * msDay, 30 * msDay, 90 * msDay, msYear,
}

// timeTicks returns at most max ticks, in Unix milliseconds, inside
// [lo, hi]. Ticks are multiples of the finest step from timeSteps
// that satisfies max. Steps at or beyond the end of the ladder are
// multiplied by powers of ten (decades of years). If no step fits,
// the ticks are the endpoints.
func timeTicks(lo, hi float64, max int) (ticks []Tick) {
	if lo == hi {
		return []Tick{{Value: lo, Label: timeLabel(lo, msSecond)}}
	}
	if max < 1 {
		max = 1
	}
	step := timeSteps[len(timeSteps)-1]
	for _, s := range timeSteps {
		if timeTickCount(lo, hi, s) <= float64(max) {
			step = s
			break
		}
	}
	for timeTickCount(lo, hi, step) > float64(max) {
		step *= 10
		if math.IsInf(step, 0) {
			return []Tick{
				{Value: lo, Label: timeLabel(lo, msYear)},
				{Value: hi, Label: timeLabel(hi, msYear)},
			}
		}
	}

	first := math.Ceil(lo / step)
	for i := 0; i < max; i++ {
		x := (first + float64(i)) * step
		if x > hi {
			break
		}
		ticks = append(ticks, Tick{Value: x, Label: timeLabel(x, step)})
	}
	return ticks
}

// timeTickCount returns the number of multiples of step in [lo, hi].
func timeTickCount(lo, hi, step float64) float64 {
	return math.Floor(hi/step) - math.Ceil(lo/step) + 1
}

// timeLabel formats ms with a precision matching the tick step.
func timeLabel(ms, step float64) string {
	t := dataset.FromMillis(ms)
	switch {
	case step < msSecond:
		return t.Format("15:04:05.000")
	case step < msMinute:
		return t.Format("15:04:05")
	case step < msDay:
		return t.Format("15:04")
	case step < 30*msDay:
		return t.Format("Jan 2")
	case step < msYear:
		return t.Format("Jan 2006")
	}
	return t.Format("2006")
}

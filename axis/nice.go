// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"math"
	"strconv"
)

// niceTicks rounds the data extent [min, max] outward to a domain
// covered by exactly n evenly spaced ticks whose step is 1, 2, or 5
// times a power of ten.
//
// The step is the smallest such value that is at least
// (max-min)/(n-1) and for which the n ticks starting at
// floor(min/step)*step reach max. Floor rounds toward -Inf, so spans
// that cross or lie below zero follow the same rule. If integer is
// set, the step is at least 1. A degenerate extent (min == max) is
// returned unchanged with a single tick. An extent too wide or too
// narrow for float64 steps is returned unchanged with ticks at its
// endpoints.
func niceTicks(min, max float64, n int, integer bool) (lo, hi float64, ticks []float64) {
	if min == max {
		return min, max, []float64{min}
	}
	if n < 2 {
		n = 2
	}
	raw := (max - min) / float64(n-1)
	if !finitePositive(raw) {
		return min, max, []float64{min, max}
	}
	step := niceStep(raw, integer)
	const maxTries = 64
	for try := 0; ; try++ {
		if try == maxTries || !finitePositive(step) {
			return min, max, []float64{min, max}
		}
		lo = math.Floor(min/step+1e-9) * step
		hi = lo + float64(n-1)*step
		if math.IsNaN(lo) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return min, max, []float64{min, max}
		}
		if hi >= max-step*1e-9 {
			break
		}
		step = nextStep(step)
	}

	ticks = make([]float64, n)
	d := stepDecimals(step)
	for i := range ticks {
		ticks[i] = roundTo(lo+float64(i)*step, d)
	}
	// Rounding the ticks must not pull the domain inside the data.
	return math.Min(ticks[0], min), math.Max(ticks[n-1], max), ticks
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// niceStep returns the smallest {1,2,5}×10^k that is >= raw.
func niceStep(raw float64, integer bool) float64 {
	if integer && raw <= 1 {
		return 1
	}
	exp := math.Floor(math.Log10(raw))
	pow := math.Pow(10, exp)
	f := raw / pow
	var m float64
	switch {
	case f <= 1+1e-9:
		m = 1
	case f <= 2+1e-9:
		m = 2
	case f <= 5+1e-9:
		m = 5
	default:
		m = 10
	}
	step := m * pow
	if integer && step < 1 {
		step = 1
	}
	return step
}

// nextStep returns the {1,2,5}×10^k step following step.
func nextStep(step float64) float64 {
	exp := math.Floor(math.Log10(step) + 1e-9)
	pow := math.Pow(10, exp)
	switch m := math.Round(step / pow); {
	case m < 2:
		return 2 * pow
	case m < 5:
		return 5 * pow
	}
	return 10 * pow
}

// stepDecimals returns the number of decimal places needed to print
// multiples of step exactly, or -1 if step is not a usable fixed
// point step.
func stepDecimals(step float64) int {
	if !finitePositive(step) {
		return -1
	}
	d := -int(math.Floor(math.Log10(step) + 1e-9))
	switch {
	case d < 0:
		return 0
	case d > maxDecimals:
		return -1
	}
	return d
}

const maxDecimals = 20

func roundTo(x float64, decimals int) float64 {
	v := x
	if decimals >= 0 {
		p := math.Pow(10, float64(decimals))
		v = math.Round(x*p) / p
	}
	if v == 0 {
		// Avoid "-0" labels.
		return 0
	}
	return v
}

// formatTick formats x with the given decimals, or in the shortest
// exponent form if decimals is negative.
func formatTick(x float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}

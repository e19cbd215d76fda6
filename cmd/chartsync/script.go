// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aclements/go-chartsync/brush"
	"github.com/aclements/go-chartsync/chart"
	"github.com/kballard/go-shellquote"
)

// An event is one line of an event script. Each line is a command
// and its arguments, split with shell quoting rules:
//
//	hover CHART X Y
//	leave CHART
//	brush CHART down start|end|slide X
//	brush CHART move X
//	brush CHART up X [invalid]
//	window CHART START END
//	resize CHART WIDTH HEIGHT
//
// Blank lines and lines starting with # are ignored.
type event struct {
	line  int
	op    string
	chart string

	handle brush.Handle
	nums   []float64
	valid  bool
}

// arity is the number of numeric arguments of each op.
var arity = map[string]int{
	"hover":      2,
	"leave":      0,
	"brush-down": 1,
	"brush-move": 1,
	"brush-up":   1,
	"window":     2,
	"resize":     2,
}

func parseScript(r io.Reader) ([]event, error) {
	var evs []event
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		args, err := shellquote.Split(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		ev, err := parseEvent(args)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		ev.line = n
		evs = append(evs, ev)
	}
	return evs, scanner.Err()
}

func parseEvent(args []string) (event, error) {
	var ev event
	if len(args) < 2 {
		return ev, fmt.Errorf("want command and chart ID, got %q", shellquote.Join(args...))
	}
	ev.op, ev.chart, args = args[0], args[1], args[2:]
	if ev.op == "brush" {
		if len(args) == 0 {
			return ev, fmt.Errorf("brush: missing action")
		}
		ev.op, args = "brush-"+args[0], args[1:]
		if ev.op == "brush-down" {
			if len(args) == 0 {
				return ev, fmt.Errorf("brush down: missing handle")
			}
			h, err := parseHandle(args[0])
			if err != nil {
				return ev, err
			}
			ev.handle, args = h, args[1:]
		}
		ev.valid = true
		if ev.op == "brush-up" && len(args) == 2 && args[1] == "invalid" {
			ev.valid, args = false, args[:1]
		}
	}
	want, ok := arity[ev.op]
	if !ok {
		return ev, fmt.Errorf("unknown command %q", strings.Replace(ev.op, "-", " ", 1))
	}
	if len(args) != want {
		return ev, fmt.Errorf("%s: want %d arguments, got %d", ev.op, want, len(args))
	}
	for _, a := range args {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return ev, fmt.Errorf("%s: %w", ev.op, err)
		}
		ev.nums = append(ev.nums, x)
	}
	return ev, nil
}

func parseHandle(s string) (brush.Handle, error) {
	for _, h := range []brush.Handle{brush.Start, brush.End, brush.Slide} {
		if h.String() == s {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown brush handle %q", s)
}

// apply performs ev on the chart it names.
func apply(charts map[string]*chart.Chart, ev event) error {
	c := charts[ev.chart]
	if c == nil {
		return fmt.Errorf("line %d: unknown chart %q", ev.line, ev.chart)
	}
	if strings.HasPrefix(ev.op, "brush") || ev.op == "window" {
		if c.Brush() == nil {
			return fmt.Errorf("line %d: chart %q has no brush", ev.line, ev.chart)
		}
	}
	switch ev.op {
	case "hover":
		c.Hover(ev.nums[0], ev.nums[1])
	case "leave":
		c.Leave()
	case "brush-down":
		c.BrushDown(ev.handle, ev.nums[0])
	case "brush-move":
		c.BrushMove(ev.nums[0])
	case "brush-up":
		c.BrushUp(ev.nums[0], ev.valid)
	case "window":
		c.Brush().SetWindow(brush.Window{Start: int(ev.nums[0]), End: int(ev.nums[1])})
	case "resize":
		if err := c.Resize(ev.nums[0], ev.nums[1]); err != nil {
			return fmt.Errorf("line %d: %w", ev.line, err)
		}
	}
	return nil
}

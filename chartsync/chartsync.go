// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chartsync shares an active selection between charts.
//
// Charts that mount on a Registry with the same sync ID form a
// group. When one chart publishes a selection, every other member of
// the group is told which of its own rows to activate. Members may
// hold different datasets: each receiver maps the selection onto its
// data by index, by value, or with a custom Resolver.
//
// Members may also share a brush window. A published window is an
// inclusive range of row indexes, clamped to each receiver's
// dataset.
//
// A Registry is not safe for concurrent use. Callers deliver events
// one at a time, and the most recent publish wins.
package chartsync

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/aclements/go-chartsync/dataset"
	"github.com/aclements/go-gg/generic/slice"
)

// ErrSyncResolution is wrapped by errors from a Resolver that failed
// or returned an index outside the receiver's dataset.
var ErrSyncResolution = errors.New("sync resolution failed")

// Method is how a receiving chart maps a selection onto its rows.
type Method int

const (
	// ByIndex activates the published row index, clamped to the
	// receiver's last row.
	ByIndex Method = iota

	// ByValue activates the receiver row whose Key value is
	// closest to the published value.
	ByValue
)

func (m Method) String() string {
	switch m {
	case ByIndex:
		return "index"
	case ByValue:
		return "value"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod parses "index" or "value". The empty string is
// ByIndex.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "", "index":
		return ByIndex, nil
	case "value":
		return ByValue, nil
	}
	return ByIndex, fmt.Errorf("unknown sync method %q", s)
}

// Selection is a published cursor position.
type Selection struct {
	// Source is the ID of the publishing chart.
	Source string

	// Index is the active row in the source's dataset. It is
	// meaningful only if Active.
	Index int

	// Value is the source's Key value at Index. If nil, Publish
	// fills it in from the source's membership.
	Value dataset.Value

	Active bool
}

// At returns an active selection of row index by source.
func At(source string, index int) Selection {
	return Selection{Source: source, Index: index, Active: true}
}

// None returns a selection that clears every member.
func None(source string) Selection {
	return Selection{Source: source}
}

// View is the part of a member visible to a Resolver.
type View struct {
	ChartID string
	Data    *dataset.Dataset
	Key     string
}

// A Resolver maps the active index of src onto dst.
type Resolver interface {
	ResolveSync(src View, index int, dst View) (int, error)
}

// ResolverFunc adapts a function to a Resolver.
type ResolverFunc func(src View, index int, dst View) (int, error)

func (f ResolverFunc) ResolveSync(src View, index int, dst View) (int, error) {
	return f(src, index, dst)
}

// Activation is delivered to a member when a selection is published.
type Activation struct {
	// Index is the row of the receiver's dataset to activate, or
	// -1 to clear.
	Index int

	Selection Selection
}

// A Listener receives activations.
type Listener interface {
	Activate(Activation)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(Activation)

func (f ListenerFunc) Activate(a Activation) { f(a) }

// Window is an inclusive range of row indexes.
type Window struct {
	Start, End int
}

// A WindowListener receives windows published to its group.
type WindowListener interface {
	SetWindow(source string, w Window)
}

// WindowListenerFunc adapts a function to a WindowListener.
type WindowListenerFunc func(source string, w Window)

func (f WindowListenerFunc) SetWindow(source string, w Window) { f(source, w) }

// Member is one chart's membership in a sync group.
type Member struct {
	ChartID string
	Data    *dataset.Dataset

	// Key is the field compared by ByValue and reported as the
	// selection value.
	Key string

	Method Method

	// Resolver, if non-nil, overrides Method.
	Resolver Resolver

	Listener Listener

	// Window, if non-nil, receives published windows.
	Window WindowListener
}

func (m *Member) view() View {
	return View{m.ChartID, m.Data, m.Key}
}

// State is the shared state of a sync group.
type State struct {
	// ActiveIndex is the published index, or -1.
	ActiveIndex int

	// ActiveValue is the published value. It is nil when nothing
	// is active.
	ActiveValue dataset.Value

	LastUpdatedChartID string

	// Window is the most recently published window, or nil.
	Window *Window
}

// ResolutionError records a Resolver failure.
type ResolutionError struct {
	SyncID         string
	Source, Target string
	Index          int
	Err            error
}

func (e *ResolutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sync %q: %v: %s -> %s: %v", e.SyncID, ErrSyncResolution, e.Source, e.Target, e.Err)
	}
	return fmt.Sprintf("sync %q: %v: %s -> %s: index %d out of range", e.SyncID, ErrSyncResolution, e.Source, e.Target, e.Index)
}

func (e *ResolutionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSyncResolution, e.Err}
	}
	return []error{ErrSyncResolution}
}

type entry struct {
	Member
	removed bool
}

type group struct {
	entries []*entry
	state   State
}

// Registry holds sync groups by ID. The zero Registry is ready to
// use.
type Registry struct {
	// Warning logs resolution failures. If nil, failures are
	// logged to os.Stderr.
	Warning *log.Logger

	groups map[string]*group
}

var defaultWarning = log.New(os.Stderr, "[chartsync] ", log.Lshortfile)

func (r *Registry) warnf(format string, args ...interface{}) {
	l := r.Warning
	if l == nil {
		l = defaultWarning
	}
	l.Printf(format, args...)
}

// Subscribe adds m to the group syncID, creating the group if
// needed. The returned function removes m. When the last member is
// removed, the group is deleted. Calling it more than once has no
// further effect.
func (r *Registry) Subscribe(syncID string, m Member) (unsubscribe func()) {
	if r.groups == nil {
		r.groups = make(map[string]*group)
	}
	g := r.groups[syncID]
	if g == nil {
		g = &group{state: State{ActiveIndex: -1}}
		r.groups[syncID] = g
	}
	e := &entry{Member: m}
	g.entries = append(g.entries, e)
	return func() {
		if e.removed {
			return
		}
		e.removed = true
		for i, e2 := range g.entries {
			if e2 == e {
				g.entries = append(g.entries[:i:i], g.entries[i+1:]...)
				break
			}
		}
		if len(g.entries) == 0 && r.groups[syncID] == g {
			delete(r.groups, syncID)
		}
	}
}

// Update replaces the dataset of chartID's membership in syncID.
func (r *Registry) Update(syncID, chartID string, data *dataset.Dataset) {
	if g := r.groups[syncID]; g != nil {
		for _, e := range g.entries {
			if e.ChartID == chartID {
				e.Data = data
			}
		}
	}
}

// State returns the state of group syncID, and false if there is no
// such group.
func (r *Registry) State(syncID string) (State, bool) {
	g := r.groups[syncID]
	if g == nil {
		return State{ActiveIndex: -1}, false
	}
	return g.state, true
}

// Members returns the number of members of group syncID.
func (r *Registry) Members(syncID string) int {
	if g := r.groups[syncID]; g != nil {
		return len(g.entries)
	}
	return 0
}

// Publish records sel as the state of group syncID and delivers it
// to every member except the source, in subscription order. Members
// removed during delivery are skipped. Publishing to a group with no
// members does nothing.
func (r *Registry) Publish(syncID string, sel Selection) {
	g := r.groups[syncID]
	if g == nil {
		return
	}

	var src *entry
	for _, e := range g.entries {
		if e.ChartID == sel.Source {
			src = e
			break
		}
	}
	if sel.Active && sel.Value.IsNil() && src != nil && src.Key != "" &&
		sel.Index >= 0 && sel.Index < src.Data.Len() {
		sel.Value = src.Data.Rows[sel.Index].Get(src.Key)
	}

	g.state = State{ActiveIndex: -1, LastUpdatedChartID: sel.Source, Window: g.state.Window}
	if sel.Active {
		g.state.ActiveIndex, g.state.ActiveValue = sel.Index, sel.Value
	}

	srcView := View{ChartID: sel.Source}
	if src != nil {
		srcView = src.view()
	}
	snapshot := append([]*entry(nil), g.entries...)
	for _, e := range snapshot {
		if e.removed || e.ChartID == sel.Source {
			continue
		}
		idx := -1
		if sel.Active {
			idx = r.resolve(syncID, srcView, sel, e)
		}
		if e.Listener != nil {
			e.Listener.Activate(Activation{Index: idx, Selection: sel})
		}
	}
}

// PublishWindow records w as the window of group syncID and delivers
// it to every member except source, in subscription order. Each
// receiver gets w clamped to its own rows. Members with no rows are
// skipped.
func (r *Registry) PublishWindow(syncID, source string, w Window) {
	g := r.groups[syncID]
	if g == nil {
		return
	}
	if w.Start > w.End {
		w.Start, w.End = w.End, w.Start
	}
	rec := w
	g.state.Window = &rec
	g.state.LastUpdatedChartID = source

	snapshot := append([]*entry(nil), g.entries...)
	for _, e := range snapshot {
		if e.removed || e.ChartID == source || e.Window == nil {
			continue
		}
		n := e.Data.Len()
		if n == 0 {
			continue
		}
		e.Window.SetWindow(source, Window{clamp(w.Start, 0, n-1), clamp(w.End, 0, n-1)})
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

// resolve returns the row of e to activate for sel, or -1.
func (r *Registry) resolve(syncID string, src View, sel Selection, e *entry) int {
	n := e.Data.Len()
	if e.Resolver != nil {
		idx, err := callResolver(e.Resolver, src, sel.Index, e.view())
		if err == nil && idx >= 0 && idx < n {
			return idx
		}
		rerr := &ResolutionError{SyncID: syncID, Source: sel.Source, Target: e.ChartID, Index: idx, Err: err}
		r.warnf("%v", rerr)
		return -1
	}
	if n == 0 {
		return -1
	}
	switch e.Method {
	case ByValue:
		return closest(e.Data, e.Key, sel.Value)
	}
	switch {
	case sel.Index < 0:
		return 0
	case sel.Index > n-1:
		return n - 1
	}
	return sel.Index
}

// callResolver calls res, reporting a panic as an error.
func callResolver(res Resolver, src View, index int, dst View) (idx int, err error) {
	defer func() {
		if p := recover(); p != nil {
			idx, err = -1, fmt.Errorf("panic: %v", p)
		}
	}()
	return res.ResolveSync(src, index, dst)
}

// closest returns the row of d whose key value is closest to v, or
// -1 if no row matches. Numbers and times compare by distance, with
// ties going to the lower index. Other values must match exactly.
func closest(d *dataset.Dataset, key string, v dataset.Value) int {
	col := d.Column(key)
	if x, ok := v.Float(); ok {
		dist := make([]float64, len(col))
		found := false
		for i, cv := range col {
			dist[i] = math.Inf(1)
			if y, ok := cv.Float(); ok {
				found = true
				switch d := math.Abs(y - x); {
				case y == x:
					dist[i] = 0
				case !math.IsNaN(d):
					dist[i] = d
				}
			}
		}
		if !found {
			return -1
		}
		return slice.ArgMin(dist)
	}
	if v.IsNil() {
		return -1
	}
	for i, cv := range col {
		if cv.Equal(v) {
			return i
		}
	}
	return -1
}

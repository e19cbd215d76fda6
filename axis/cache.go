// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"reflect"

	"github.com/aclements/go-chartsync/dataset"
)

// Cache memoizes Build by axis ID. An entry is reused while both the
// spec and the column it was built from are unchanged.
//
// A Cache is not safe for concurrent use.
type Cache struct {
	entries map[string]cacheEntry

	// Hits and Misses count Build calls served from and added to
	// the cache.
	Hits, Misses int
}

type cacheEntry struct {
	spec   Spec
	column []dataset.Value
	r      *Resolved
}

// Build is like the package-level Build, but returns a copy of a
// cached result when spec and column match the last build of the
// same axis ID.
func (c *Cache) Build(spec Spec, column []dataset.Value) (*Resolved, error) {
	id := spec.Base().ID
	if e, ok := c.entries[id]; ok && reflect.DeepEqual(e.spec, spec) && sameColumn(e.column, column) {
		c.Hits++
		return e.r.Clone(), nil
	}
	r, err := Build(spec, column)
	if err != nil {
		return nil, err
	}
	c.Misses++
	if c.entries == nil {
		c.entries = make(map[string]cacheEntry)
	}
	c.entries[id] = cacheEntry{copySpec(spec), append([]dataset.Value(nil), column...), r.Clone()}
	return r, nil
}

// Invalidate drops all cached axes.
func (c *Cache) Invalidate() {
	c.entries = nil
}

// copySpec returns a deep copy of s so later edits to the caller's
// spec are seen as changes.
func copySpec(s Spec) Spec {
	switch s := s.(type) {
	case *NumberSpec:
		c := *s
		if s.Domain != nil {
			d := *s.Domain
			c.Domain = &d
		}
		return &c
	case *CategorySpec:
		c := *s
		if s.Categories != nil {
			c.Categories = append(make([]string, 0, len(s.Categories)), s.Categories...)
		}
		return &c
	case *TimeSpec:
		c := *s
		if s.Domain != nil {
			d := *s.Domain
			c.Domain = &d
		}
		return &c
	}
	return s
}

func sameColumn(a, b []dataset.Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads chart configuration files.
//
// A configuration file is YAML listing one or more charts:
//
//	charts:
//	  - id: latency
//	    syncId: dash
//	    syncMethod: value
//	    width: 600
//	    height: 300
//	    brush: {height: 40}
//	    axes:
//	      - {id: x, type: number, dataKey: time, orientation: bottom}
//	      - {id: y, type: number, orientation: left, domain: [0, 100]}
//	    series:
//	      - {dataKey: p50, type: monotone, connectNulls: true}
//
// Field names follow the equivalent chart properties. allowDecimals
// and allowDuplicatedCategory default to true.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/aclements/go-chartsync/axis"
	"github.com/aclements/go-chartsync/axis/layout"
	"github.com/aclements/go-chartsync/chart"
	"github.com/aclements/go-chartsync/chartsync"
	"github.com/aclements/go-chartsync/series"
	"gopkg.in/yaml.v3"
)

// File is a decoded configuration file.
type File struct {
	Charts []chart.Config
}

type fileYAML struct {
	Charts []chartYAML `yaml:"charts"`
}

type chartYAML struct {
	ID         string       `yaml:"id"`
	SyncID     string       `yaml:"syncId"`
	SyncMethod string       `yaml:"syncMethod"`
	SyncKey    string       `yaml:"syncKey"`
	Width      float64      `yaml:"width"`
	Height     float64      `yaml:"height"`
	Margin     marginYAML   `yaml:"margin"`
	Brush      *brushYAML   `yaml:"brush"`
	Axes       []axisYAML   `yaml:"axes"`
	Series     []seriesYAML `yaml:"series"`
}

type marginYAML struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

type brushYAML struct {
	Height float64 `yaml:"height"`
	Start  int     `yaml:"start"`
	End    int     `yaml:"end"`
}

type axisYAML struct {
	ID          string  `yaml:"id"`
	Type        string  `yaml:"type"`
	DataKey     string  `yaml:"dataKey"`
	Orientation string  `yaml:"orientation"`
	Reversed    bool    `yaml:"reversed"`
	Mirror      bool    `yaml:"mirror"`
	Hide        bool    `yaml:"hide"`
	Size        float64 `yaml:"size"`
	Label       string  `yaml:"label"`
	Padding     struct {
		Start float64 `yaml:"start"`
		End   float64 `yaml:"end"`
	} `yaml:"padding"`

	// Domain bounds are kept as text until the axis type is known.
	Domain            []scalar `yaml:"domain"`
	Scale             string   `yaml:"scale"`
	AllowDecimals     *bool    `yaml:"allowDecimals"`
	AllowDataOverflow bool     `yaml:"allowDataOverflow"`
	TickCount         int      `yaml:"tickCount"`

	Categories              []string `yaml:"categories"`
	AllowDuplicatedCategory *bool    `yaml:"allowDuplicatedCategory"`
}

type seriesYAML struct {
	Name         string `yaml:"name"`
	XAxis        string `yaml:"xAxisId"`
	YAxis        string `yaml:"yAxisId"`
	DataKey      string `yaml:"dataKey"`
	Type         string `yaml:"type"`
	ConnectNulls bool   `yaml:"connectNulls"`
	Dot          *bool  `yaml:"dot"`
	Stroke       string `yaml:"stroke"`
}

// scalar is the text of a YAML scalar of any type.
type scalar string

func (s *scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", n.Line)
	}
	*s = scalar(n.Value)
	return nil
}

// Load decodes a configuration file from r.
func Load(r io.Reader) (*File, error) {
	var fy fileYAML
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fy); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config: empty file")
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	f := &File{}
	for i, cy := range fy.Charts {
		c, err := cy.convert()
		if err != nil {
			return nil, fmt.Errorf("config: chart %d (%s): %w", i, cy.ID, err)
		}
		f.Charts = append(f.Charts, c)
	}
	if len(f.Charts) == 0 {
		return nil, errors.New("config: no charts")
	}
	return f, nil
}

// LoadFile decodes the configuration file at path.
func LoadFile(path string) (*File, error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Load(r)
}

// Defaults for omitted chart dimensions.
const (
	DefaultWidth  = 600
	DefaultHeight = 300
)

func (cy *chartYAML) convert() (chart.Config, error) {
	c := chart.Config{
		ID:      cy.ID,
		SyncID:  cy.SyncID,
		SyncKey: cy.SyncKey,
		Width:   cy.Width,
		Height:  cy.Height,
		Margin:  layout.Margin{Top: cy.Margin.Top, Right: cy.Margin.Right, Bottom: cy.Margin.Bottom, Left: cy.Margin.Left},
	}
	if c.ID == "" {
		return c, errors.New("missing id")
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	var err error
	if c.SyncMethod, err = chartsync.ParseMethod(cy.SyncMethod); err != nil {
		return c, err
	}
	if b := cy.Brush; b != nil {
		c.Brush = &chart.BrushConfig{Height: b.Height, Start: b.Start, End: b.End}
		if c.Brush.Height == 0 {
			c.Brush.Height = 40
		}
	}
	for i, ay := range cy.Axes {
		spec, err := ay.convert()
		if err != nil {
			return c, fmt.Errorf("axis %d (%s): %w", i, ay.ID, err)
		}
		c.Axes = append(c.Axes, spec)
	}
	for i, sy := range cy.Series {
		interp, err := series.ParseInterpolation(sy.Type)
		if err != nil {
			return c, fmt.Errorf("series %d (%s): %w", i, sy.DataKey, err)
		}
		c.Series = append(c.Series, chart.SeriesSpec{
			Name:          sy.Name,
			XAxis:         sy.XAxis,
			YAxis:         sy.YAxis,
			DataKey:       sy.DataKey,
			Interpolation: interp,
			ConnectNulls:  sy.ConnectNulls,
			HideDots:      sy.Dot != nil && !*sy.Dot,
			Stroke:        sy.Stroke,
		})
	}
	return c, nil
}

func parseOrientation(s string, def axis.Orientation) (axis.Orientation, error) {
	if s == "" {
		return def, nil
	}
	for _, o := range []axis.Orientation{axis.Bottom, axis.Left, axis.Top, axis.Right} {
		if o.String() == s {
			return o, nil
		}
	}
	return def, fmt.Errorf("unknown orientation %q", s)
}

func (ay *axisYAML) convert() (axis.Spec, error) {
	if ay.ID == "" {
		return nil, errors.New("missing id")
	}
	// Axes with a data key default to x axes, others to y axes.
	def := axis.Left
	if ay.DataKey != "" {
		def = axis.Bottom
	}
	o, err := parseOrientation(ay.Orientation, def)
	if err != nil {
		return nil, err
	}
	com := axis.Common{
		ID:          ay.ID,
		DataKey:     ay.DataKey,
		Orientation: o,
		Reversed:    ay.Reversed,
		Mirror:      ay.Mirror,
		Hide:        ay.Hide,
		Padding:     axis.Padding{Start: ay.Padding.Start, End: ay.Padding.End},
		Size:        ay.Size,
		Label:       ay.Label,
	}
	if ay.Domain != nil && len(ay.Domain) != 2 {
		return nil, fmt.Errorf("domain must have 2 bounds, got %d", len(ay.Domain))
	}

	switch ay.Type {
	case "", "number":
		s := &axis.NumberSpec{
			Common:            com,
			Integer:           ay.AllowDecimals != nil && !*ay.AllowDecimals,
			AllowDataOverflow: ay.AllowDataOverflow,
			TickCount:         ay.TickCount,
		}
		switch ay.Scale {
		case "", "linear":
		case "log":
			s.Scale = axis.Log
		default:
			return nil, fmt.Errorf("unknown scale %q", ay.Scale)
		}
		if ay.Domain != nil {
			var b [2]float64
			for i, v := range ay.Domain {
				if b[i], err = strconv.ParseFloat(string(v), 64); err != nil {
					return nil, fmt.Errorf("domain: %w", err)
				}
			}
			s.Domain = &axis.Bounds{Min: b[0], Max: b[1]}
		}
		return s, nil

	case "category":
		return &axis.CategorySpec{
			Common:           com,
			Categories:       ay.Categories,
			UniqueCategories: ay.AllowDuplicatedCategory != nil && !*ay.AllowDuplicatedCategory,
		}, nil

	case "time":
		s := &axis.TimeSpec{Common: com, TickCount: ay.TickCount}
		if ay.Domain != nil {
			var b [2]time.Time
			for i, v := range ay.Domain {
				if b[i], err = time.Parse(time.RFC3339, string(v)); err != nil {
					return nil, fmt.Errorf("domain: %w", err)
				}
			}
			s.Domain = &axis.TimeBounds{Min: b[0], Max: b[1]}
		}
		return s, nil
	}
	return nil, fmt.Errorf("unknown axis type %q", ay.Type)
}

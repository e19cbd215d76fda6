// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chartsync renders a set of synchronized charts to SVG.
//
// Usage:
//
//	chartsync render --config charts.yaml [--events script] [-o out.svg] DATA...
//	chartsync axes --config charts.yaml DATA...
//
// DATA is a CSV file, an Excel workbook (.xlsx), or Go benchmark
// output (.txt or .bench). With one DATA file, every chart shows it;
// otherwise there must be one per chart, in configuration order.
//
// The event script replays pointer input against the charts before
// rendering, so the image shows the resulting cursor and brush
// windows. Each line is one event, with pixel coordinates relative
// to the chart:
//
//	hover CHART X Y
//	leave CHART
//	brush CHART down start|end|slide X
//	brush CHART move X
//	brush CHART up X [invalid]
//	window CHART START END
//	resize CHART WIDTH HEIGHT
package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/aclements/go-chartsync/chart"
	"github.com/aclements/go-chartsync/chartsync"
	"github.com/aclements/go-chartsync/config"
	"github.com/aclements/go-chartsync/dataset"
	"github.com/aclements/go-chartsync/render"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagConfig string
	flagEvents string
	flagOutput string
	flagSheet  string
	flagForce  bool
)

func main() {
	log.SetPrefix("chartsync: ")
	log.SetFlags(0)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "chartsync",
		Short:        "Render synchronized charts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "chart configuration `file` (required)")
	root.PersistentFlags().StringVar(&flagSheet, "sheet", "", "sheet to read from .xlsx data (default first)")
	root.MarkPersistentFlagRequired("config")

	renderCmd := &cobra.Command{
		Use:   "render DATA...",
		Short: "Render charts to SVG",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write SVG to `file` (default stdout)")
	renderCmd.Flags().StringVar(&flagEvents, "events", "", "replay event script `file` before rendering")
	renderCmd.Flags().BoolVar(&flagForce, "force", false, "write SVG to stdout even if it is a terminal")

	axesCmd := &cobra.Command{
		Use:   "axes DATA...",
		Short: "Print the resolved axes of each chart",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAxes,
	}

	root.AddCommand(renderCmd, axesCmd)
	return root
}

// loadCharts builds the configured charts over the data files. Charts
// with a sync ID share one registry.
func loadCharts(paths []string) ([]*chart.Chart, error) {
	f, err := config.LoadFile(flagConfig)
	if err != nil {
		return nil, err
	}
	if len(paths) != 1 && len(paths) != len(f.Charts) {
		return nil, fmt.Errorf("have %d charts but %d data files", len(f.Charts), len(paths))
	}
	var data []*dataset.Dataset
	for _, path := range paths {
		d, err := readData(path)
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}

	reg := &chartsync.Registry{Warning: log.Default()}
	var charts []*chart.Chart
	for i, cfg := range f.Charts {
		d := data[0]
		if len(data) > 1 {
			d = data[i]
		}
		c, err := chart.New(cfg, d, reg)
		if err != nil {
			return nil, fmt.Errorf("chart %s: %w", cfg.ID, err)
		}
		charts = append(charts, c)
	}
	return charts, nil
}

func readData(path string) (*dataset.Dataset, error) {
	var d *dataset.Dataset
	var err error
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		d, err = dataset.ReadXLSX(path, flagSheet)
	case ".csv", ".txt", ".bench":
		var r *os.File
		if r, err = os.Open(path); err != nil {
			return nil, err
		}
		defer r.Close()
		if ext == ".csv" {
			d, err = dataset.ReadCSV(r)
		} else {
			d, err = dataset.ReadBenchmarks(r)
		}
	default:
		return nil, fmt.Errorf("%s: unknown data format", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	if flagOutput == "" && !flagForce && term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("refusing to write SVG to a terminal; use -o or --force")
	}
	charts, err := loadCharts(args)
	if err != nil {
		return err
	}

	if flagEvents != "" {
		f, err := os.Open(flagEvents)
		if err != nil {
			return err
		}
		evs, err := parseScript(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", flagEvents, err)
		}
		byID := make(map[string]*chart.Chart)
		for _, c := range charts {
			byID[c.ID()] = c
		}
		for _, ev := range evs {
			if err := apply(byID, ev); err != nil {
				return fmt.Errorf("%s: %w", flagEvents, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, charts...); err != nil {
		return err
	}
	if flagOutput == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	return os.WriteFile(flagOutput, buf.Bytes(), 0666)
}

func runAxes(cmd *cobra.Command, args []string) error {
	charts, err := loadCharts(args)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 1, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "chart\taxis\ttype\tdomain\trange\tticks\n")
	for _, c := range charts {
		for _, a := range c.Axes() {
			var labels []string
			for _, t := range a.Ticks {
				labels = append(labels, t.Label)
			}
			domain := fmt.Sprintf("[%.6g, %.6g]", a.Min, a.Max)
			if a.Categories != nil {
				domain = fmt.Sprintf("%q", a.Categories)
			}
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\t[%.6g, %.6g]\t%s\n",
				c.ID(), a.ID(), a.Type, domain, a.Range[0], a.Range[1], strings.Join(labels, " "))
		}
	}
	return tw.Flush()
}

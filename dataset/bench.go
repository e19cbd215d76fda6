// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bufio"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var benchConfigRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s]*):(?:[ \t]+(.*))?$`)

// ReadBenchmarks reads a Go benchmark results file [1] as a Dataset.
// Each benchmark result line becomes one row with fields "name" and
// "iterations", one field per configuration key in effect for that
// line, and one field per result unit (for example "ns/op").
//
// The field order is name, iterations, configuration keys (sorted),
// then units (sorted).
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
func ReadBenchmarks(r io.Reader) (*Dataset, error) {
	var rows []Row
	config := map[string]string{}
	configKeys, unitKeys := map[string]bool{}, map[string]bool{}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := benchConfigRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if !strings.HasPrefix(line, "Benchmark") {
			continue
		}
		row := parseBenchLine(line, config)
		if row == nil {
			continue
		}
		for k := range row {
			switch {
			case k == "name" || k == "iterations":
			case strings.Contains(k, "/"):
				unitKeys[k] = true
			default:
				configKeys[k] = true
			}
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	fields := []string{"name", "iterations"}
	fields = append(fields, sortedKeys(configKeys)...)
	fields = append(fields, sortedKeys(unitKeys)...)
	return &Dataset{Fields: fields, Rows: rows}, nil
}

func parseBenchLine(line string, config map[string]string) Row {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}
	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return nil
	}

	row := Row{"iterations": Num(float64(n))}
	for k, v := range config {
		row[k] = Parse(v)
	}

	name := strings.TrimPrefix(f[0], "Benchmark")
	// A trailing -N on the full name, after any sub-benchmarks, is
	// GOMAXPROCS.
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if procs, err := strconv.Atoi(name[i+1:]); err == nil {
			name = name[:i]
			row["gomaxprocs"] = Num(float64(procs))
		}
	}
	parts := strings.Split(name, "/")
	for _, part := range parts[1:] {
		if i := strings.Index(part, ":"); i >= 0 {
			row[part[:i]] = Parse(part[i+1:])
		}
	}
	row["name"] = Str(parts[0])

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		row[f[i+1]] = Num(val)
	}
	return row
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/densekit/matrix"
)

// parseFloats parses a comma-separated list; "" is the empty vector.
func parseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("value %d %q: %w", i+1, f, err)
		}
		out[i] = v
	}

	return out, nil
}

// parseArgs concatenates the values of every argument, each of which may
// itself be a comma-separated list.
func parseArgs(args []string) ([]float64, error) {
	var out []float64
	for _, arg := range args {
		vals, err := parseFloats(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, vals...)
	}
	if out == nil {
		out = []float64{}
	}

	return out, nil
}

// formatVector renders v as one bracketed, comma-separated line.
func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}

	return "[" + strings.Join(parts, ", ") + "]\n"
}

// formatMatrix renders a rows×cols row-major buffer one row per line.
func formatMatrix(data []float64, rows, cols int) (string, error) {
	m, err := matrix.NewDenseFrom(rows, cols, data)
	if err != nil {
		return "", err
	}

	return m.String(), nil
}

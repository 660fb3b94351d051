package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samcharles93/contfrac/internal/series"
)

// parseList parses "3,7,15" into numbers.
func parseList(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// parseArgs parses family arguments separated by ';', each a
// comma-separated list: "16,4;5,239" is two arguments of two elements.
func parseArgs(s string) ([]series.Arg, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	groups := strings.Split(s, ";")
	args := make([]series.Arg, 0, len(groups))
	for i, g := range groups {
		vals, err := parseList(g)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		if len(vals) == 0 {
			return nil, fmt.Errorf("argument %d is empty", i)
		}
		args = append(args, vals)
	}
	return args, nil
}

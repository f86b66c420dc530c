package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// parseWorkersFlag maps "auto" to 0, which runOptimization expands to
// GOMAXPROCS at start.
func parseWorkersFlag(s string) (int, error) {
	if strings.EqualFold(s, "auto") {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("workers must be a positive integer or \"auto\", got %q", s)
	}
	if n < 1 {
		return 0, fmt.Errorf("workers must be >= 1, got %d", n)
	}
	return n, nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Package rank orders places and services by their distance text
package rank

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var distancePattern = regexp.MustCompile(`(?i)^([\d.]+)\s*(km|m)$`)

// Distancer is anything with a unit-suffixed distance label
type Distancer interface {
	DistanceLabel() string
}

// ParseDistanceKm converts "1.2 km" or "350 m" into kilometres.
// Text that does not match exactly, surrounding whitespace included, returns
// +Inf so it sorts after everything else.
func ParseDistanceKm(s string) float64 {
	m := distancePattern.FindStringSubmatch(s)
	if m == nil {
		return math.Inf(1)
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return math.Inf(1)
	}

	if strings.EqualFold(m[2], "m") {
		return value / 1000
	}
	return value
}

// SortByDistance returns a copy of items ordered nearest first.
// Items with equal or unparseable distances keep their input order.
func SortByDistance[T Distancer](items []T) []T {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []T{}
	}

	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(ParseDistanceKm(a.DistanceLabel()), ParseDistanceKm(b.DistanceLabel()))
	})
	return sorted
}

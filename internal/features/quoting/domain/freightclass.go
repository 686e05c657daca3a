package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DensityClassRow is one row of the density-to-freight-class reference
// table as stored. RangeLabel encodes an interval in one of three forms:
// "Less than X", "A but less than B", or "X or greater".
type DensityClassRow struct {
	// Order defines the evaluation sequence; rows are matched ascending.
	Order int `json:"order"`
	// RangeLabel is the stored density interval label.
	RangeLabel string `json:"density_range"`
	// FreightClass is the NMFC-style class for this density band.
	FreightClass float64 `json:"freight_class"`
}

// intervalKind discriminates the three label grammars.
type intervalKind int

const (
	intervalLessThan intervalKind = iota
	intervalBetween
	intervalGreaterOrEqual
)

// densityInterval is a RangeLabel parsed once at table construction, so
// classification never re-parses strings.
type densityInterval struct {
	kind intervalKind
	min  float64
	max  float64
}

// contains reports whether d falls inside the interval. Between intervals
// are half-open [min, max).
func (iv densityInterval) contains(d float64) bool {
	switch iv.kind {
	case intervalLessThan:
		return d < iv.max
	case intervalBetween:
		return d >= iv.min && d < iv.max
	default:
		return d >= iv.min
	}
}

const (
	labelLessThanPrefix  = "less than "
	labelButLessThan     = " but less than "
	labelOrGreaterSuffix = " or greater"
)

// parseRangeLabel parses a stored density range label into its interval.
func parseRangeLabel(label string) (densityInterval, error) {
	trimmed := strings.TrimSpace(label)
	lower := strings.ToLower(trimmed)

	switch {
	case strings.HasPrefix(lower, labelLessThanPrefix):
		max, err := parseBound(trimmed[len(labelLessThanPrefix):])
		if err != nil {
			return densityInterval{}, fmt.Errorf("invalid density range %q: %w", label, err)
		}
		return densityInterval{kind: intervalLessThan, max: max}, nil

	case strings.Contains(lower, labelButLessThan):
		idx := strings.Index(lower, labelButLessThan)
		min, err := parseBound(trimmed[:idx])
		if err != nil {
			return densityInterval{}, fmt.Errorf("invalid density range %q: %w", label, err)
		}
		max, err := parseBound(trimmed[idx+len(labelButLessThan):])
		if err != nil {
			return densityInterval{}, fmt.Errorf("invalid density range %q: %w", label, err)
		}
		return densityInterval{kind: intervalBetween, min: min, max: max}, nil

	case strings.HasSuffix(lower, labelOrGreaterSuffix):
		min, err := parseBound(trimmed[:len(trimmed)-len(labelOrGreaterSuffix)])
		if err != nil {
			return densityInterval{}, fmt.Errorf("invalid density range %q: %w", label, err)
		}
		return densityInterval{kind: intervalGreaterOrEqual, min: min}, nil
	}

	return densityInterval{}, fmt.Errorf("unrecognized density range label %q", label)
}

func parseBound(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// classBand pairs a parsed interval with its class.
type classBand struct {
	interval densityInterval
	class    float64
}

// ClassTable is the density classification table, parsed and ordered, ready
// for repeated lookups.
type ClassTable struct {
	bands []classBand
}

// NewClassTable builds a ClassTable from stored rows. Rows are sorted by
// Order before parsing; the input slice is not modified. An empty input is
// ErrEmptyClassTable.
func NewClassTable(rows []DensityClassRow) (*ClassTable, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyClassTable
	}

	ordered := make([]DensityClassRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	bands := make([]classBand, 0, len(ordered))
	for _, row := range ordered {
		iv, err := parseRangeLabel(row.RangeLabel)
		if err != nil {
			return nil, err
		}
		bands = append(bands, classBand{interval: iv, class: row.FreightClass})
	}

	return &ClassTable{bands: bands}, nil
}

// Classify returns the freight class for a density in pounds per cubic foot.
// Rows are tested in order and the first match wins. If no interval matches
// (a gap in the reference data), the last row's class is returned: unmatched
// shipments price at the bottom of the table rather than failing.
func (t *ClassTable) Classify(densityPCF float64) float64 {
	for _, band := range t.bands {
		if band.interval.contains(densityPCF) {
			return band.class
		}
	}
	return t.bands[len(t.bands)-1].class
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nmfcStyleRows() []DensityClassRow {
	return []DensityClassRow{
		{Order: 1, RangeLabel: "Less than 1", FreightClass: 400},
		{Order: 2, RangeLabel: "1 but less than 2", FreightClass: 300},
		{Order: 3, RangeLabel: "2 but less than 4", FreightClass: 250},
		{Order: 4, RangeLabel: "4 but less than 6", FreightClass: 175},
		{Order: 5, RangeLabel: "6 but less than 8", FreightClass: 125},
		{Order: 6, RangeLabel: "8 but less than 10", FreightClass: 100},
		{Order: 7, RangeLabel: "10 but less than 12", FreightClass: 92.5},
		{Order: 8, RangeLabel: "12 but less than 15", FreightClass: 85},
		{Order: 9, RangeLabel: "15 but less than 22.5", FreightClass: 70},
		{Order: 10, RangeLabel: "22.5 but less than 30", FreightClass: 65},
		{Order: 11, RangeLabel: "30 or greater", FreightClass: 60},
	}
}

// TestParseRangeLabel verifies the three label grammars and their bounds.
func TestParseRangeLabel(t *testing.T) {
	tests := []struct {
		label string
		kind  intervalKind
		min   float64
		max   float64
	}{
		{"Less than 1", intervalLessThan, 0, 1},
		{"less than 0.5", intervalLessThan, 0, 0.5},
		{"1 but less than 2", intervalBetween, 1, 2},
		{"15 but less than 22.5", intervalBetween, 15, 22.5},
		{"2 BUT LESS THAN 4", intervalBetween, 2, 4},
		{"30 or greater", intervalGreaterOrEqual, 30, 0},
		{"  50 or greater  ", intervalGreaterOrEqual, 50, 0},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			iv, err := parseRangeLabel(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, iv.kind)
			assert.Equal(t, tt.min, iv.min)
			assert.Equal(t, tt.max, iv.max)
		})
	}
}

// TestParseRangeLabel_Invalid verifies malformed labels are rejected.
func TestParseRangeLabel_Invalid(t *testing.T) {
	for _, label := range []string{"", "between 1 and 2", "less than abc", "x but less than 2", "or greater"} {
		_, err := parseRangeLabel(label)
		assert.Error(t, err, "label %q", label)
	}
}

// TestNewClassTable_Empty verifies an empty table is rejected.
func TestNewClassTable_Empty(t *testing.T) {
	_, err := NewClassTable(nil)
	assert.ErrorIs(t, err, ErrEmptyClassTable)
}

// TestNewClassTable_SortsByOrder verifies rows are evaluated by Order, not
// by input position, and the input slice is left untouched.
func TestNewClassTable_SortsByOrder(t *testing.T) {
	rows := []DensityClassRow{
		{Order: 2, RangeLabel: "1 but less than 2", FreightClass: 300},
		{Order: 1, RangeLabel: "Less than 1", FreightClass: 400},
	}

	table, err := NewClassTable(rows)
	require.NoError(t, err)

	assert.Equal(t, 400.0, table.Classify(0.5))
	assert.Equal(t, 300.0, table.Classify(1.5))
	assert.Equal(t, 2, rows[0].Order)
}

// TestClassify verifies first-match classification over a realistic table,
// including interval boundaries.
func TestClassify(t *testing.T) {
	table, err := NewClassTable(nmfcStyleRows())
	require.NoError(t, err)

	tests := []struct {
		density float64
		want    float64
	}{
		{0.2, 400},
		{0.999, 400},
		{1, 300},
		{1.5, 300},
		{2, 250},
		{5, 175},
		{9.9, 100},
		{11, 92.5},
		{22.5, 65},
		{29.999, 65},
		{30, 60},
		{500, 60},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Classify(tt.density), "density %g", tt.density)
	}
}

// TestClassify_GapFallsToLastRow verifies a density covered by no interval
// prices at the last row's class instead of failing.
func TestClassify_GapFallsToLastRow(t *testing.T) {
	table, err := NewClassTable([]DensityClassRow{
		{Order: 1, RangeLabel: "Less than 1", FreightClass: 400},
		{Order: 2, RangeLabel: "2 but less than 4", FreightClass: 250},
	})
	require.NoError(t, err)

	// 1.5 sits in the gap between the two intervals.
	assert.Equal(t, 250.0, table.Classify(1.5))
}

// TestClassify_MonotonicNonIncreasing verifies that denser freight never
// classifies higher than lighter freight.
func TestClassify_MonotonicNonIncreasing(t *testing.T) {
	table, err := NewClassTable(nmfcStyleRows())
	require.NoError(t, err)

	prev := table.Classify(0.1)
	for d := 0.2; d < 40; d += 0.1 {
		cur := table.Classify(d)
		assert.LessOrEqual(t, cur, prev, "density %g", d)
		prev = cur
	}
}

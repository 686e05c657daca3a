package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMMToInches verifies millimeter to inch conversion.
func TestMMToInches(t *testing.T) {
	assert.InDelta(t, 1.0, MMToInches(25.4), 0.001)
	assert.InDelta(t, 120.0, MMToInches(3048), 0.001)
	assert.Zero(t, MMToInches(0))
}

// TestGramsToPounds verifies gram to pound conversion.
func TestGramsToPounds(t *testing.T) {
	assert.InDelta(t, 1.0, GramsToPounds(453.592), 0.001)
	assert.InDelta(t, 500.0, GramsToPounds(226796.185), 0.001)
	assert.Zero(t, GramsToPounds(0))
}

// TestCubicFeet verifies volume computation from inch dimensions.
func TestCubicFeet(t *testing.T) {
	// 12in cube is exactly one cubic foot.
	assert.InDelta(t, 1.0, CubicFeet(12, 12, 12), 0.0001)
	assert.InDelta(t, 333.333, CubicFeet(120, 80, 60), 0.001)
}

// TestDensityPCF verifies density computation and its non-positive-weight guard.
func TestDensityPCF(t *testing.T) {
	assert.InDelta(t, 1.5, DensityPCF(120, 80, 60, 500), 0.0001)
	assert.InDelta(t, 10.0, DensityPCF(12, 12, 12, 10), 0.0001)

	assert.Zero(t, DensityPCF(120, 80, 60, 0))
	assert.Zero(t, DensityPCF(120, 80, 60, -5))
}

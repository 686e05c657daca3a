package domain

// Conversion factors between stored units (millimeters/grams) and the
// pricing units used by the rate tables (inches/pounds).
const (
	inchesPerMillimeter = 0.0393701
	poundsPerGram       = 0.00220462
	cubicInchesPerFoot  = 1728.0
)

// MMToInches converts a length in millimeters to inches.
func MMToInches(mm float64) float64 {
	return mm * inchesPerMillimeter
}

// GramsToPounds converts a mass in grams to pounds.
func GramsToPounds(g float64) float64 {
	return g * poundsPerGram
}

// CubicFeet returns the volume in cubic feet of a box with the given
// dimensions in inches.
func CubicFeet(lengthIn, widthIn, heightIn float64) float64 {
	return lengthIn * widthIn * heightIn / cubicInchesPerFoot
}

// DensityPCF returns the volumetric density in pounds per cubic foot for a
// box with dimensions in inches and weight in pounds. A non-positive weight
// yields 0 rather than a meaningless negative density.
func DensityPCF(lengthIn, widthIn, heightIn, weightLb float64) float64 {
	if weightLb <= 0 {
		return 0
	}
	return weightLb / CubicFeet(lengthIn, widthIn, heightIn)
}

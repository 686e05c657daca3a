package domain

import "fmt"

// bandWidthKm is the width of each closed distance bucket. Distances at or
// beyond openEndedFromKm fall into the single open-ended top band.
const (
	bandWidthKm     = 100
	openEndedFromKm = 1000
)

// OpenEndedBand is the label for distances of 1000 km and beyond.
const OpenEndedBand = "1000+km"

// DistanceBand maps a distance in kilometers to the discrete band label used
// as a pricing-table key. Buckets are half-open [min, max+1): 250 km falls
// into "200-299km". Negative input is a caller error.
func DistanceBand(distanceKm float64) string {
	if distanceKm >= openEndedFromKm {
		return OpenEndedBand
	}
	lower := int(distanceKm) / bandWidthKm * bandWidthKm
	return fmt.Sprintf("%d-%dkm", lower, lower+bandWidthKm-1)
}

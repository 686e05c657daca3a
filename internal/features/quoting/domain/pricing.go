package domain

import (
	"math"
	"sort"
	"strings"
)

// PriceTableRow is one row of the class/distance/weight rate table. A nil
// WeightBreak marks the catch-all row for its (class, band) pair; otherwise
// breakpoints form an ascending ladder of weight tiers.
type PriceTableRow struct {
	FreightClass int      `json:"freight_class"`
	DistanceBand string   `json:"distance_band"`
	WeightBreak  *float64 `json:"weight_break,omitempty"`
	RatePerCwt   float64  `json:"rate_per_cwt"`
}

// Price is a resolved unit rate plus the line price it implies for the
// weight it was resolved against.
type Price struct {
	RatePerCwt float64 `json:"rate_per_cwt"`
	LinePrice  float64 `json:"line_price"`
}

// RoundClass rounds a (possibly fractional) freight class to the integer
// key used by the price table. Only the lookup rounds; the classified value
// itself is reported unrounded.
func RoundClass(freightClass float64) int {
	return int(math.Round(freightClass))
}

// matchExactBand keeps the rows whose stored distance band equals band.
func matchExactBand(rows []PriceTableRow, band string) []PriceTableRow {
	var out []PriceTableRow
	for _, r := range rows {
		if r.DistanceBand == band {
			out = append(out, r)
		}
	}
	return out
}

// matchRelaxedBand tolerates legacy rows whose distance value was stored as
// a bare lower-bound number instead of the full band label. It applies only
// to ranged labels ("200-299km"); for those it keeps rows equal to the
// label, equal to the lower-bound token, or prefixed by it.
func matchRelaxedBand(rows []PriceTableRow, band string) []PriceTableRow {
	dash := strings.Index(band, "-")
	if dash < 0 {
		return nil
	}
	lowerBound := band[:dash]

	var out []PriceTableRow
	for _, r := range rows {
		if r.DistanceBand == band || r.DistanceBand == lowerBound || strings.HasPrefix(r.DistanceBand, lowerBound) {
			out = append(out, r)
		}
	}
	return out
}

// selectWeightTier picks the row whose weight tier covers weightLb: the
// greatest breakpoint not exceeding the weight, saturating at the highest
// breakpoint. When no breakpoint lies at or below the weight, the catch-all
// (breakpoint-absent) row applies if one exists.
func selectWeightTier(rows []PriceTableRow, weightLb float64) (PriceTableRow, bool) {
	var tiered []PriceTableRow
	var catchAll *PriceTableRow
	for i, r := range rows {
		if r.WeightBreak != nil {
			tiered = append(tiered, r)
		} else if catchAll == nil {
			catchAll = &rows[i]
		}
	}

	sort.SliceStable(tiered, func(i, j int) bool {
		return *tiered[i].WeightBreak < *tiered[j].WeightBreak
	})

	for i := len(tiered) - 1; i >= 0; i-- {
		if *tiered[i].WeightBreak <= weightLb {
			return tiered[i], true
		}
	}

	if catchAll != nil {
		return *catchAll, true
	}
	return PriceTableRow{}, false
}

// ResolvePrice resolves a unit rate for one box from the price rows of a
// single (rounded) freight class. Band matching relaxes tier by tier: the
// exact label first, then legacy lower-bound forms, then any distance for
// the class. Each tier runs only when the previous one matched nothing.
// The boolean is false when no price exists in these rows; that is a
// signal to widen the class search, not an error.
func ResolvePrice(classRows []PriceTableRow, band string, weightLb float64) (Price, bool) {
	candidates := matchExactBand(classRows, band)
	if len(candidates) == 0 {
		candidates = matchRelaxedBand(classRows, band)
	}
	if len(candidates) == 0 {
		candidates = classRows
	}

	row, ok := selectWeightTier(candidates, weightLb)
	if !ok {
		return Price{}, false
	}

	return Price{
		RatePerCwt: row.RatePerCwt,
		LinePrice:  row.RatePerCwt * weightLb / 100,
	}, true
}

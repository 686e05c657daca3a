package domain

import "math"

// RateSource tags how a quote's total was priced.
type RateSource string

const (
	// RateSourceLocalTable marks totals computed from the local rate tables.
	RateSourceLocalTable RateSource = "local_table"
	// RateSourceExternal marks totals supplied by the external rate API.
	RateSourceExternal RateSource = "external"
)

// Box is one physical package as submitted: dimensions in millimeters,
// weight in grams. All four fields must be positive; absence is a
// validation error upstream, never a zero default.
type Box struct {
	LengthMM float64 `json:"length_mm"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
	WeightG  float64 `json:"weight_g"`
}

// Warehouse is a shipping origin. SalesChannelID is empty when the
// warehouse is not bound to a channel.
type Warehouse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PostalCode     string `json:"postal_code"`
	SalesChannelID string `json:"sales_channel_id,omitempty"`
}

// DiscountSetting is the global percentage discount applied to the
// subtotal when enabled.
type DiscountSetting struct {
	IsEnabled  bool    `json:"is_enabled"`
	Percentage float64 `json:"percentage"`
}

// QuoteRequest is the core's input for one shipment quote.
type QuoteRequest struct {
	// DestinationPostal is the destination postal code; required.
	DestinationPostal string `json:"destination_postal_code"`
	// WarehouseID explicitly selects the origin warehouse when set.
	WarehouseID string `json:"warehouse_id,omitempty"`
	// SalesChannelID selects the origin by channel when no warehouse id
	// is given.
	SalesChannelID string `json:"sales_channel_id,omitempty"`
	// Boxes are the packages to rate, in caller order.
	Boxes []Box `json:"boxes"`
}

// BoxQuote is the priced result for one box. Dimensions are echoed in
// inches, weight in pounds. Immutable once computed.
type BoxQuote struct {
	LengthIn     float64 `json:"length_in"`
	WidthIn      float64 `json:"width_in"`
	HeightIn     float64 `json:"height_in"`
	WeightLb     float64 `json:"weight_lb"`
	CubicFeet    float64 `json:"cubic_feet"`
	DensityPCF   float64 `json:"density_pcf"`
	FreightClass float64 `json:"freight_class"`
	DistanceKm   float64 `json:"distance_km"`
	RatePerCwt   float64 `json:"rate_per_cwt"`
	LinePrice    float64 `json:"line_price"`
}

// ShipmentQuote is the full quote for a shipment. Boxes preserve the input
// order so callers can reconcile line items.
type ShipmentQuote struct {
	DestinationPostal string     `json:"destination_postal_code"`
	Warehouse         *Warehouse `json:"warehouse,omitempty"`
	OriginPostal      string     `json:"origin_postal_code"`
	DistanceKm        float64    `json:"distance_km"`
	DistanceBand      string     `json:"distance_band"`
	Boxes             []BoxQuote `json:"boxes"`
	Subtotal          float64    `json:"subtotal"`
	DiscountPercent   float64    `json:"discount_percent"`
	Total             float64    `json:"total"`
	Currency          string     `json:"currency"`
	RateSource        RateSource `json:"rate_source"`
}

// moneyScale is the output precision for monetary and derived values.
// Intermediate arithmetic stays at full precision; rounding happens once,
// here, so per-box rounding error never compounds.
const moneyScale = 1000

func roundOut(v float64) float64 {
	return math.Round(v*moneyScale) / moneyScale
}

// RoundForOutput rounds every monetary and derived numeric field to the
// fixed output precision. Call it once, after assembly is complete.
func (q *ShipmentQuote) RoundForOutput() {
	q.DistanceKm = roundOut(q.DistanceKm)
	q.Subtotal = roundOut(q.Subtotal)
	q.Total = roundOut(q.Total)
	for i := range q.Boxes {
		b := &q.Boxes[i]
		b.LengthIn = roundOut(b.LengthIn)
		b.WidthIn = roundOut(b.WidthIn)
		b.HeightIn = roundOut(b.HeightIn)
		b.WeightLb = roundOut(b.WeightLb)
		b.CubicFeet = roundOut(b.CubicFeet)
		b.DensityPCF = roundOut(b.DensityPCF)
		b.DistanceKm = roundOut(b.DistanceKm)
		b.RatePerCwt = roundOut(b.RatePerCwt)
		b.LinePrice = roundOut(b.LinePrice)
	}
}

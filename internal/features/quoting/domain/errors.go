package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingDestination is returned when a quote request carries no
	// destination postal code.
	ErrMissingDestination = errors.New("destination postal code is required")
	// ErrNoBoxes is returned when a quote request carries neither boxes
	// nor items.
	ErrNoBoxes = errors.New("at least one box or item is required")
	// ErrNoWarehouse is returned when no warehouse exists to ship from.
	ErrNoWarehouse = errors.New("no warehouses configured")
	// ErrNoReferenceData is returned when the freight price table is empty.
	ErrNoReferenceData = errors.New("freight price table is empty")
	// ErrEmptyClassTable is returned when the density classification table
	// is empty.
	ErrEmptyClassTable = errors.New("freight class table is empty")
)

// InvalidBoxError reports a box whose dimensions or weight are missing or
// non-positive. Index refers to the box's position in the request.
type InvalidBoxError struct {
	Index  int
	Reason string
}

func (e *InvalidBoxError) Error() string {
	return fmt.Sprintf("invalid box at index %d: %s", e.Index, e.Reason)
}

// UnresolvablePriceError reports that no rate row matched even after every
// fallback tier, naming the attempted lookup for diagnosis.
type UnresolvablePriceError struct {
	FreightClass float64
	DistanceBand string
	WeightLb     float64
}

func (e *UnresolvablePriceError) Error() string {
	return fmt.Sprintf("no freight price for class %g, distance %s, weight %.2f lb",
		e.FreightClass, e.DistanceBand, e.WeightLb)
}

// Distance failure codes reported by the distance collaborator.
const (
	DistanceNoRoute        = "NO_ROUTE"
	DistanceRateLimited    = "RATE_LIMITED"
	DistanceInvalidAddress = "INVALID_ADDRESS"
)

// DistanceUnavailableError reports a failed distance lookup between two
// postal codes. During nearest-warehouse search it skips the candidate;
// for the shipment-level lookup it is fatal.
type DistanceUnavailableError struct {
	Origin      string
	Destination string
	Code        string
}

func (e *DistanceUnavailableError) Error() string {
	return fmt.Sprintf("distance unavailable from %s to %s: %s", e.Origin, e.Destination, e.Code)
}

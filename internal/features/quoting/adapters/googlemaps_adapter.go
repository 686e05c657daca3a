package adapters

import (
	"context"
	"fmt"
	"strings"

	"freight-rater/internal/features/quoting/domain"

	"googlemaps.github.io/maps"
)

// GoogleMapsAdapter resolves road distances through the Google Maps
// Distance Matrix API.
type GoogleMapsAdapter struct {
	client *maps.Client
}

// NewGoogleMapsAdapter creates a distance provider with the given API key.
func NewGoogleMapsAdapter(apiKey string) (*GoogleMapsAdapter, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleMapsAdapter{client: client}, nil
}

// RoadDistanceMeters returns the driving distance in meters between two
// postal-code-like address strings. Failures map to the typed codes of
// domain.DistanceUnavailableError.
func (a *GoogleMapsAdapter) RoadDistanceMeters(ctx context.Context, origin, destination string) (float64, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := a.client.DistanceMatrix(ctx, req)
	if err != nil {
		return 0, &domain.DistanceUnavailableError{
			Origin:      origin,
			Destination: destination,
			Code:        statusFromAPIError(err),
		}
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, &domain.DistanceUnavailableError{
			Origin:      origin,
			Destination: destination,
			Code:        domain.DistanceNoRoute,
		}
	}

	element := resp.Rows[0].Elements[0]
	switch element.Status {
	case "OK":
		return float64(element.Distance.Meters), nil
	case "NOT_FOUND":
		return 0, &domain.DistanceUnavailableError{
			Origin:      origin,
			Destination: destination,
			Code:        domain.DistanceInvalidAddress,
		}
	default: // ZERO_RESULTS and anything unexpected
		return 0, &domain.DistanceUnavailableError{
			Origin:      origin,
			Destination: destination,
			Code:        domain.DistanceNoRoute,
		}
	}
}

// statusFromAPIError maps a Maps API transport/status error onto the
// distance failure taxonomy.
func statusFromAPIError(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "OVER_QUERY_LIMIT") || strings.Contains(msg, "OVER_DAILY_LIMIT"):
		return domain.DistanceRateLimited
	case strings.Contains(msg, "INVALID_REQUEST"):
		return domain.DistanceInvalidAddress
	default:
		return domain.DistanceNoRoute
	}
}

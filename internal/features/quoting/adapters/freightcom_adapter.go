package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"freight-rater/internal/core/config"
	"freight-rater/internal/core/httpclient"
	"freight-rater/internal/core/logger"
	"freight-rater/internal/features/quoting/domain"
	"freight-rater/internal/features/quoting/ports"

	"go.uber.org/zap"
)

// FreightcomAdapter quotes shipments through the Freightcom-style rating
// API: submit a rate request, poll the returned request id until the
// carrier responses are in, take the first rate. Every failure mode is an
// ordinary error; the caller falls back to the local tables.
type FreightcomAdapter struct {
	client *http.Client
	cfg    config.FreightcomConfig
}

// NewFreightcomAdapter creates a new external rate adapter.
func NewFreightcomAdapter(cfg config.FreightcomConfig) *FreightcomAdapter {
	return &FreightcomAdapter{
		client: httpclient.NewClient(15 * time.Second),
		cfg:    cfg,
	}
}

type freightcomPackage struct {
	Measurements struct {
		Weight struct {
			Unit  string  `json:"unit"`
			Value float64 `json:"value"`
		} `json:"weight"`
		Cuboid struct {
			Unit   string  `json:"unit"`
			Length float64 `json:"l"`
			Width  float64 `json:"w"`
			Height float64 `json:"h"`
		} `json:"cuboid"`
	} `json:"measurements"`
}

type freightcomRateRequest struct {
	Services []string `json:"services"`
	Details  struct {
		Origin struct {
			PostalCode string `json:"postal_code"`
		} `json:"origin"`
		Destination struct {
			PostalCode string `json:"postal_code"`
		} `json:"destination"`
		ExpectedShipDate struct {
			Year  int `json:"year"`
			Month int `json:"month"`
			Day   int `json:"day"`
		} `json:"expected_ship_date"`
		Packages struct {
			Packages []freightcomPackage `json:"packages"`
		} `json:"packages"`
	} `json:"details"`
}

type freightcomSubmitResponse struct {
	RequestID string `json:"request_id"`
}

type freightcomRate struct {
	ServiceName string `json:"service_name"`
	CarrierName string `json:"carrier_name"`
	Total       struct {
		Value    float64 `json:"value"`
		Currency string  `json:"currency"`
	} `json:"total"`
}

type freightcomPollResponse struct {
	Status struct {
		Done     bool `json:"done"`
		Total    int  `json:"total"`
		Complete int  `json:"complete"`
	} `json:"status"`
	Rates []freightcomRate `json:"rates"`
}

// GetQuote submits a rate request and polls for completion within the
// configured ceiling, then applies the adapter's markup and discount.
func (a *FreightcomAdapter) GetQuote(ctx context.Context, originPostal, destinationPostal string, boxes []domain.Box) (ports.ExternalRate, error) {
	if a.cfg.URL == "" || a.cfg.APIKey == "" {
		return ports.ExternalRate{}, fmt.Errorf("freightcom credentials not configured")
	}

	requestID, err := a.submit(ctx, originPostal, destinationPostal, boxes)
	if err != nil {
		return ports.ExternalRate{}, err
	}

	rate, err := a.pollUntilDone(ctx, requestID)
	if err != nil {
		return ports.ExternalRate{}, err
	}

	total := rate.Total.Value
	total *= 1 + a.cfg.MarkupPercent/100
	total *= 1 - a.cfg.DiscountPercent/100

	logger.Get().Debug("external rate resolved",
		zap.String("request_id", requestID),
		zap.String("carrier", rate.CarrierName),
		zap.Float64("total", total),
	)

	return ports.ExternalRate{
		Total:    total,
		Currency: rate.Total.Currency,
		Carrier:  rate.CarrierName,
	}, nil
}

func (a *FreightcomAdapter) submit(ctx context.Context, originPostal, destinationPostal string, boxes []domain.Box) (string, error) {
	var payload freightcomRateRequest
	payload.Services = a.cfg.Services
	payload.Details.Origin.PostalCode = originPostal
	payload.Details.Destination.PostalCode = destinationPostal

	shipDate := time.Now().AddDate(0, 0, 1)
	payload.Details.ExpectedShipDate.Year = shipDate.Year()
	payload.Details.ExpectedShipDate.Month = int(shipDate.Month())
	payload.Details.ExpectedShipDate.Day = shipDate.Day()

	for _, box := range boxes {
		var pkg freightcomPackage
		pkg.Measurements.Weight.Unit = "lb"
		pkg.Measurements.Weight.Value = domain.GramsToPounds(box.WeightG)
		pkg.Measurements.Cuboid.Unit = "in"
		pkg.Measurements.Cuboid.Length = domain.MMToInches(box.LengthMM)
		pkg.Measurements.Cuboid.Width = domain.MMToInches(box.WidthMM)
		pkg.Measurements.Cuboid.Height = domain.MMToInches(box.HeightMM)
		payload.Details.Packages.Packages = append(payload.Details.Packages.Packages, pkg)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode rate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.URL+"/rate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create rate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("rate submission returned status: %d", resp.StatusCode)
	}

	var submitted freightcomSubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&submitted); err != nil {
		return "", fmt.Errorf("failed to decode rate submission response: %w", err)
	}
	if submitted.RequestID == "" {
		return "", fmt.Errorf("rate submission returned no request id")
	}
	return submitted.RequestID, nil
}

// pollUntilDone polls the rate request with a hard attempt ceiling and a
// fixed inter-attempt delay. Exceeding the ceiling is a failure, never a
// retry.
func (a *FreightcomAdapter) pollUntilDone(ctx context.Context, requestID string) (freightcomRate, error) {
	interval := time.Duration(a.cfg.PollIntervalMS) * time.Millisecond

	for attempt := 1; attempt <= a.cfg.PollAttempts; attempt++ {
		status, err := a.poll(ctx, requestID)
		if err != nil {
			return freightcomRate{}, err
		}

		if status.Status.Done {
			if len(status.Rates) == 0 {
				return freightcomRate{}, fmt.Errorf("rate request %s completed with no rates", requestID)
			}
			// Rates arrive ordered by the API; the first is the chosen one.
			return status.Rates[0], nil
		}

		if attempt == a.cfg.PollAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return freightcomRate{}, ctx.Err()
		case <-time.After(interval):
		}
	}

	return freightcomRate{}, fmt.Errorf("rate request %s not completed after %d attempts", requestID, a.cfg.PollAttempts)
}

func (a *FreightcomAdapter) poll(ctx context.Context, requestID string) (freightcomPollResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.URL+"/rate/"+requestID, nil)
	if err != nil {
		return freightcomPollResponse{}, fmt.Errorf("failed to create poll request: %w", err)
	}
	req.Header.Set("Authorization", a.cfg.APIKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return freightcomPollResponse{}, fmt.Errorf("failed to poll rate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return freightcomPollResponse{}, fmt.Errorf("rate poll returned status: %d", resp.StatusCode)
	}

	var polled freightcomPollResponse
	if err := json.NewDecoder(resp.Body).Decode(&polled); err != nil {
		return freightcomPollResponse{}, fmt.Errorf("failed to decode rate poll response: %w", err)
	}
	return polled, nil
}

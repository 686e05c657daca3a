package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"freight-rater/internal/core/config"
	"freight-rater/internal/features/quoting/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func freightcomTestConfig(url string) config.FreightcomConfig {
	return config.FreightcomConfig{
		URL:            url,
		APIKey:         "test-key",
		Services:       []string{"ltl"},
		PollAttempts:   5,
		PollIntervalMS: 1,
	}
}

// TestFreightcomAdapter_GetQuote verifies the submit-then-poll flow: unit
// conversion in the payload, auth headers, and the first returned rate.
func TestFreightcomAdapter_GetQuote(t *testing.T) {
	polls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/rate":
			var payload freightcomRateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, []string{"ltl"}, payload.Services)
			assert.Equal(t, "10115", payload.Details.Origin.PostalCode)
			assert.Equal(t, "80331", payload.Details.Destination.PostalCode)
			require.Len(t, payload.Details.Packages.Packages, 1)
			pkg := payload.Details.Packages.Packages[0]
			assert.Equal(t, "lb", pkg.Measurements.Weight.Unit)
			assert.InDelta(t, 500.0, pkg.Measurements.Weight.Value, 0.001)
			assert.Equal(t, "in", pkg.Measurements.Cuboid.Unit)
			assert.InDelta(t, 120.0, pkg.Measurements.Cuboid.Length, 0.001)

			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{"request_id": "req-42"})

		case r.Method == http.MethodGet && r.URL.Path == "/rate/req-42":
			polls++
			var resp freightcomPollResponse
			if polls >= 2 {
				resp.Status.Done = true
				rate := freightcomRate{ServiceName: "ltl", CarrierName: "day-ross"}
				rate.Total.Value = 1000
				rate.Total.Currency = "CAD"
				resp.Rates = []freightcomRate{rate}
			}
			json.NewEncoder(w).Encode(resp)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	cfg := freightcomTestConfig(server.URL)
	cfg.MarkupPercent = 10
	cfg.DiscountPercent = 5
	adapter := NewFreightcomAdapter(cfg)

	rate, err := adapter.GetQuote(context.Background(), "10115", "80331", []domain.Box{
		{LengthMM: 3048, WidthMM: 2032, HeightMM: 1524, WeightG: 226_796.185},
	})
	require.NoError(t, err)

	// 1000 marked up 10 percent then discounted 5 percent.
	assert.InDelta(t, 1045.0, rate.Total, 0.001)
	assert.Equal(t, "CAD", rate.Currency)
	assert.Equal(t, "day-ross", rate.Carrier)
	assert.Equal(t, 2, polls)
}

// TestFreightcomAdapter_MissingCredentials verifies an unconfigured adapter
// fails immediately without calling anything.
func TestFreightcomAdapter_MissingCredentials(t *testing.T) {
	adapter := NewFreightcomAdapter(config.FreightcomConfig{})

	_, err := adapter.GetQuote(context.Background(), "10115", "80331", nil)
	assert.ErrorContains(t, err, "credentials")
}

// TestFreightcomAdapter_PollCeiling verifies a request that never completes
// fails after the configured number of attempts.
func TestFreightcomAdapter_PollCeiling(t *testing.T) {
	polls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"request_id": "req-slow"})
			return
		}
		polls++
		json.NewEncoder(w).Encode(freightcomPollResponse{})
	}))
	defer server.Close()

	cfg := freightcomTestConfig(server.URL)
	cfg.PollAttempts = 3
	adapter := NewFreightcomAdapter(cfg)

	_, err := adapter.GetQuote(context.Background(), "10115", "80331", nil)
	require.ErrorContains(t, err, "not completed after 3 attempts")
	assert.Equal(t, 3, polls)
}

// TestFreightcomAdapter_CompletedWithNoRates verifies a done status with an
// empty rate list is an error.
func TestFreightcomAdapter_CompletedWithNoRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"request_id": "req-empty"})
			return
		}
		var resp freightcomPollResponse
		resp.Status.Done = true
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	adapter := NewFreightcomAdapter(freightcomTestConfig(server.URL))

	_, err := adapter.GetQuote(context.Background(), "10115", "80331", nil)
	assert.ErrorContains(t, err, "no rates")
}

// TestFreightcomAdapter_SubmitRejected verifies a non-2xx submission fails
// without polling.
func TestFreightcomAdapter_SubmitRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter := NewFreightcomAdapter(freightcomTestConfig(server.URL))

	_, err := adapter.GetQuote(context.Background(), "10115", "80331", nil)
	assert.ErrorContains(t, err, "status: 401")
}

// TestFreightcomAdapter_MissingRequestID verifies a submission response
// without a request id is rejected.
func TestFreightcomAdapter_MissingRequestID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	adapter := NewFreightcomAdapter(freightcomTestConfig(server.URL))

	_, err := adapter.GetQuote(context.Background(), "10115", "80331", nil)
	assert.ErrorContains(t, err, "no request id")
}

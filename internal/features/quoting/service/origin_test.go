package service

import (
	"context"
	"errors"
	"testing"

	"freight-rater/internal/features/quoting/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveOrigin_ExplicitWarehouse verifies a requested warehouse id wins
// over every other signal.
func TestResolveOrigin_ExplicitWarehouse(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-1", PostalCode: "10115"},
		{ID: "wh-2", PostalCode: "20095", SalesChannelID: "ch-1"},
	}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
		WarehouseID:       "wh-1",
		SalesChannelID:    "ch-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "10115", postal)
	require.NotNil(t, wh)
	assert.Equal(t, "wh-1", wh.ID)
}

// TestResolveOrigin_UnknownWarehouseFallsThrough verifies an id that matches
// nothing degrades to the channel lookup instead of failing.
func TestResolveOrigin_UnknownWarehouseFallsThrough(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-2", PostalCode: "20095", SalesChannelID: "ch-1"},
	}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
		WarehouseID:       "wh-missing",
		SalesChannelID:    "ch-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "20095", postal)
	require.NotNil(t, wh)
	assert.Equal(t, "wh-2", wh.ID)
}

// TestResolveOrigin_ChannelSkipsWarehouseWithoutPostal verifies channel
// warehouses missing a postal code are passed over.
func TestResolveOrigin_ChannelSkipsWarehouseWithoutPostal(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-1", PostalCode: "", SalesChannelID: "ch-1"},
		{ID: "wh-2", PostalCode: "20095", SalesChannelID: "ch-1"},
	}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
		SalesChannelID:    "ch-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "20095", postal)
	require.NotNil(t, wh)
	assert.Equal(t, "wh-2", wh.ID)
}

// TestResolveOrigin_ChannelOverride verifies the configured channel origin
// applies when the channel has no warehouses, yielding no warehouse record.
func TestResolveOrigin_ChannelOverride(t *testing.T) {
	f := newFixture()
	f.opts.ChannelOrigins = map[string]string{"ch-pop-up": "50667"}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
		SalesChannelID:    "ch-pop-up",
	})
	require.NoError(t, err)
	assert.Equal(t, "50667", postal)
	assert.Nil(t, wh)
}

// TestResolveOrigin_NearestWarehouse verifies the closest warehouse by road
// distance wins when nothing narrows the choice.
func TestResolveOrigin_NearestWarehouse(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-far", PostalCode: "10115"},
		{ID: "wh-near", PostalCode: "20095"},
	}
	f.distance.metersByOrigin = map[string]float64{
		"10115": 50_000,
		"20095": 30_000,
	}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
	})
	require.NoError(t, err)
	assert.Equal(t, "20095", postal)
	require.NotNil(t, wh)
	assert.Equal(t, "wh-near", wh.ID)
}

// TestResolveOrigin_NearestSkipsFailingCandidate verifies a candidate whose
// distance lookup fails is skipped, not fatal, while others succeed.
func TestResolveOrigin_NearestSkipsFailingCandidate(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-broken", PostalCode: "99999"},
		{ID: "wh-ok", PostalCode: "20095"},
	}
	f.distance.metersByOrigin = map[string]float64{"20095": 30_000}
	f.distance.errByOrigin = map[string]error{
		"99999": &domain.DistanceUnavailableError{Origin: "99999", Destination: "80331", Code: domain.DistanceInvalidAddress},
	}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
	})
	require.NoError(t, err)
	assert.Equal(t, "20095", postal)
	require.NotNil(t, wh)
	assert.Equal(t, "wh-ok", wh.ID)
}

// TestResolveOrigin_AllCandidatesFail verifies the search is fatal when no
// candidate's distance can be resolved.
func TestResolveOrigin_AllCandidatesFail(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-1", PostalCode: "10115"},
		{ID: "wh-2", PostalCode: "20095"},
	}
	f.distance.metersByOrigin = nil
	svc := f.build()

	_, _, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
	})

	var distErr *domain.DistanceUnavailableError
	require.ErrorAs(t, err, &distErr)
}

// TestResolveOrigin_FirstWarehouseFallback verifies the unfiltered first
// warehouse applies when no destination is available to measure against.
func TestResolveOrigin_FirstWarehouseFallback(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = []domain.Warehouse{
		{ID: "wh-1", PostalCode: "10115"},
		{ID: "wh-2", PostalCode: "20095"},
	}
	svc := f.build()

	postal, wh, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "10115", postal)
	require.NotNil(t, wh)
	assert.Equal(t, "wh-1", wh.ID)
}

// TestResolveOrigin_NoWarehouses verifies the dedicated error when the
// registry is empty and no override applies.
func TestResolveOrigin_NoWarehouses(t *testing.T) {
	f := newFixture()
	f.warehouses.warehouses = nil
	svc := f.build()

	_, _, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
	})
	assert.ErrorIs(t, err, domain.ErrNoWarehouse)
}

// TestResolveOrigin_RepositoryErrorPropagates verifies storage failures are
// wrapped and surfaced.
func TestResolveOrigin_RepositoryErrorPropagates(t *testing.T) {
	f := newFixture()
	f.warehouses.err = errors.New("connection reset")
	svc := f.build()

	_, _, err := svc.resolveOrigin(context.Background(), domain.QuoteRequest{
		DestinationPostal: "80331",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

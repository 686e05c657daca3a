package service

import (
	"context"
	"errors"
	"fmt"

	"freight-rater/internal/features/quoting/domain"

	"go.uber.org/zap"
)

// resolveOrigin picks the postal code a shipment originates from. Each step
// runs only when the previous signal is absent or yields nothing:
// explicit warehouse id, sales-channel warehouses, the configured
// channel→postal override map, nearest warehouse by road distance, then the
// first warehouse unfiltered. No warehouses at all is ErrNoWarehouse.
func (s *QuoteService) resolveOrigin(ctx context.Context, req domain.QuoteRequest) (string, *domain.Warehouse, error) {
	if req.WarehouseID != "" {
		wh, err := s.warehouses.GetByID(ctx, req.WarehouseID)
		if err != nil {
			return "", nil, fmt.Errorf("lookup warehouse %s: %w", req.WarehouseID, err)
		}
		if wh != nil && wh.PostalCode != "" {
			return wh.PostalCode, wh, nil
		}
	}

	if req.SalesChannelID != "" {
		channelWarehouses, err := s.warehouses.ListBySalesChannel(ctx, req.SalesChannelID)
		if err != nil {
			return "", nil, fmt.Errorf("lookup warehouses for channel %s: %w", req.SalesChannelID, err)
		}
		for i := range channelWarehouses {
			if channelWarehouses[i].PostalCode != "" {
				return channelWarehouses[i].PostalCode, &channelWarehouses[i], nil
			}
		}

		// Deployment-specific override: some channels ship from origins
		// that are not registered as warehouses.
		if postal, ok := s.channelOrigins[req.SalesChannelID]; ok && postal != "" {
			return postal, nil, nil
		}
	}

	all, err := s.warehouses.ListAll(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("list warehouses: %w", err)
	}
	if len(all) == 0 {
		return "", nil, domain.ErrNoWarehouse
	}

	if req.DestinationPostal != "" {
		if wh, err := s.nearestWarehouse(ctx, all, req.DestinationPostal); err != nil {
			return "", nil, err
		} else if wh != nil {
			return wh.PostalCode, wh, nil
		}
	}

	return all[0].PostalCode, &all[0], nil
}

// nearestWarehouse returns the warehouse with the smallest road distance to
// the destination, first-iterated winning exact ties. Candidates whose
// lookup fails are skipped; when every candidate fails, the failure is
// fatal. A nil result with nil error means no warehouse had a postal code
// to measure from.
func (s *QuoteService) nearestWarehouse(ctx context.Context, all []domain.Warehouse, destinationPostal string) (*domain.Warehouse, error) {
	var (
		best     *domain.Warehouse
		bestKm   float64
		firstErr error
		tried    int
	)

	for i := range all {
		if all[i].PostalCode == "" {
			continue
		}
		tried++

		meters, err := s.distance.RoadDistanceMeters(ctx, all[i].PostalCode, destinationPostal)
		if err != nil {
			s.log.Warn("skipping warehouse with unavailable distance",
				zap.String("warehouse_id", all[i].ID),
				zap.String("postal_code", all[i].PostalCode),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		km := meters / 1000
		if best == nil || km < bestKm {
			best = &all[i]
			bestKm = km
		}
	}

	if best != nil {
		return best, nil
	}
	if tried > 0 && firstErr != nil {
		var de *domain.DistanceUnavailableError
		if errors.As(firstErr, &de) {
			return nil, firstErr
		}
		return nil, fmt.Errorf("distance lookup failed for every warehouse: %w", firstErr)
	}
	return nil, nil
}

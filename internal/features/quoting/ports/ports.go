package ports

import (
	"context"

	"freight-rater/internal/features/quoting/domain"
)

// ClassTableRepository reads the density-to-freight-class reference table.
type ClassTableRepository interface {
	// ListAll returns every classification row; the core sorts by Order.
	ListAll(ctx context.Context) ([]domain.DensityClassRow, error)
}

// PriceTableRepository reads the class/distance/weight rate table.
type PriceTableRepository interface {
	// ListByClass returns every row for one integer freight class.
	ListByClass(ctx context.Context, freightClass int) ([]domain.PriceTableRow, error)
	// ListAll returns the whole table, used to enumerate distinct classes
	// for the nearest-class fallback.
	ListAll(ctx context.Context) ([]domain.PriceTableRow, error)
}

// WarehouseRepository reads the warehouse registry.
type WarehouseRepository interface {
	// GetByID returns the warehouse with the given id, or nil when absent.
	GetByID(ctx context.Context, id string) (*domain.Warehouse, error)
	// ListBySalesChannel returns warehouses bound to a sales channel.
	ListBySalesChannel(ctx context.Context, salesChannelID string) ([]domain.Warehouse, error)
	// ListAll returns every warehouse.
	ListAll(ctx context.Context) ([]domain.Warehouse, error)
}

// DiscountRepository reads the global discount setting.
type DiscountRepository interface {
	Get(ctx context.Context) (domain.DiscountSetting, error)
}

// DistanceProvider resolves the road distance between two postal-code-like
// address strings. Failures carry the typed codes of
// domain.DistanceUnavailableError.
type DistanceProvider interface {
	RoadDistanceMeters(ctx context.Context, origin, destination string) (float64, error)
}

// ExternalRate is a priced quote from the external rate collaborator. The
// adapter has already applied its own markup and discount.
type ExternalRate struct {
	Total    float64
	Currency string
	Carrier  string
}

// RateProvider quotes a shipment through an external rating API. Any error
// means the local computation stands.
type RateProvider interface {
	GetQuote(ctx context.Context, originPostal, destinationPostal string, boxes []domain.Box) (ExternalRate, error)
}

// QuoteService computes shipment quotes.
type QuoteService interface {
	CalculateShipping(ctx context.Context, req domain.QuoteRequest) (*domain.ShipmentQuote, error)
}

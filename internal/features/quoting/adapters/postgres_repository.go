package adapters

import (
	"context"
	"errors"
	"fmt"

	"freight-rater/internal/features/quoting/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresClassTableRepository reads the density classification table.
type PostgresClassTableRepository struct {
	db *pgxpool.Pool
}

// NewPostgresClassTableRepository creates a classification-table reader.
func NewPostgresClassTableRepository(db *pgxpool.Pool) *PostgresClassTableRepository {
	return &PostgresClassTableRepository{db: db}
}

// ListAll returns every classification row. Ordering is left to the core,
// which sorts by Order before matching.
func (r *PostgresClassTableRepository) ListAll(ctx context.Context) ([]domain.DensityClassRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sort_order, density_range, freight_class FROM freight_class_densities`)
	if err != nil {
		return nil, fmt.Errorf("query freight_class_densities: %w", err)
	}
	defer rows.Close()

	var out []domain.DensityClassRow
	for rows.Next() {
		var row domain.DensityClassRow
		if err := rows.Scan(&row.Order, &row.RangeLabel, &row.FreightClass); err != nil {
			return nil, fmt.Errorf("scan freight_class_densities: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PostgresPriceTableRepository reads the class/distance/weight rate table.
type PostgresPriceTableRepository struct {
	db *pgxpool.Pool
}

// NewPostgresPriceTableRepository creates a price-table reader.
func NewPostgresPriceTableRepository(db *pgxpool.Pool) *PostgresPriceTableRepository {
	return &PostgresPriceTableRepository{db: db}
}

const priceColumns = `freight_class, distance_band, weight_break, rate_per_cwt`

// ListByClass returns every rate row for one integer freight class.
func (r *PostgresPriceTableRepository) ListByClass(ctx context.Context, freightClass int) ([]domain.PriceTableRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+priceColumns+` FROM freight_prices WHERE freight_class = $1`, freightClass)
	if err != nil {
		return nil, fmt.Errorf("query freight_prices for class %d: %w", freightClass, err)
	}
	defer rows.Close()
	return scanPriceRows(rows)
}

// ListAll returns the whole rate table.
func (r *PostgresPriceTableRepository) ListAll(ctx context.Context) ([]domain.PriceTableRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+priceColumns+` FROM freight_prices`)
	if err != nil {
		return nil, fmt.Errorf("query freight_prices: %w", err)
	}
	defer rows.Close()
	return scanPriceRows(rows)
}

func scanPriceRows(rows pgx.Rows) ([]domain.PriceTableRow, error) {
	var out []domain.PriceTableRow
	for rows.Next() {
		var row domain.PriceTableRow
		if err := rows.Scan(&row.FreightClass, &row.DistanceBand, &row.WeightBreak, &row.RatePerCwt); err != nil {
			return nil, fmt.Errorf("scan freight_prices: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// PostgresWarehouseRepository reads the warehouse registry.
type PostgresWarehouseRepository struct {
	db *pgxpool.Pool
}

// NewPostgresWarehouseRepository creates a warehouse reader.
func NewPostgresWarehouseRepository(db *pgxpool.Pool) *PostgresWarehouseRepository {
	return &PostgresWarehouseRepository{db: db}
}

const warehouseColumns = `id, name, COALESCE(postal_code, ''), sales_channel_id`

// GetByID returns one warehouse, or nil when the id is unknown.
func (r *PostgresWarehouseRepository) GetByID(ctx context.Context, id string) (*domain.Warehouse, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE id = $1`, id)

	wh, err := scanWarehouse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query warehouse %s: %w", id, err)
	}
	return &wh, nil
}

// ListBySalesChannel returns warehouses bound to a sales channel.
func (r *PostgresWarehouseRepository) ListBySalesChannel(ctx context.Context, salesChannelID string) ([]domain.Warehouse, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE sales_channel_id = $1 ORDER BY id`, salesChannelID)
	if err != nil {
		return nil, fmt.Errorf("query warehouses for channel %s: %w", salesChannelID, err)
	}
	defer rows.Close()
	return scanWarehouses(rows)
}

// ListAll returns every warehouse in stable id order.
func (r *PostgresWarehouseRepository) ListAll(ctx context.Context) ([]domain.Warehouse, error) {
	rows, err := r.db.Query(ctx, `SELECT `+warehouseColumns+` FROM warehouses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query warehouses: %w", err)
	}
	defer rows.Close()
	return scanWarehouses(rows)
}

func scanWarehouse(row pgx.Row) (domain.Warehouse, error) {
	var (
		wh      domain.Warehouse
		channel *string
	)
	if err := row.Scan(&wh.ID, &wh.Name, &wh.PostalCode, &channel); err != nil {
		return domain.Warehouse{}, err
	}
	if channel != nil {
		wh.SalesChannelID = *channel
	}
	return wh, nil
}

func scanWarehouses(rows pgx.Rows) ([]domain.Warehouse, error) {
	var out []domain.Warehouse
	for rows.Next() {
		wh, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouses: %w", err)
		}
		out = append(out, wh)
	}
	return out, rows.Err()
}

// PostgresDiscountRepository reads the single global discount record.
type PostgresDiscountRepository struct {
	db *pgxpool.Pool
}

// NewPostgresDiscountRepository creates a discount-settings reader.
func NewPostgresDiscountRepository(db *pgxpool.Pool) *PostgresDiscountRepository {
	return &PostgresDiscountRepository{db: db}
}

// Get returns the discount setting. A missing record means no discount is
// configured, not an error.
func (r *PostgresDiscountRepository) Get(ctx context.Context) (domain.DiscountSetting, error) {
	var setting domain.DiscountSetting
	err := r.db.QueryRow(ctx,
		`SELECT is_enabled, percentage FROM freight_discount_settings LIMIT 1`).
		Scan(&setting.IsEnabled, &setting.Percentage)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DiscountSetting{}, nil
	}
	if err != nil {
		return domain.DiscountSetting{}, fmt.Errorf("query freight_discount_settings: %w", err)
	}
	return setting, nil
}

package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"freight-rater/internal/core/logger"
	"freight-rater/internal/features/quoting/domain"
	"freight-rater/internal/features/quoting/ports"

	"go.uber.org/zap"
)

const defaultCurrency = "USD"

// Repositories bundles the read-only reference-table ports the quote
// engine depends on.
type Repositories struct {
	Classes    ports.ClassTableRepository
	Prices     ports.PriceTableRepository
	Warehouses ports.WarehouseRepository
	Discounts  ports.DiscountRepository
}

// Options carries deployment configuration for the quote engine.
type Options struct {
	// ChannelOrigins maps a sales-channel id to an origin postal code,
	// overriding warehouse lookup for channels without registered
	// warehouses.
	ChannelOrigins map[string]string
	// Currency tags quotes priced from the local tables.
	Currency string
}

// QuoteService computes LTL shipment quotes: origin resolution, distance
// banding, density classification, tiered rate lookup, and discounting,
// with an optional external rate provider that supersedes the local total
// when it answers.
type QuoteService struct {
	classes        ports.ClassTableRepository
	prices         ports.PriceTableRepository
	warehouses     ports.WarehouseRepository
	discounts      ports.DiscountRepository
	distance       ports.DistanceProvider
	rates          ports.RateProvider
	channelOrigins map[string]string
	currency       string
	log            *zap.Logger
}

// NewQuoteService creates a QuoteService. rates may be nil, in which case
// every quote is priced from the local tables.
func NewQuoteService(repos Repositories, distance ports.DistanceProvider, rates ports.RateProvider, opts Options) *QuoteService {
	currency := opts.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	return &QuoteService{
		classes:        repos.Classes,
		prices:         repos.Prices,
		warehouses:     repos.Warehouses,
		discounts:      repos.Discounts,
		distance:       distance,
		rates:          rates,
		channelOrigins: opts.ChannelOrigins,
		currency:       currency,
		log:            logger.Get(),
	}
}

type externalResult struct {
	rate ports.ExternalRate
	err  error
}

// CalculateShipping produces a quote for one shipment. Any box that cannot
// be priced fails the whole shipment; partial quotes are never returned.
func (s *QuoteService) CalculateShipping(ctx context.Context, req domain.QuoteRequest) (*domain.ShipmentQuote, error) {
	if strings.TrimSpace(req.DestinationPostal) == "" {
		return nil, domain.ErrMissingDestination
	}
	if len(req.Boxes) == 0 {
		return nil, domain.ErrNoBoxes
	}
	if err := validateBoxes(req.Boxes); err != nil {
		return nil, err
	}

	classRows, err := s.classes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load freight class table: %w", err)
	}
	classTable, err := domain.NewClassTable(classRows)
	if err != nil {
		return nil, err
	}

	originPostal, warehouse, err := s.resolveOrigin(ctx, req)
	if err != nil {
		return nil, err
	}

	// One distance lookup per shipment, shared by every box.
	meters, err := s.distance.RoadDistanceMeters(ctx, originPostal, req.DestinationPostal)
	if err != nil {
		return nil, err
	}
	distanceKm := meters / 1000
	band := domain.DistanceBand(distanceKm)

	// The external path needs only origin and boxes, so it races the local
	// computation instead of serializing behind it.
	var extCh chan externalResult
	if s.rates != nil {
		extCh = make(chan externalResult, 1)
		go func() {
			rate, rateErr := s.rates.GetQuote(ctx, originPostal, req.DestinationPostal, req.Boxes)
			extCh <- externalResult{rate: rate, err: rateErr}
		}()
	}

	// Boxes are independent: fan out, each goroutine writing only its own
	// slot. Reference reads underneath are safe for concurrent use.
	boxQuotes := make([]domain.BoxQuote, len(req.Boxes))
	boxErrs := make([]error, len(req.Boxes))
	var wg sync.WaitGroup
	for i := range req.Boxes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			boxQuotes[i], boxErrs[i] = s.quoteBox(ctx, classTable, req.Boxes[i], band, distanceKm)
		}(i)
	}
	wg.Wait()
	for _, boxErr := range boxErrs {
		if boxErr != nil {
			return nil, boxErr
		}
	}

	var subtotal float64
	for _, bq := range boxQuotes {
		subtotal += bq.LinePrice
	}

	discount, err := s.discounts.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load discount settings: %w", err)
	}
	total := subtotal
	var discountPercent float64
	if discount.IsEnabled && discount.Percentage > 0 {
		discountPercent = discount.Percentage
		total = subtotal * (1 - discountPercent/100)
		if total < 0 {
			total = 0
		}
	}

	quote := &domain.ShipmentQuote{
		DestinationPostal: req.DestinationPostal,
		Warehouse:         warehouse,
		OriginPostal:      originPostal,
		DistanceKm:        distanceKm,
		DistanceBand:      band,
		Boxes:             boxQuotes,
		Subtotal:          subtotal,
		DiscountPercent:   discountPercent,
		Total:             total,
		Currency:          s.currency,
		RateSource:        domain.RateSourceLocalTable,
	}

	if extCh != nil {
		res := <-extCh
		if res.err != nil {
			// External failures never surface; the local quote stands.
			s.log.Warn("external rate provider failed, using local tables",
				zap.String("origin", originPostal),
				zap.String("destination", req.DestinationPostal),
				zap.Error(res.err),
			)
		} else {
			quote.Total = res.rate.Total
			if res.rate.Currency != "" {
				quote.Currency = res.rate.Currency
			}
			quote.RateSource = domain.RateSourceExternal
		}
	}

	quote.RoundForOutput()
	return quote, nil
}

// validateBoxes rejects any box with a missing or non-positive dimension or
// weight. Absence never defaults to zero.
func validateBoxes(boxes []domain.Box) error {
	for i, box := range boxes {
		switch {
		case box.LengthMM <= 0:
			return &domain.InvalidBoxError{Index: i, Reason: "length must be positive"}
		case box.WidthMM <= 0:
			return &domain.InvalidBoxError{Index: i, Reason: "width must be positive"}
		case box.HeightMM <= 0:
			return &domain.InvalidBoxError{Index: i, Reason: "height must be positive"}
		case box.WeightG <= 0:
			return &domain.InvalidBoxError{Index: i, Reason: "weight must be positive"}
		}
	}
	return nil
}

// quoteBox classifies and prices a single box.
func (s *QuoteService) quoteBox(ctx context.Context, classTable *domain.ClassTable, box domain.Box, band string, distanceKm float64) (domain.BoxQuote, error) {
	lengthIn := domain.MMToInches(box.LengthMM)
	widthIn := domain.MMToInches(box.WidthMM)
	heightIn := domain.MMToInches(box.HeightMM)
	weightLb := domain.GramsToPounds(box.WeightG)

	cubicFeet := domain.CubicFeet(lengthIn, widthIn, heightIn)
	density := domain.DensityPCF(lengthIn, widthIn, heightIn, weightLb)
	freightClass := classTable.Classify(density)

	price, err := s.resolveBoxPrice(ctx, freightClass, band, weightLb)
	if err != nil {
		return domain.BoxQuote{}, err
	}

	return domain.BoxQuote{
		LengthIn:     lengthIn,
		WidthIn:      widthIn,
		HeightIn:     heightIn,
		WeightLb:     weightLb,
		CubicFeet:    cubicFeet,
		DensityPCF:   density,
		FreightClass: freightClass,
		DistanceKm:   distanceKm,
		RatePerCwt:   price.RatePerCwt,
		LinePrice:    price.LinePrice,
	}, nil
}

// resolveBoxPrice runs the tiered resolution for the classified class and,
// when that draws a blank, widens to the nearest class present anywhere in
// the table. Fractional classes already round at the first lookup.
func (s *QuoteService) resolveBoxPrice(ctx context.Context, freightClass float64, band string, weightLb float64) (domain.Price, error) {
	rounded := domain.RoundClass(freightClass)

	rows, err := s.prices.ListByClass(ctx, rounded)
	if err != nil {
		return domain.Price{}, fmt.Errorf("load freight prices for class %d: %w", rounded, err)
	}
	if price, ok := domain.ResolvePrice(rows, band, weightLb); ok {
		return price, nil
	}

	all, err := s.prices.ListAll(ctx)
	if err != nil {
		return domain.Price{}, fmt.Errorf("load freight price table: %w", err)
	}
	if len(all) == 0 {
		return domain.Price{}, domain.ErrNoReferenceData
	}

	nearest := nearestClass(all, freightClass)
	if nearest != rounded {
		s.log.Debug("widening price lookup to nearest class",
			zap.Float64("computed_class", freightClass),
			zap.Int("nearest_class", nearest),
			zap.String("distance_band", band),
		)
		if price, ok := domain.ResolvePrice(rowsForClass(all, nearest), band, weightLb); ok {
			return price, nil
		}
	}

	return domain.Price{}, &domain.UnresolvablePriceError{
		FreightClass: freightClass,
		DistanceBand: band,
		WeightLb:     weightLb,
	}
}

// nearestClass returns the distinct class in rows with minimum absolute
// difference from the computed class. Ties break to the class encountered
// first in table order, keeping results deterministic.
func nearestClass(rows []domain.PriceTableRow, freightClass float64) int {
	seen := make(map[int]struct{}, len(rows))
	best := rows[0].FreightClass
	bestDiff := math.Inf(1)
	for _, r := range rows {
		if _, ok := seen[r.FreightClass]; ok {
			continue
		}
		seen[r.FreightClass] = struct{}{}
		if diff := math.Abs(float64(r.FreightClass) - freightClass); diff < bestDiff {
			best = r.FreightClass
			bestDiff = diff
		}
	}
	return best
}

func rowsForClass(rows []domain.PriceTableRow, freightClass int) []domain.PriceTableRow {
	var out []domain.PriceTableRow
	for _, r := range rows {
		if r.FreightClass == freightClass {
			out = append(out, r)
		}
	}
	return out
}

package handler

import (
	"errors"
	"fmt"

	"freight-rater/internal/core/logger"
	"freight-rater/internal/features/quoting/domain"
	"freight-rater/internal/features/quoting/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuoteHandler handles HTTP requests for shipping quotes.
type QuoteHandler struct {
	quoteService ports.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService ports.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// dimensionsPayload carries box measurements as stored: millimeters and
// grams. Fields are pointers so a missing value is distinguishable from an
// explicit zero; absence is a validation error, never a zero default.
type dimensionsPayload struct {
	Length *float64 `json:"length"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`
	Weight *float64 `json:"weight"`
}

// itemPayload is a cart line whose measurements live on the variant.
type itemPayload struct {
	Quantity int               `json:"quantity"`
	Variant  dimensionsPayload `json:"variant"`
}

// quoteRequestPayload is the public request shape: a destination plus
// either itemized cart lines or pre-formed boxes.
type quoteRequestPayload struct {
	ShippingAddress struct {
		PostalCode string `json:"postal_code"`
	} `json:"shipping_address"`
	Items          []itemPayload       `json:"items"`
	Boxes          []dimensionsPayload `json:"boxes"`
	WarehouseID    string              `json:"warehouse_id"`
	SalesChannelID string              `json:"sales_channel_id"`
}

// CalculateShipping godoc
// @Summary Compute an LTL shipping quote
// @Description Classifies and prices each box of a shipment against the freight rate tables, applying the global discount. An external rate provider, when configured and responsive, supersedes the locally computed total.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body quoteRequestPayload true "Shipment to quote"
// @Success 200 {object} domain.ShipmentQuote
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipping/quotes [post]
func (h *QuoteHandler) CalculateShipping(c *fiber.Ctx) error {
	var payload quoteRequestPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "malformed request body",
			RayID:   rayID(c),
		})
	}

	if payload.ShippingAddress.PostalCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "shipping_address.postal_code is required",
			RayID:   rayID(c),
		})
	}

	boxes, err := payloadBoxes(payload)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	quote, err := h.quoteService.CalculateShipping(c.UserContext(), domain.QuoteRequest{
		DestinationPostal: payload.ShippingAddress.PostalCode,
		WarehouseID:       payload.WarehouseID,
		SalesChannelID:    payload.SalesChannelID,
		Boxes:             boxes,
	})
	if err != nil {
		status, message := normalizeError(err)
		if status == fiber.StatusInternalServerError {
			logger.Get().Error("shipping quote failed",
				zap.String("destination", payload.ShippingAddress.PostalCode),
				zap.Error(err),
			)
		}
		return c.Status(status).JSON(ErrorResponse{
			Message: message,
			RayID:   rayID(c),
		})
	}

	return c.JSON(quote)
}

// payloadBoxes converts the request payload into domain boxes. Pre-formed
// boxes win over items when both are present; items expand by quantity.
func payloadBoxes(payload quoteRequestPayload) ([]domain.Box, error) {
	if len(payload.Boxes) > 0 {
		boxes := make([]domain.Box, 0, len(payload.Boxes))
		for i, dims := range payload.Boxes {
			box, err := dimensionsToBox(dims, fmt.Sprintf("boxes[%d]", i))
			if err != nil {
				return nil, err
			}
			boxes = append(boxes, box)
		}
		return boxes, nil
	}

	var boxes []domain.Box
	for i, item := range payload.Items {
		box, err := dimensionsToBox(item.Variant, fmt.Sprintf("items[%d].variant", i))
		if err != nil {
			return nil, err
		}
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		for n := 0; n < quantity; n++ {
			boxes = append(boxes, box)
		}
	}
	return boxes, nil
}

func dimensionsToBox(dims dimensionsPayload, where string) (domain.Box, error) {
	switch {
	case dims.Length == nil:
		return domain.Box{}, fmt.Errorf("%s.length is required", where)
	case dims.Width == nil:
		return domain.Box{}, fmt.Errorf("%s.width is required", where)
	case dims.Height == nil:
		return domain.Box{}, fmt.Errorf("%s.height is required", where)
	case dims.Weight == nil:
		return domain.Box{}, fmt.Errorf("%s.weight is required", where)
	}
	return domain.Box{
		LengthMM: *dims.Length,
		WidthMM:  *dims.Width,
		HeightMM: *dims.Height,
		WeightG:  *dims.Weight,
	}, nil
}

// normalizeError maps engine errors onto a status code and a safe message.
// Internal errors outside the quoting taxonomy never leak their text.
func normalizeError(err error) (int, string) {
	var invalidBox *domain.InvalidBoxError
	var unresolvable *domain.UnresolvablePriceError
	var distance *domain.DistanceUnavailableError

	switch {
	case errors.Is(err, domain.ErrMissingDestination),
		errors.Is(err, domain.ErrNoBoxes),
		errors.As(err, &invalidBox):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNoWarehouse),
		errors.Is(err, domain.ErrNoReferenceData),
		errors.Is(err, domain.ErrEmptyClassTable),
		errors.As(err, &unresolvable),
		errors.As(err, &distance):
		return fiber.StatusInternalServerError, err.Error()
	default:
		return fiber.StatusInternalServerError, "failed to compute shipping quote"
	}
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Prices and totals cross the wire as decimal strings ("19.99"), never as
  floats. Request bodies accept JSON numbers or strings via decimal's own
  unmarshalling.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Inventory and sales handlers
  - catalog_handlers.go: Product and category handlers
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/inventory-ledger/catalog"
	"github.com/warp/inventory-ledger/ledger"
)

// =============================================================================
// INVENTORY
// =============================================================================

// InventoryUpdateRequest appends one signed quantity delta.
type InventoryUpdateRequest struct {
	ProductID     string `json:"product_id"`
	QuantityDelta int    `json:"quantity_delta"`
}

// InventoryItemDTO is a derived current-quantity projection.
type InventoryItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// InventoryEventDTO represents one ledger event in API responses.
type InventoryEventDTO struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	QuantityDelta int    `json:"quantity_delta"`
	CreatedAt     string `json:"created_at"`
}

func inventoryEventDTO(ev ledger.InventoryEvent) InventoryEventDTO {
	return InventoryEventDTO{
		ID:            string(ev.ID),
		ProductID:     string(ev.ProductID),
		QuantityDelta: ev.QuantityDelta,
		CreatedAt:     ev.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// SALES
// =============================================================================

// CreateSaleRequest records a sale as a historical fact. The total is taken
// as given, not derived from the catalog price.
type CreateSaleRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleEventDTO represents one sale event in API responses.
type SaleEventDTO struct {
	ID         string `json:"id"`
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	TotalPrice string `json:"total_price"`
	CreatedAt  string `json:"created_at"`
}

func saleEventDTO(ev ledger.SaleEvent) SaleEventDTO {
	return SaleEventDTO{
		ID:         string(ev.ID),
		ProductID:  string(ev.ProductID),
		Quantity:   ev.Quantity,
		TotalPrice: ev.TotalPrice.String(),
		CreatedAt:  ev.CreatedAt.Format(time.RFC3339),
	}
}

// SalesBucketDTO is one aggregation bucket.
type SalesBucketDTO struct {
	PeriodStart string `json:"period_start"`
	Total       string `json:"total"`
}

func salesBucketDTOs(buckets []ledger.SalesBucket) []SalesBucketDTO {
	dtos := make([]SalesBucketDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = SalesBucketDTO{
			PeriodStart: b.PeriodStart.Format(time.RFC3339),
			Total:       b.Total.String(),
		}
	}
	return dtos
}

// ComparisonBucketDTO pairs the i-th sub-windows of the two compared periods.
type ComparisonBucketDTO struct {
	Label       string `json:"label"`
	FirstTotal  string `json:"first_total"`
	SecondTotal string `json:"second_total"`
}

func comparisonBucketDTOs(buckets []ledger.ComparisonBucket) []ComparisonBucketDTO {
	dtos := make([]ComparisonBucketDTO, len(buckets))
	for i, b := range buckets {
		dtos[i] = ComparisonBucketDTO{
			Label:       b.Label,
			FirstTotal:  b.FirstTotal.String(),
			SecondTotal: b.SecondTotal.String(),
		}
	}
	return dtos
}

// =============================================================================
// CATALOG
// =============================================================================

type CreateProductRequest struct {
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type ProductDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CategoryID  string `json:"category_id,omitempty"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	CreatedAt   string `json:"created_at"`
}

func productDTO(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          string(p.ID),
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Price:       p.Price.String(),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func categoryDTO(c catalog.Category) CategoryDTO {
	return CategoryDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

// =============================================================================
// ERRORS
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

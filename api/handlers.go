/*
handlers.go - HTTP handlers for the inventory and sales ledger

PURPOSE:
  Exposes the ledger and its derived-view engines via REST. Handlers parse
  and validate HTTP input, delegate to the engines, and serialize results.
  No business rule lives here.

ENDPOINTS:
  Inventory:
    POST /api/inventory/update            Append one quantity delta
    GET  /api/inventory/current           Current quantities, all products
    GET  /api/inventory/current/{id}      Current quantity for one product
    GET  /api/inventory/low-stock-alerts  Products at or below a threshold
    GET  /api/inventory/events            Raw events by id or product id

  Sales:
    POST /api/sales                       Record a sale
    GET  /api/sales/between-dates         Chronological sale listing
    GET  /api/sales/by-period             Revenue per calendar period
    GET  /api/sales/compare               Period-over-period comparison

ERROR HANDLING:
  - 400: validation errors (zero delta, unknown granularity, window
         mismatch, malformed input) - classified via ledger.IsValidation
  - 404: single-entity lookups with no data
  - 500: storage faults, surfaced unchanged

SEE ALSO:
  - dto.go: Request/response shapes
  - catalog_handlers.go: Product/category CRUD
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/warp/inventory-ledger/catalog"
	"github.com/warp/inventory-ledger/inventory"
	"github.com/warp/inventory-ledger/ledger"
	"github.com/warp/inventory-ledger/sales"
)

// defaultLowStockThreshold applies when low-stock-alerts is called without
// an explicit threshold.
const defaultLowStockThreshold = 10

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger    ledger.Store
	Catalog   catalog.Store
	Inventory *inventory.Engine
	Sales     *sales.Engine
}

// NewHandler wires the engines over the given stores.
func NewHandler(ledgerStore ledger.Store, catalogStore catalog.Store) *Handler {
	return &Handler{
		Ledger:    ledgerStore,
		Catalog:   catalogStore,
		Inventory: inventory.NewEngine(ledgerStore),
		Sales:     sales.NewEngine(ledgerStore, catalog.NewLookup(catalogStore)),
	}
}

// =============================================================================
// INVENTORY HANDLERS
// =============================================================================

// AddInventoryUpdate appends one inventory event and returns the product's
// recomputed quantity.
func (h *Handler) AddInventoryUpdate(w http.ResponseWriter, r *http.Request) {
	var req InventoryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required", nil)
		return
	}

	ev, err := ledger.NewInventoryEvent(ledger.ProductID(req.ProductID), req.QuantityDelta)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid inventory update", err)
		return
	}

	if err := h.Ledger.AppendInventoryEvents(r.Context(), []ledger.InventoryEvent{ev}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append inventory event", err)
		return
	}

	qty, _, err := h.Inventory.Quantity(r.Context(), ev.ProductID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute quantity", err)
		return
	}

	writeJSON(w, http.StatusCreated, InventoryItemDTO{
		ProductID: req.ProductID,
		Quantity:  qty,
	})
}

// CurrentInventory returns the current quantity for one product, or 404 if
// the product has no events at all.
func (h *Handler) CurrentInventory(w http.ResponseWriter, r *http.Request) {
	productID := ledger.ProductID(chi.URLParam(r, "productID"))

	qty, ok, err := h.Inventory.Quantity(r.Context(), productID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute quantity", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Inventory item not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, InventoryItemDTO{
		ProductID: string(productID),
		Quantity:  qty,
	})
}

// CurrentInventoryList folds the whole ledger into one quantity per product.
func (h *Handler) CurrentInventoryList(w http.ResponseWriter, r *http.Request) {
	totals, err := h.Inventory.QuantityForProducts(r.Context(), nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute inventory", err)
		return
	}
	writeJSON(w, http.StatusOK, inventoryItemDTOs(totals))
}

// LowStockAlerts returns products whose summed delta is at or below the
// threshold (inclusive).
func (h *Handler) LowStockAlerts(w http.ResponseWriter, r *http.Request) {
	threshold := defaultLowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		var err error
		threshold, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid threshold", err)
			return
		}
	}

	totals, err := h.Inventory.LowStock(r.Context(), threshold)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute low stock", err)
		return
	}
	writeJSON(w, http.StatusOK, inventoryItemDTOs(totals))
}

// InventoryEvents returns raw ledger events, selected by event id or by
// product id. Missing ids are silently omitted.
func (h *Handler) InventoryEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		events []ledger.InventoryEvent
		err    error
	)
	switch {
	case len(q["id"]) > 0:
		ids := make([]ledger.EventID, len(q["id"]))
		for i, raw := range q["id"] {
			ids[i] = ledger.EventID(raw)
		}
		events, err = h.Ledger.InventoryEvents(r.Context(), ids)
	case len(q["product_id"]) > 0:
		ids := make([]ledger.ProductID, len(q["product_id"]))
		for i, raw := range q["product_id"] {
			ids[i] = ledger.ProductID(raw)
		}
		events, err = h.Ledger.InventoryEventsByProduct(r.Context(), ids)
	default:
		writeError(w, http.StatusBadRequest, "Provide id or product_id query parameters", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load inventory events", err)
		return
	}

	dtos := make([]InventoryEventDTO, len(events))
	for i, ev := range events {
		dtos[i] = inventoryEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func inventoryItemDTOs(totals map[ledger.ProductID]int) []InventoryItemDTO {
	dtos := make([]InventoryItemDTO, 0, len(totals))
	for id, qty := range totals {
		dtos = append(dtos, InventoryItemDTO{ProductID: string(id), Quantity: qty})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].ProductID < dtos[j].ProductID })
	return dtos
}

// =============================================================================
// SALES HANDLERS
// =============================================================================

// CreateSale records a sale event.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "product_id is required", nil)
		return
	}

	ev := ledger.NewSaleEvent(ledger.ProductID(req.ProductID), req.Quantity, req.TotalPrice)
	if err := h.Ledger.AppendSaleEvents(r.Context(), []ledger.SaleEvent{ev}); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append sale event", err)
		return
	}

	writeJSON(w, http.StatusCreated, saleEventDTO(ev))
}

// SalesBetweenDates lists sale events chronologically, with the optional
// product/category restriction.
func (h *Handler) SalesBetweenDates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	start, end, ok := h.parseRange(w, q.Get("start"), q.Get("end"))
	if !ok {
		return
	}
	filter, ok := h.parseFilter(w, r, q.Get("product_id"), q.Get("category_id"))
	if !ok {
		return
	}

	events, err := h.Sales.SalesBetween(r.Context(), start, end, filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sales", err)
		return
	}

	dtos := make([]SaleEventDTO, len(events))
	for i, ev := range events {
		dtos[i] = saleEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SalesByPeriod returns revenue bucketed by UTC calendar period.
func (h *Handler) SalesByPeriod(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	period, err := ledger.ParseTimePeriod(q.Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period", err)
		return
	}
	start, end, ok := h.parseRange(w, q.Get("start"), q.Get("end"))
	if !ok {
		return
	}
	filter, ok := h.parseFilter(w, r, q.Get("product_id"), q.Get("category_id"))
	if !ok {
		return
	}

	buckets, err := h.Sales.SalesByPeriod(r.Context(), period, start, end, filter)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, salesBucketDTOs(buckets))
}

// CompareSales compares two equal-duration windows bucket by bucket.
func (h *Handler) CompareSales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	granularity := q.Get("granularity")
	if granularity == "" {
		granularity = string(ledger.PeriodDay)
	}

	firstStart, ok := h.parseTime(w, "first_start", q.Get("first_start"))
	if !ok {
		return
	}
	firstEnd, ok := h.parseTime(w, "first_end", q.Get("first_end"))
	if !ok {
		return
	}
	secondStart, ok := h.parseTime(w, "second_start", q.Get("second_start"))
	if !ok {
		return
	}
	secondEnd, ok := h.parseTime(w, "second_end", q.Get("second_end"))
	if !ok {
		return
	}
	filter, ok := h.parseFilter(w, r, q.Get("product_id"), q.Get("category_id"))
	if !ok {
		return
	}

	buckets, err := h.Sales.Compare(r.Context(), sales.CompareInput{
		FirstStart:  firstStart,
		FirstEnd:    firstEnd,
		SecondStart: secondStart,
		SecondEnd:   secondEnd,
		Granularity: ledger.TimePeriod(granularity),
		Filter:      filter,
	})
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparisonBucketDTOs(buckets))
}

// =============================================================================
// SHARED PARSING
// =============================================================================

// parseRange parses start (required) and end (optional; a missing end means
// a single-day window, applied in the engine by passing the zero time).
func (h *Handler) parseRange(w http.ResponseWriter, rawStart, rawEnd string) (start, end time.Time, ok bool) {
	start, ok = h.parseTime(w, "start", rawStart)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	if rawEnd == "" {
		return start, time.Time{}, true
	}
	end, ok = h.parseTime(w, "end", rawEnd)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func (h *Handler) parseTime(w http.ResponseWriter, name, raw string) (time.Time, bool) {
	if raw == "" {
		writeError(w, http.StatusBadRequest, name+" is required", nil)
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid "+name, err)
		return time.Time{}, false
	}
	return t.UTC(), true
}

// parseFilter builds the tri-state product filter from the optional
// product_id / category_id query parameters. Neither given: nil (no
// restriction). A category resolves through the catalog lookup; an unknown
// category is an explicit empty filter, matching nothing.
func (h *Handler) parseFilter(w http.ResponseWriter, r *http.Request, productID, categoryID string) (ledger.ProductSet, bool) {
	if productID != "" && categoryID != "" {
		writeError(w, http.StatusBadRequest, "product_id and category_id are mutually exclusive", nil)
		return nil, false
	}
	if productID != "" {
		return ledger.NewProductSet(ledger.ProductID(productID)), true
	}
	if categoryID != "" {
		members, err := h.Sales.CategoryFilter(r.Context(), categoryID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to resolve category", err)
			return nil, false
		}
		return members, true
	}
	return nil, true
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	if ledger.IsValidation(err) {
		writeError(w, http.StatusBadRequest, "Invalid query", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Query failed", err)
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

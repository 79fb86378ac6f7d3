/*
catalog_handlers.go - Product and category CRUD handlers

Conventional entity plumbing: the catalog has no derived computation. The
ledger engines only ever see it through the category-membership lookup.
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warp/inventory-ledger/catalog"
	"github.com/warp/inventory-ledger/ledger"
)

// =============================================================================
// PRODUCT HANDLERS
// =============================================================================

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	p := catalog.NewProduct(req.Name, req.CategoryID, req.Description, req.Price)
	if err := h.Catalog.CreateProduct(r.Context(), p); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create product", err)
		return
	}
	writeJSON(w, http.StatusCreated, productDTO(p))
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Products(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products", err)
		return
	}
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = productDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := ledger.ProductID(chi.URLParam(r, "id"))

	p, err := h.Catalog.Product(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get product", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, productDTO(*p))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := ledger.ProductID(chi.URLParam(r, "id"))

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	existing, err := h.Catalog.Product(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get product", err)
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "Product not found", nil)
		return
	}

	existing.Name = req.Name
	existing.CategoryID = req.CategoryID
	existing.Description = req.Description
	existing.Price = req.Price

	if err := h.Catalog.UpdateProduct(r.Context(), *existing); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update product", err)
		return
	}
	writeJSON(w, http.StatusOK, productDTO(*existing))
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := ledger.ProductID(chi.URLParam(r, "id"))

	if err := h.Catalog.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CATEGORY HANDLERS
// =============================================================================

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	c := catalog.NewCategory(req.Name, req.Description)
	if err := h.Catalog.CreateCategory(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create category", err)
		return
	}
	writeJSON(w, http.StatusCreated, categoryDTO(c))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Catalog.Categories(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list categories", err)
		return
	}
	dtos := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		dtos[i] = categoryDTO(c)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	c, err := h.Catalog.Category(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get category", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Category not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, categoryDTO(*c))
}

// ListCategoryProducts returns the member products of a category. An unknown
// category yields an empty list, not an error, mirroring the lookup the
// sales engine uses.
func (h *Handler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	products, err := h.Catalog.ProductsByCategory(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list category products", err)
		return
	}
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = productDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

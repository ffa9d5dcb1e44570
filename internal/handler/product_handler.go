package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"product-catalog/internal/model"
	"product-catalog/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
// A new ProductService is built from the factory for every request.
type ProductHandler struct {
	newService service.ProductServiceFactory
	logger     zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(newService service.ProductServiceFactory, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		newService: newService,
		logger:     logger.With().Str("handler", "product").Logger(),
	}
}

// GetAll handles GET /api/products requests.
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.newService().GetAllProducts(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve products", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// GetByID handles GET /api/products/{id} requests.
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	product, err := h.newService().GetProductByID(r.Context(), id)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to retrieve product", h.logger)
		return
	}

	found, ok := product.Get()
	if !ok {
		writeError(w, r, http.StatusNotFound, model.ErrCodeProductNotFound, "product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, found)
}

// Create handles POST /api/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	stored, err := h.newService().CreateProduct(r.Context(), product)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, stored)
}

// Update handles PUT /api/products/{id} requests. The ID in the path overrides any ID in the body.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	var product model.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}
	product.ID = id

	if err := h.newService().UpdateProduct(r.Context(), product); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}

	if err := h.newService().DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to delete product", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// productID parses the {id} path parameter, writing a 400 response when it is not an integer.
func (h *ProductHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidID, "product ID must be an integer", h.logger)
		return 0, false
	}
	return id, true
}

// writeServiceError maps domain errors to their HTTP status.
func (h *ProductHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		switch domainErr.Code {
		case model.ErrCodeProductNotFound:
			status = http.StatusNotFound
		case model.ErrCodeProductExists, model.ErrCodeIDSpaceExhausted:
			status = http.StatusConflict
		}
		writeError(w, r, status, domainErr.Code, domainErr.Message, h.logger)
		return
	}

	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", h.logger)
}

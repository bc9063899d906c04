package transport

import (
	"net/http"

	"github.com/muhammadheryan/community-market/model"
)

// ListProducts handler
// @Summary List products
// @Tags Product
// @Produce json
// @Param type query string false "market, willing or barter"
// @Param category query string false "Category"
// @Param owner_id query int false "Owner user id"
// @Param is_recommend query bool false "Recommended only"
// @Param search query string false "Matches title or description"
// @Param page query int false "Page, default 1"
// @Param per_page query int false "Page size, default 10, max 100"
// @Success 200 {object} model.Response{data=model.ProductListResponse}
// @Failure 400 {object} model.Response
// @Router /products [get]
func (s *RestHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, err := parseProductFilter(r)
	if err != nil {
		writeFilterError(w, err)
		return
	}

	res, err := s.ProductApp.ListProducts(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetProduct handler
// @Summary Get product
// @Tags Product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Response{data=model.ProductDetail}
// @Failure 404 {object} model.Response
// @Router /products/{id} [get]
func (s *RestHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.ProductApp.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateProduct handler
// @Summary Create product
// @Description The caller becomes the product owner
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateProductRequest true "Product"
// @Success 201 {object} model.Response{data=model.ProductEntity}
// @Failure 400 {object} model.Response
// @Router /products [post]
func (s *RestHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.CreateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.ProductApp.CreateProduct(r.Context(), actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeCreated(w, res)
}

// UpdateProduct handler
// @Summary Update product
// @Description Owner or admin. Omitted fields are left unchanged.
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.UpdateProductRequest true "Fields to change"
// @Success 200 {object} model.Response{data=model.ProductDetail}
// @Failure 403 {object} model.Response
// @Failure 404 {object} model.Response
// @Router /products/{id} [put]
func (s *RestHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateProductRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.ProductApp.UpdateProduct(r.Context(), id, actor, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// UpdateStock handler
// @Summary Set product stock
// @Tags Product
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param request body model.UpdateStockRequest true "New stock"
// @Success 200 {object} model.Response{data=model.ProductDetail}
// @Failure 403 {object} model.Response
// @Router /products/{id}/stock [put]
func (s *RestHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.ProductApp.UpdateStock(r.Context(), id, actor, *req.StockQuantity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// DeleteProduct handler
// @Summary Delete product
// @Description Owner or admin. Its reservations are removed with it.
// @Tags Product
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 200 {object} model.Response
// @Failure 403 {object} model.Response
// @Router /products/{id} [delete]
func (s *RestHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	actor, err := principal(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.ProductApp.DeleteProduct(r.Context(), id, actor); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/auth"
	"github.com/localroots/marketplace/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param community query string false "Community slug"
// @Param q query string false "Name search"
// @Success 200 {array} models.Product
// @Router /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context(), service.ProductFilter{
		Community: c.Query("community"),
		Query:     c.Query("q"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// ListVendorProducts godoc
// @Summary List a vendor's products
// @Tags products
// @Produce json
// @Param vendorId path string true "Vendor name"
// @Param community query string false "Community slug"
// @Param limit query int false "Maximum results"
// @Success 200 {array} models.Product
// @Router /products/vendor/{vendorId} [get]
func (h *ProductHandler) ListVendorProducts(c *gin.Context) {
	products, err := h.svc.ListByVendor(c.Request.Context(), c.Param("vendorId"), c.Query("community"), queryInt(c, "limit"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateUserProduct godoc
// @Summary Create a product as the current user
// @Description Accepts a bearer token, or the X-User-ID header outside production
// @Tags products
// @Accept json
// @Produce json
// @Success 201 {object} models.Product
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /products/user [post]
func (h *ProductHandler) CreateUserProduct(c *gin.Context) {
	var in service.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	owner, _ := auth.IdentityFromContext(c)
	product, err := h.svc.CreateForUser(c.Request.Context(), owner, in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateUserProduct godoc
// @Summary Update a product as the current user
// @Description Empty fields keep their stored values
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/user/{id} [put]
func (h *ProductHandler) UpdateUserProduct(c *gin.Context) {
	var in service.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	product, err := h.svc.UpdateForUser(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product (admin).
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var in service.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	product, err := h.svc.Create(c.Request.Context(), actor(c), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct updates a product (admin).
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var in service.ProductInput
	if !bindJSON(c, &in) {
		return
	}
	product, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product (admin).
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

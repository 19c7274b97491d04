package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/localroots/marketplace/internal/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// ListSellerOrders returns a seller's orders, optionally filtered by status.
func (h *OrderHandler) ListSellerOrders(c *gin.Context) {
	orders, err := h.svc.ListBySeller(c.Request.Context(), c.Param("sellerId"), c.Query("status"), queryInt(c, "limit"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.svc.List(c.Request.Context(), service.OrderFilter{
		Status:   c.Query("status"),
		SellerID: c.Query("sellerId"),
		Query:    c.Query("q"),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var in service.OrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var in service.OrderInput
	if !bindJSON(c, &in) {
		return
	}
	order, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse{OK: true})
}

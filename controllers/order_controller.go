package controllers

import (
	"net/http"

	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for orders.
type OrderController struct {
	orderService services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// CreateOrder handles POST /orders: checks out the caller's cart.
func (oc *OrderController) CreateOrder(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req models.CreateOrderRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, svcErr := oc.orderService.CreateOrder(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

// GetOrders handles GET /orders.
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	orders, svcErr := oc.orderService.GetUserOrders(ctx.Request.Context(), userID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// GetOrderItems handles GET /orders/:orderId/items.
func (oc *OrderController) GetOrderItems(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	orderID, ok := uuidParam(ctx, "orderId")
	if !ok {
		return
	}

	items, svcErr := oc.orderService.GetOrderItems(ctx.Request.Context(), userID, orderID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// GetOrderItem handles GET /orders/:orderId/items/:itemId.
func (oc *OrderController) GetOrderItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	orderID, ok := uuidParam(ctx, "orderId")
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "itemId")
	if !ok {
		return
	}

	item, svcErr := oc.orderService.GetOrderItem(ctx.Request.Context(), userID, orderID, itemID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, item)
}

// UpdateStatus handles PATCH /orders/:orderId (admin only).
func (oc *OrderController) UpdateStatus(ctx *gin.Context) {
	orderID, ok := uuidParam(ctx, "orderId")
	if !ok {
		return
	}
	var req models.UpdateOrderStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	order, svcErr := oc.orderService.UpdateStatus(ctx.Request.Context(), orderID, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// ListAllOrders handles GET /admin/orders (admin only).
func (oc *OrderController) ListAllOrders(ctx *gin.Context) {
	page, limit := parsePaginationParams(ctx)

	resp, svcErr := oc.orderService.ListAllOrders(ctx.Request.Context(), page, limit)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

package controllers

import (
	"net/http"

	"bookstore-service/models"
	"bookstore-service/services"

	"github.com/gin-gonic/gin"
)

// CartController handles HTTP requests for the caller's cart.
type CartController struct {
	cartService services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	cart, svcErr := cc.cartService.GetCart(ctx.Request.Context(), userID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// AddItem handles POST /cart.
func (cc *CartController) AddItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	var req models.AddCartItemRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, svcErr := cc.cartService.AddItem(ctx.Request.Context(), userID, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// UpdateItem handles PUT /cart/items/:itemId.
func (cc *CartController) UpdateItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "itemId")
	if !ok {
		return
	}
	var req models.UpdateQuantityRequest
	if !bindJSON(ctx, &req) {
		return
	}

	cart, svcErr := cc.cartService.UpdateItemQuantity(ctx.Request.Context(), userID, itemID, &req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, cart)
}

// RemoveItem handles DELETE /cart/items/:itemId.
func (cc *CartController) RemoveItem(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	itemID, ok := uuidParam(ctx, "itemId")
	if !ok {
		return
	}

	if svcErr := cc.cartService.RemoveItem(ctx.Request.Context(), userID, itemID); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.Status(http.StatusNoContent)
}

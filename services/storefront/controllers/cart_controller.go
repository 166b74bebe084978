package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/middleware"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/services"
)

type CartController struct {
	cartService     services.CartService
	checkoutService services.CheckoutService
}

func NewCartController(cartService services.CartService, checkoutService services.CheckoutService) *CartController {
	return &CartController{cartService: cartService, checkoutService: checkoutService}
}

// GetCart returns the caller's cart (empty when none exists).
func (cc *CartController) GetCart(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	cart, err := cc.cartService.GetCart(ctx.Request.Context(), userID)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Cart retrieved successfully.", cart)
}

// AddToCart increments a product's quantity in the cart.
func (cc *CartController) AddToCart(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req models.AddToCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, apperrors.Validation("Product ID and a positive quantity are required."))
		return
	}

	cart, err := cc.cartService.AddItem(ctx.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Item added to cart.", cart)
}

// UpdateCart sets a product's quantity; zero removes the line.
func (cc *CartController) UpdateCart(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req models.UpdateCartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, apperrors.Validation("Product ID and a non-negative quantity are required."))
		return
	}

	cart, err := cc.cartService.SetItemQuantity(ctx.Request.Context(), userID, req.ProductID, *req.Quantity)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Cart updated.", cart)
}

// Checkout places an order for everything in the cart. The body is optional.
func (cc *CartController) Checkout(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req models.CheckoutRequest
	if ctx.Request.Body != nil && ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			fail(ctx, apperrors.Validation("Invalid checkout request."))
			return
		}
	}

	order, err := cc.checkoutService.Checkout(ctx.Request.Context(), userID, req.ShippingAddress)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, "Checkout successful! Order placed.", order)
}

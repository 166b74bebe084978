package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/middleware"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/services"
)

type OrderController struct {
	orderService services.OrderService
}

func NewOrderController(orderService services.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// GetOrders returns paginated orders for the authenticated user
func (oc *OrderController) GetOrders(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	page, limit := parsePaginationParams(ctx)
	result, err := oc.orderService.GetOrderHistory(ctx.Request.Context(), userID, page, limit)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Previous orders retrieved.", result)
}

// GetOrderByID returns a specific order for the authenticated user
func (oc *OrderController) GetOrderByID(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	orderID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		fail(ctx, apperrors.Validation("Invalid order ID format"))
		return
	}

	order, err := oc.orderService.GetOrder(ctx.Request.Context(), userID, orderID)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Order retrieved.", order)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/middleware"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/services"
)

type ProductController struct {
	productService services.ProductService
}

func NewProductController(productService services.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

func (pc *ProductController) CreateProduct(ctx *gin.Context) {
	sellerID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	var req models.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, apperrors.Validation("Product name, price, and stock count are required."))
		return
	}

	product, err := pc.productService.CreateProduct(ctx.Request.Context(), sellerID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusCreated, "Product added to stock successfully.", product)
}

func (pc *ProductController) UpdateProduct(ctx *gin.Context) {
	sellerID, err := middleware.GetUserID(ctx)
	if err != nil {
		fail(ctx, apperrors.ErrUnauthorized)
		return
	}

	productID, err := uuid.Parse(ctx.Param("productId"))
	if err != nil {
		fail(ctx, apperrors.Validation("Invalid product ID format"))
		return
	}

	var req models.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		fail(ctx, apperrors.Validation("Invalid product update."))
		return
	}

	product, err := pc.productService.UpdateProduct(ctx.Request.Context(), sellerID, productID, &req)
	if err != nil {
		fail(ctx, err)
		return
	}
	respond(ctx, http.StatusOK, "Product updated successfully.", product)
}

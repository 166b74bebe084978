package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	awspkg "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/aws"
	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/repository"
)

// ProductService lets sellers add and edit their own products.
type ProductService interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error)
}

type productServiceImpl struct {
	products repository.ProductRepository
	metrics  awspkg.MetricsRecorder
	logger   *zap.Logger
}

func NewProductService(products repository.ProductRepository, metrics awspkg.MetricsRecorder, logger *zap.Logger) ProductService {
	return &productServiceImpl{products: products, metrics: metrics, logger: logger}
}

func (s *productServiceImpl) CreateProduct(ctx context.Context, sellerID uuid.UUID, req *models.CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Stock == nil {
		return nil, apperrors.Validation("Product name, price, and stock count are required.")
	}
	if !req.Price.IsPositive() {
		return nil, apperrors.Validation("Price must be a positive number.")
	}
	if *req.Stock < 0 {
		return nil, apperrors.Validation("Stock must be a non-negative integer.")
	}

	product := &models.Product{
		Name:        name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       *req.Stock,
		ImageURL:    req.ImageURL,
		SellerID:    sellerID,
	}
	if err := s.products.Create(ctx, product); err != nil {
		s.logger.Error("Failed to create product", zap.String("seller_id", sellerID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to create product", err)
	}

	if s.metrics != nil && s.metrics.IsEnabled() {
		_ = s.metrics.RecordCount(ctx, awspkg.MetricProductsCreated, map[string]string{"Service": "storefront"})
	}
	s.logger.Info("Product created", zap.String("product_id", product.ID.String()), zap.String("seller_id", sellerID.String()))
	return product, nil
}

func (s *productServiceImpl) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, req *models.UpdateProductRequest) (*models.Product, error) {
	if req.Empty() {
		return nil, apperrors.Validation("No fields to update.")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperrors.Validation("Product name cannot be empty.")
	}
	if req.Price != nil && !req.Price.IsPositive() {
		return nil, apperrors.Validation("Price must be a positive number.")
	}
	if req.Stock != nil && *req.Stock < 0 {
		return nil, apperrors.Validation("Stock must be a non-negative integer.")
	}

	product, err := s.products.UpdateBySeller(ctx, sellerID, productID, func(p *models.Product) error {
		req.Apply(p)
		p.Name = strings.TrimSpace(p.Name)
		p.Price = p.Price.Round(2)
		return nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Product not found or unauthorized to update.")
	}
	if err != nil {
		s.logger.Error("Failed to update product",
			zap.String("product_id", productID.String()),
			zap.String("seller_id", sellerID.String()),
			zap.Error(err),
		)
		return nil, apperrors.Internal("Failed to update product", err)
	}

	s.logger.Info("Product updated", zap.String("product_id", productID.String()), zap.Int("stock", product.Stock))
	return product, nil
}

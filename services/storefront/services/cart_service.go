package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/logger"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/repository"
)

// CartService manages the per-user cart. Stock checks here are advisory;
// checkout re-validates under a row lock.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	// AddItem increments the line for productID by quantity.
	AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error)
	// SetItemQuantity sets the line to quantity; zero removes it.
	SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error)
}

type cartServiceImpl struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, logger *zap.Logger) CartService {
	return &cartServiceImpl{carts: carts, products: products, logger: logger}
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("Failed to load cart", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	return cart, nil
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("Quantity must be a positive integer when adding an item.")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	inCart := cart.QuantityOf(productID)
	if inCart+quantity > product.Stock {
		return nil, apperrors.InsufficientStock(
			fmt.Sprintf("Insufficient stock. Available stock: %d. You currently have %d units in your cart.", product.Stock, inCart),
			&apperrors.StockError{
				ProductID:   product.ID.String(),
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   quantity,
				InCart:      inCart,
			},
		)
	}

	cart.Increment(product, quantity)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartServiceImpl) SetItemQuantity(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, apperrors.Validation("Quantity must be a non-negative integer.")
	}

	if quantity == 0 {
		cart, err := s.GetCart(ctx, userID)
		if err != nil {
			return nil, err
		}
		if !cart.Remove(productID) {
			return cart, nil
		}
		if err := s.save(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, apperrors.InsufficientStock(
			fmt.Sprintf("Insufficient stock. Available stock: %d.", product.Stock),
			&apperrors.StockError{
				ProductID:   product.ID.String(),
				ProductName: product.Name,
				Available:   product.Stock,
				Requested:   quantity,
			},
		)
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.Set(product, quantity)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartServiceImpl) findProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("Product not found.")
	}
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("Failed to load product", zap.String("product_id", productID.String()), zap.Error(err))
		return nil, apperrors.Internal("Failed to load product", err)
	}
	return product, nil
}

func (s *cartServiceImpl) save(ctx context.Context, cart *models.Cart) error {
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		logger.FromContext(ctx, s.logger).Error("Failed to save cart", zap.String("user_id", cart.UserID.String()), zap.Error(err))
		return apperrors.Internal("Failed to update cart", err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
)

// ProductRepository is the catalog store outside of checkout.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// UpdateBySeller locks the product row owned by sellerID, applies
	// mutate and writes it back. ErrNotFound when no row matches both ids.
	UpdateBySeller(ctx context.Context, sellerID, productID uuid.UUID, mutate func(*models.Product) error) (*models.Product, error)
}

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) UpdateBySeller(ctx context.Context, sellerID, productID uuid.UUID, mutate func(*models.Product) error) (*models.Product, error) {
	var product models.Product

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND seller_id = ?", productID, sellerID).
			Take(&product).Error; err != nil {
			return translate(err)
		}

		if err := mutate(&product); err != nil {
			return err
		}

		return tx.Model(&product).Updates(map[string]interface{}{
			"name":        product.Name,
			"description": product.Description,
			"price":       product.Price,
			"stock":       product.Stock,
			"image_url":   product.ImageURL,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

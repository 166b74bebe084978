package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
)

// CheckoutTx is the set of writes a checkout performs. Every call runs in
// the surrounding transaction.
type CheckoutTx interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	// FindProductForUpdate reads a product and holds its row lock until the
	// transaction ends. ErrNotFound when the product does not exist.
	FindProductForUpdate(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	// DecrementStock subtracts quantity if at least that much stock is left.
	// It reports false, and changes nothing, otherwise.
	DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error)
	CreateOrderItems(ctx context.Context, items []models.OrderItem) error
}

// CheckoutStore runs fn in one database transaction: committed when fn
// returns nil, rolled back when it returns an error or panics.
type CheckoutStore interface {
	WithinTransaction(ctx context.Context, fn func(tx CheckoutTx) error) error
}

type GormCheckoutStore struct {
	db *gorm.DB
}

func NewGormCheckoutStore(db *gorm.DB) CheckoutStore {
	return &GormCheckoutStore{db: db}
}

func (s *GormCheckoutStore) WithinTransaction(ctx context.Context, fn func(tx CheckoutTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCheckoutTx{db: tx})
	})
}

type gormCheckoutTx struct {
	db *gorm.DB
}

func (t *gormCheckoutTx) CreateOrder(ctx context.Context, order *models.Order) error {
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (t *gormCheckoutTx) FindProductForUpdate(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := t.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		Take(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (t *gormCheckoutTx) DecrementStock(ctx context.Context, productID uuid.UUID, quantity int) (bool, error) {
	res := t.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// CreateOrderItems inserts all items in a single statement.
func (t *gormCheckoutTx) CreateOrderItems(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return t.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

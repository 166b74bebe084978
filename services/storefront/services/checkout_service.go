package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	awspkg "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/aws"
	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/logger"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/events"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/repository"
)

// CheckoutService turns a user's cart into an order.
type CheckoutService interface {
	// Checkout creates the order, its items and the stock decrements in one
	// transaction, then clears the cart. On failure nothing is persisted and
	// the cart is left as it was.
	Checkout(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, error)
}

type checkoutServiceImpl struct {
	carts     repository.CartRepository
	store     repository.CheckoutStore
	publisher events.Publisher
	metrics   awspkg.MetricsRecorder
	logger    *zap.Logger
}

// NewCheckoutService wires the checkout engine. publisher and metrics may be nil.
func NewCheckoutService(
	carts repository.CartRepository,
	store repository.CheckoutStore,
	publisher events.Publisher,
	metrics awspkg.MetricsRecorder,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutServiceImpl{
		carts:     carts,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID uuid.UUID, shippingAddress string) (*models.Order, error) {
	log := logger.FromContext(ctx, s.logger).With(zap.String("user_id", userID.String()))

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		log.Error("Failed to load cart for checkout", zap.Error(err))
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart("Cannot checkout an empty cart.")
	}

	address := strings.TrimSpace(shippingAddress)
	if address == "" {
		address = models.DefaultShippingAddress
	}

	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     newOrderNumber(),
		UserID:          userID,
		TotalAmount:     cart.Total,
		ShippingAddress: address,
		Status:          models.OrderStatusPending,
	}

	start := time.Now()
	err = s.store.WithinTransaction(ctx, func(tx repository.CheckoutTx) error {
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, line := range cart.Items {
			product, err := tx.FindProductForUpdate(ctx, line.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return insufficientStock(line, 0)
			}
			if err != nil {
				return err
			}
			if product.Stock < line.Quantity {
				return insufficientStock(line, product.Stock)
			}

			ok, err := tx.DecrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return insufficientStock(line, product.Stock)
			}

			items = append(items, models.OrderItem{
				ID:              uuid.New(),
				OrderID:         order.ID,
				ProductID:       line.ProductID,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.Price,
			})
		}

		if err := tx.CreateOrderItems(ctx, items); err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		order.Items = nil
		s.count(ctx, awspkg.MetricOrdersFailed)

		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			log.Warn("Checkout rejected", zap.Error(err))
			if errors.Is(err, apperrors.ErrInsufficientStock) {
				s.count(ctx, awspkg.MetricStockRejected)
			}
			return nil, err
		}
		log.Error("Checkout transaction failed", zap.Error(err))
		return nil, apperrors.Internal("Checkout failed", err)
	}

	// the order is committed from here on; later failures are only logged
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		log.Error("Failed to clear cart after checkout", zap.String("order_id", order.ID.String()), zap.Error(err))
	}

	if s.publisher != nil {
		if err := events.PublishOrderPlaced(ctx, s.publisher, order); err != nil {
			log.Warn("Failed to publish order.placed", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	s.count(ctx, awspkg.MetricCartCheckouts)
	s.count(ctx, awspkg.MetricOrdersCreated)
	if s.metrics != nil && s.metrics.IsEnabled() {
		_ = s.metrics.RecordLatency(ctx, awspkg.MetricCheckoutLatency, time.Since(start), nil)
	}

	log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("order_number", order.OrderNumber),
		zap.String("total", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)),
	)
	return order, nil
}

func (s *checkoutServiceImpl) count(ctx context.Context, metric string) {
	if s.metrics == nil || !s.metrics.IsEnabled() {
		return
	}
	_ = s.metrics.RecordCount(ctx, metric, map[string]string{"Service": "storefront"})
}

func insufficientStock(line models.CartLine, available int) error {
	return apperrors.InsufficientStock(
		fmt.Sprintf("Insufficient stock for product: %s", line.Name),
		&apperrors.StockError{
			ProductID:   line.ProductID.String(),
			ProductName: line.Name,
			Available:   available,
			Requested:   line.Quantity,
			InCart:      line.Quantity,
		},
	)
}

func newOrderNumber() string {
	return "ORD-" + time.Now().UTC().Format("20060102-150405") + "-" + uuid.NewString()[:8]
}

package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/repository"
)

// ---- cart store ----

// fakeCartRepo keeps carts serialized, like Redis does.
type fakeCartRepo struct {
	data      map[uuid.UUID][]byte
	getErr    error
	saveErr   error
	deleteErr error
	saves     int
	deletes   int
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{data: map[uuid.UUID][]byte{}}
}

func (f *fakeCartRepo) GetCart(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cart := models.NewCart(userID)
	if raw, ok := f.data[userID]; ok {
		if err := json.Unmarshal(raw, cart); err != nil {
			return nil, err
		}
		cart.UserID = userID
	}
	return cart, nil
}

func (f *fakeCartRepo) SaveCart(_ context.Context, cart *models.Cart) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	f.data[cart.UserID] = raw
	f.saves++
	return nil
}

func (f *fakeCartRepo) DeleteCart(_ context.Context, userID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.data, userID)
	f.deletes++
	return nil
}

// seed stores a cart built from lines without going through the service.
func (f *fakeCartRepo) seed(userID uuid.UUID, lines ...models.CartLine) {
	cart := models.NewCart(userID)
	cart.Items = append(cart.Items, lines...)
	cart.Recalculate()
	raw, _ := json.Marshal(cart)
	f.data[userID] = raw
}

// ---- catalog + order store ----

// fakeCatalog implements ProductRepository and CheckoutStore over shared
// in-memory state. Transactions work on a copy that is applied only when
// the callback returns nil.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[uuid.UUID]models.Product
	orders   []models.Order
	items    []models.OrderItem

	findErr        error
	createItemsErr error
	transactions   int
}

func newFakeCatalog(products ...models.Product) *fakeCatalog {
	c := &fakeCatalog{products: map[uuid.UUID]models.Product{}}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *fakeCatalog) stock(id uuid.UUID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products[id].Stock
}

func (c *fakeCatalog) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findErr != nil {
		return nil, c.findErr
	}
	p, ok := c.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (c *fakeCatalog) Create(_ context.Context, p *models.Product) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	c.products[p.ID] = *p
	return nil
}

func (c *fakeCatalog) UpdateBySeller(_ context.Context, sellerID, productID uuid.UUID, mutate func(*models.Product) error) (*models.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.products[productID]
	if !ok || p.SellerID != sellerID {
		return nil, repository.ErrNotFound
	}
	if err := mutate(&p); err != nil {
		return nil, err
	}
	c.products[productID] = p
	return &p, nil
}

func (c *fakeCatalog) WithinTransaction(_ context.Context, fn func(tx repository.CheckoutTx) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transactions++

	tx := &fakeTx{catalog: c, products: map[uuid.UUID]models.Product{}}
	for id, p := range c.products {
		tx.products[id] = p
	}
	if err := fn(tx); err != nil {
		return err
	}

	c.products = tx.products
	c.orders = append(c.orders, tx.orders...)
	c.items = append(c.items, tx.items...)
	return nil
}

type fakeTx struct {
	catalog  *fakeCatalog
	products map[uuid.UUID]models.Product
	orders   []models.Order
	items    []models.OrderItem
}

func (t *fakeTx) CreateOrder(_ context.Context, order *models.Order) error {
	t.orders = append(t.orders, *order)
	return nil
}

func (t *fakeTx) FindProductForUpdate(_ context.Context, id uuid.UUID) (*models.Product, error) {
	p, ok := t.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (t *fakeTx) DecrementStock(_ context.Context, id uuid.UUID, qty int) (bool, error) {
	p, ok := t.products[id]
	if !ok || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	t.products[id] = p
	return true, nil
}

func (t *fakeTx) CreateOrderItems(_ context.Context, items []models.OrderItem) error {
	if t.catalog.createItemsErr != nil {
		return t.catalog.createItemsErr
	}
	t.items = append(t.items, items...)
	return nil
}

// ---- events + metrics ----

type fakePublisher struct {
	keys     []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, key string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeMetrics struct {
	counts    map[string]int
	latencies []string
}

func newFakeMetrics() *fakeMetrics { return &fakeMetrics{counts: map[string]int{}} }

func (m *fakeMetrics) RecordCount(_ context.Context, name string, _ map[string]string) error {
	m.counts[name]++
	return nil
}

func (m *fakeMetrics) RecordLatency(_ context.Context, name string, _ time.Duration, _ map[string]string) error {
	m.latencies = append(m.latencies, name)
	return nil
}

func (m *fakeMetrics) IsEnabled() bool { return true }

// ---- helpers ----

var errStoreDown = errors.New("connection refused")

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newProduct(name, price string, stock int) models.Product {
	return models.Product{
		ID:       uuid.New(),
		Name:     name,
		Price:    money(price),
		Stock:    stock,
		SellerID: uuid.New(),
	}
}

func lineFor(p models.Product, qty int) models.CartLine {
	return models.CartLine{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: qty}
}

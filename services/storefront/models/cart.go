package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is one product in a cart. Price is the unit price captured when
// the line was added or last set.
type CartLine struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is Price × Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the per-user document kept in Redis. Lines are unique by product
// and keep insertion order.
type Cart struct {
	UserID    uuid.UUID       `json:"-"`
	Items     []CartLine      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func NewCart(userID uuid.UUID) *Cart {
	return &Cart{UserID: userID, Items: []CartLine{}, Total: decimal.Zero}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) indexOf(productID uuid.UUID) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// QuantityOf returns the quantity of productID in the cart, or 0.
func (c *Cart) QuantityOf(productID uuid.UUID) int {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i].Quantity
	}
	return 0
}

// Increment adds quantity to an existing line, keeping its price, or
// appends a new line priced from product.
func (c *Cart) Increment(product *Product, quantity int) {
	if i := c.indexOf(product.ID); i >= 0 {
		c.Items[i].Quantity += quantity
	} else {
		c.Items = append(c.Items, CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		})
	}
	c.Recalculate()
}

// Set overwrites the line for product with the given quantity and the
// product's current name and price, appending it if absent.
func (c *Cart) Set(product *Product, quantity int) {
	line := CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  quantity,
	}
	if i := c.indexOf(product.ID); i >= 0 {
		c.Items[i] = line
	} else {
		c.Items = append(c.Items, line)
	}
	c.Recalculate()
}

// Remove drops the line for productID. It reports whether a line existed.
func (c *Cart) Remove(productID uuid.UUID) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	c.Recalculate()
	return true
}

// Recalculate sets Total to the sum of line subtotals.
func (c *Cart) Recalculate() {
	total := decimal.Zero
	for _, l := range c.Items {
		total = total.Add(l.Subtotal())
	}
	c.Total = total
}

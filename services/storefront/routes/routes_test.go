package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/sOuL2000s/Shoppy-Assignment-First-Track/pkg/errors"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/controllers"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/middleware"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/routes"
)

var secret = []byte("routes-secret")

type stubCartService struct{}

func (stubCartService) GetCart(_ context.Context, userID uuid.UUID) (*models.Cart, error) {
	return models.NewCart(userID), nil
}

func (stubCartService) AddItem(context.Context, uuid.UUID, uuid.UUID, int) (*models.Cart, error) {
	return nil, apperrors.NotFound("Product not found.")
}

func (stubCartService) SetItemQuantity(context.Context, uuid.UUID, uuid.UUID, int) (*models.Cart, error) {
	return nil, apperrors.NotFound("Product not found.")
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(apperrors.ErrorMiddleware())
	routes.RegisterRoutes(r, secret,
		controllers.NewCartController(stubCartService{}, nil),
		controllers.NewOrderController(nil),
		controllers.NewProductController(nil),
	)
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		ID:   uuid.NewString(),
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := tok.SignedString(secret)
	require.NoError(t, err)
	return s
}

func request(r http.Handler, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := request(newEngine(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCustomerRoutes_RequireToken(t *testing.T) {
	w := request(newEngine(), http.MethodGet, "/api/customer/cart", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token provided!")
}

func TestCustomerRoutes_AllowCustomer(t *testing.T) {
	w := request(newEngine(), http.MethodGet, "/api/customer/cart", token(t, middleware.RoleCustomer))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cart retrieved successfully.")
}

func TestRoleGuards(t *testing.T) {
	r := newEngine()

	w := request(r, http.MethodPost, "/api/seller/products", token(t, middleware.RoleCustomer))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Require seller Role.")

	w = request(r, http.MethodPost, "/api/customer/checkout", token(t, middleware.RoleSeller))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Require customer Role.")
}

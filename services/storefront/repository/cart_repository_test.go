package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/models"
	"github.com/sOuL2000s/Shoppy-Assignment-First-Track/services/storefront/repository"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, repository.CartRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, repository.NewRedisCartRepository(client, time.Hour)
}

func TestGetCart_MissingReturnsEmpty(t *testing.T) {
	_, repo := setupRedis(t)
	userID := uuid.New()

	cart, err := repo.GetCart(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, cart.UserID)
	assert.Empty(t, cart.Items)
	assert.NotNil(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestSaveCart_RoundTripAndTTL(t *testing.T) {
	mr, repo := setupRedis(t)
	userID := uuid.New()
	product := &models.Product{ID: uuid.New(), Name: "Mug", Price: decimal.RequireFromString("10.00"), Stock: 5}

	cart := models.NewCart(userID)
	cart.Increment(product, 3)
	require.NoError(t, repo.SaveCart(context.Background(), cart))

	key := "cart:user:" + userID.String()
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Hour, mr.TTL(key))

	stored, err := repo.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, product.ID, stored.Items[0].ProductID)
	assert.Equal(t, "Mug", stored.Items[0].Name)
	assert.Equal(t, 3, stored.Items[0].Quantity)
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("30")))
	assert.False(t, stored.UpdatedAt.IsZero())
}

func TestDeleteCart(t *testing.T) {
	mr, repo := setupRedis(t)
	userID := uuid.New()
	require.NoError(t, mr.Set("cart:user:"+userID.String(), `{"items":[],"total":"0"}`))

	require.NoError(t, repo.DeleteCart(context.Background(), userID))
	assert.False(t, mr.Exists("cart:user:"+userID.String()))

	// deleting again is not an error
	assert.NoError(t, repo.DeleteCart(context.Background(), userID))
}

func TestGetCart_CorruptDocument(t *testing.T) {
	mr, repo := setupRedis(t)
	userID := uuid.New()
	require.NoError(t, mr.Set("cart:user:"+userID.String(), "{not json"))

	_, err := repo.GetCart(context.Background(), userID)
	assert.Error(t, err)
}

func TestGetCart_StoreUnavailable(t *testing.T) {
	mr, repo := setupRedis(t)
	mr.Close()

	_, err := repo.GetCart(context.Background(), uuid.New())
	assert.Error(t, err)
}

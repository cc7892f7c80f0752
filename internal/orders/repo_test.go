package orders

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(kv.NewMemory())

	order := &Order{
		ID:     "ORD1700000000000ABCDEF123",
		Status: StatusPending,
		Items: []OrderItem{{
			ProductID: "PRD1",
			Name:      "Gold Ring",
			Price:     decimal.NewFromInt(2500),
			Quantity:  2,
		}},
		Customer: Customer{Name: "Priya Sharma", Phone: "+919812345678", Address: "12 Lake View Road"},
		Subtotal: decimal.NewFromInt(5000),
		Total:    decimal.NewFromInt(5050),
	}
	require.NoError(t, repo.Put(context.Background(), order))

	got, err := repo.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)
	assert.Equal(t, StatusPending, got.Status)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].Price.Equal(decimal.NewFromInt(2500)))
	assert.True(t, got.Total.Equal(decimal.NewFromInt(5050)))
	assert.Equal(t, "Priya Sharma", got.Customer.Name)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(kv.NewMemory())

	_, err := repo.Get(context.Background(), "ORD-missing")
	require.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRepositoryListScansOnlyOrders(t *testing.T) {
	store := kv.NewMemory()
	repo := NewRepository(store)

	require.NoError(t, repo.Put(context.Background(), &Order{ID: "ORD1", Status: StatusPending}))
	require.NoError(t, repo.Put(context.Background(), &Order{ID: "ORD2", Status: StatusShipped}))
	// Neighboring key spaces must not leak into the scan.
	require.NoError(t, store.Set(context.Background(), "product:PRD1", []byte(`{"id":"PRD1"}`)))
	require.NoError(t, store.Set(context.Background(), "settings", []byte(`{}`)))

	listed, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestRepositoryRawPreservesUnknownFields(t *testing.T) {
	repo := NewRepository(kv.NewMemory())

	require.NoError(t, repo.PutRaw(context.Background(), "ORD1", []byte(`{"id":"ORD1","status":"pending","giftWrap":true}`)))

	raw, err := repo.GetRaw(context.Background(), "ORD1")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "giftWrap")
}

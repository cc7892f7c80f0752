package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

const orderKeyPrefix = "order:"

// Repository owns order persistence on the KV store.
type Repository interface {
	Get(ctx context.Context, id string) (*Order, error)
	GetRaw(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, order *Order) error
	PutRaw(ctx context.Context, id string, record []byte) error
	List(ctx context.Context) ([]Order, error)
}

type repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func orderKey(id string) string {
	return orderKeyPrefix + id
}

func (r *repository) Get(ctx context.Context, id string) (*Order, error) {
	raw, err := r.GetRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	var order Order
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return &order, nil
}

func (r *repository) GetRaw(ctx context.Context, id string) ([]byte, error) {
	return r.store.Get(ctx, orderKey(id))
}

func (r *repository) Put(ctx context.Context, order *Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}
	return r.store.Set(ctx, orderKey(order.ID), raw)
}

func (r *repository) PutRaw(ctx context.Context, id string, record []byte) error {
	return r.store.Set(ctx, orderKey(id), record)
}

func (r *repository) List(ctx context.Context) ([]Order, error) {
	entries, err := r.store.ScanPrefix(ctx, orderKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	orders := make([]Order, 0, len(entries))
	for _, entry := range entries {
		var order Order
		if err := json.Unmarshal(entry.Value, &order); err != nil {
			return nil, fmt.Errorf("decode order record %s: %w", entry.Key, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

const (
	productKeyPrefix = "product:"
	categoriesKey    = "categories"
)

// Repository owns catalog persistence on the KV store. Products are
// individually keyed; categories are one list value.
type Repository interface {
	Get(ctx context.Context, id string) (*Product, error)
	GetRaw(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, product *Product) error
	PutRaw(ctx context.Context, id string, record []byte) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	ReplaceCategories(ctx context.Context, categories []Category) error
}

type repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func productKey(id string) string {
	return productKeyPrefix + id
}

func (r *repository) Get(ctx context.Context, id string) (*Product, error) {
	raw, err := r.GetRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	return &product, nil
}

func (r *repository) GetRaw(ctx context.Context, id string) ([]byte, error) {
	return r.store.Get(ctx, productKey(id))
}

func (r *repository) Put(ctx context.Context, product *Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product %s: %w", product.ID, err)
	}
	return r.store.Set(ctx, productKey(product.ID), raw)
}

func (r *repository) PutRaw(ctx context.Context, id string, record []byte) error {
	return r.store.Set(ctx, productKey(id), record)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, productKey(id))
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	entries, err := r.store.ScanPrefix(ctx, productKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	products := make([]Product, 0, len(entries))
	for _, entry := range entries {
		var product Product
		if err := json.Unmarshal(entry.Value, &product); err != nil {
			return nil, fmt.Errorf("decode product record %s: %w", entry.Key, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *repository) Categories(ctx context.Context) ([]Category, error) {
	raw, err := r.store.Get(ctx, categoriesKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Category{}, nil
	}
	if err != nil {
		return nil, err
	}
	var categories []Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}

func (r *repository) ReplaceCategories(ctx context.Context, categories []Category) error {
	raw, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	return r.store.Set(ctx, categoriesKey, raw)
}

package coupons

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

const couponKeyPrefix = "coupon:"

// Repository owns coupon persistence; keys carry the uppercased code.
type Repository interface {
	Get(ctx context.Context, code string) (*Coupon, error)
	Put(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context) ([]Coupon, error)
}

type repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func couponKey(code string) string {
	return couponKeyPrefix + code
}

func (r *repository) Get(ctx context.Context, code string) (*Coupon, error) {
	raw, err := r.store.Get(ctx, couponKey(code))
	if err != nil {
		return nil, err
	}
	var coupon Coupon
	if err := json.Unmarshal(raw, &coupon); err != nil {
		return nil, fmt.Errorf("decode coupon %s: %w", code, err)
	}
	return &coupon, nil
}

func (r *repository) Put(ctx context.Context, coupon *Coupon) error {
	raw, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("encode coupon %s: %w", coupon.Code, err)
	}
	return r.store.Set(ctx, couponKey(coupon.Code), raw)
}

func (r *repository) Delete(ctx context.Context, code string) error {
	return r.store.Delete(ctx, couponKey(code))
}

func (r *repository) List(ctx context.Context) ([]Coupon, error) {
	entries, err := r.store.ScanPrefix(ctx, couponKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("scan coupons: %w", err)
	}
	coupons := make([]Coupon, 0, len(entries))
	for _, entry := range entries {
		var coupon Coupon
		if err := json.Unmarshal(entry.Value, &coupon); err != nil {
			return nil, fmt.Errorf("decode coupon record %s: %w", entry.Key, err)
		}
		coupons = append(coupons, coupon)
	}
	return coupons, nil
}

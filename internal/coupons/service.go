package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

var oneHundred = decimal.NewFromInt(100)

// CreateCouponInput carries the admin-submitted coupon fields.
type CreateCouponInput struct {
	Code          string
	Type          string
	Value         decimal.Decimal
	MinOrderValue *decimal.Decimal
	MaxDiscount   *decimal.Decimal
	ExpiryDate    string
}

// ValidationResult is returned on a successful validation: the computed
// discount alongside the coupon record it came from.
type ValidationResult struct {
	Discount decimal.Decimal
	Coupon   *Coupon
}

// Service validates coupon codes against cart totals and owns the
// admin create/list/delete surface.
type Service interface {
	Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*ValidationResult, error)
	CreateCoupon(ctx context.Context, input CreateCouponInput) (*Coupon, error)
	ListCoupons(ctx context.Context) ([]Coupon, error)
	DeleteCoupon(ctx context.Context, code string) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires coupon dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "coupon repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// NormalizeCode uppercases a code the way every lookup and write does;
// SAVE20 and save20 are the same coupon.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate checks a code against the cart total and computes the
// discount. Expiry is evaluated here, at validation time; expired
// coupons stay in the store until an admin deletes them.
func (s *service) Validate(ctx context.Context, code string, cartTotal decimal.Decimal) (*ValidationResult, error) {
	coupon, err := s.repo.Get(ctx, NormalizeCode(code))
	if errors.Is(err, kv.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Invalid coupon code")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get coupon")
	}

	if coupon.ExpiryDate != "" {
		expiry, err := parseExpiry(coupon.ExpiryDate)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse coupon expiry")
		}
		if expiry.Before(s.now()) {
			return nil, pkgerrors.New(pkgerrors.CodeCouponExpired, "Coupon has expired")
		}
	}

	if coupon.MinOrderValue != nil && cartTotal.LessThan(*coupon.MinOrderValue) {
		return nil, pkgerrors.New(pkgerrors.CodeMinimumNotMet,
			fmt.Sprintf("Minimum order value of ₹%s required", coupon.MinOrderValue.String()))
	}

	discount := computeDiscount(coupon, cartTotal)
	return &ValidationResult{Discount: discount, Coupon: coupon}, nil
}

// computeDiscount applies the coupon rule. Flat discounts are not
// clamped to the cart total; the caller keeps the final total at or
// above zero.
func computeDiscount(coupon *Coupon, cartTotal decimal.Decimal) decimal.Decimal {
	if coupon.Type == TypePercentage {
		discount := cartTotal.Mul(coupon.Value).Div(oneHundred)
		if coupon.MaxDiscount != nil && discount.GreaterThan(*coupon.MaxDiscount) {
			discount = *coupon.MaxDiscount
		}
		return discount
	}
	return coupon.Value
}

func (s *service) CreateCoupon(ctx context.Context, input CreateCouponInput) (*Coupon, error) {
	coupon := &Coupon{
		Code:          NormalizeCode(input.Code),
		Type:          input.Type,
		Value:         input.Value,
		MinOrderValue: input.MinOrderValue,
		MaxDiscount:   input.MaxDiscount,
		ExpiryDate:    input.ExpiryDate,
		CreatedAt:     s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Put(ctx, coupon); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store coupon")
	}
	return coupon, nil
}

func (s *service) ListCoupons(ctx context.Context) ([]Coupon, error) {
	coupons, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list coupons")
	}
	return coupons, nil
}

// DeleteCoupon removes the key whether or not it exists.
func (s *service) DeleteCoupon(ctx context.Context, code string) error {
	if err := s.repo.Delete(ctx, NormalizeCode(code)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete coupon")
	}
	return nil
}

// parseExpiry accepts full timestamps and bare dates; a bare date means
// midnight UTC of that day.
func parseExpiry(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

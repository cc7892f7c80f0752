package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	"github.com/rivayastudio/rivaya-backend/api/validators"
	"github.com/rivayastudio/rivaya-backend/internal/coupons"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

type validateCouponRequest struct {
	Code      string          `json:"code" validate:"required"`
	CartTotal decimal.Decimal `json:"cartTotal"`
}

// ValidateCoupon checks a code against the cart total and returns the
// discount the storefront should apply.
func ValidateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validateCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Validate(r.Context(), payload.Code, payload.CartTotal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"discount": result.Discount,
			"coupon":   result.Coupon,
		})
	}
}

type createCouponRequest struct {
	Code          string           `json:"code" validate:"required"`
	Type          string           `json:"type" validate:"required,oneof=percentage flat"`
	Value         decimal.Decimal  `json:"value" validate:"required"`
	MinOrderValue *decimal.Decimal `json:"minOrderValue,omitempty"`
	MaxDiscount   *decimal.Decimal `json:"maxDiscount,omitempty"`
	ExpiryDate    string           `json:"expiryDate,omitempty"`
}

func AdminCreateCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.CreateCoupon(r.Context(), coupons.CreateCouponInput{
			Code:          payload.Code,
			Type:          payload.Type,
			Value:         payload.Value,
			MinOrderValue: payload.MinOrderValue,
			MaxDiscount:   payload.MaxDiscount,
			ExpiryDate:    payload.ExpiryDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"coupon": coupon})
	}
}

func AdminListCoupons(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListCoupons(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"coupons": list})
	}
}

func AdminDeleteCoupon(svc coupons.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteCoupon(r.Context(), chi.URLParam(r, "code")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{})
	}
}

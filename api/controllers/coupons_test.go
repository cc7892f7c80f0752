package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/internal/coupons"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

func newCouponService(t *testing.T) coupons.Service {
	t.Helper()
	svc, err := coupons.NewService(coupons.NewRepository(kv.NewMemory()))
	if err != nil {
		t.Fatalf("coupon service: %v", err)
	}
	return svc
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	var decoded map[string]any
	if err := json.NewDecoder(w.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w, decoded
}

func TestValidateCouponRequiresCode(t *testing.T) {
	handler := ValidateCoupon(newCouponService(t), nil)

	w, body := postJSON(t, handler, `{"cartTotal": 1000}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["success"] != false {
		t.Fatalf("unexpected envelope %v", body)
	}
}

func TestValidateCouponUnknownCode(t *testing.T) {
	handler := ValidateCoupon(newCouponService(t), nil)

	w, body := postJSON(t, handler, `{"code":"NOPE","cartTotal":1000}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body["error"] != "Invalid coupon code" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestValidateCouponBelowMinimum(t *testing.T) {
	svc := newCouponService(t)
	minimum := decimal.NewFromInt(2000)
	_, err := svc.CreateCoupon(context.Background(), coupons.CreateCouponInput{
		Code:          "BIGSPEND",
		Type:          "flat",
		Value:         decimal.NewFromInt(300),
		MinOrderValue: &minimum,
	})
	if err != nil {
		t.Fatalf("create coupon: %v", err)
	}

	w, body := postJSON(t, ValidateCoupon(svc, nil), `{"code":"BIGSPEND","cartTotal":500}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["error"] != "Minimum order value of ₹2000 required" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestAdminCreateCouponRejectsBadType(t *testing.T) {
	handler := AdminCreateCoupon(newCouponService(t), nil)

	w, body := postJSON(t, handler, `{"code":"SAVE10","type":"bogus","value":10}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if body["success"] != false {
		t.Fatalf("unexpected envelope %v", body)
	}
}

func TestAdminCreateCouponUppercasesCode(t *testing.T) {
	svc := newCouponService(t)
	handler := AdminCreateCoupon(svc, nil)

	w, body := postJSON(t, handler, `{"code":"save10","type":"percentage","value":10}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	coupon := body["coupon"].(map[string]any)
	if fmt.Sprintf("%v", coupon["code"]) != "SAVE10" {
		t.Fatalf("stored code = %v, want SAVE10", coupon["code"])
	}
}

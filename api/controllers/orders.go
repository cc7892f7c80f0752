package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	"github.com/rivayastudio/rivaya-backend/api/validators"
	"github.com/rivayastudio/rivaya-backend/internal/orders"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

type orderItemRequest struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	Image     string          `json:"image,omitempty"`
}

type orderCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

type createOrderRequest struct {
	Items         []orderItemRequest   `json:"items" validate:"required,min=1,dive"`
	Customer      orderCustomerRequest `json:"customer" validate:"required"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"discount"`
	CouponCode    string               `json:"couponCode,omitempty"`
	Shipping      decimal.Decimal      `json:"shipping"`
	Total         decimal.Decimal      `json:"total"`
	PaymentMethod string               `json:"paymentMethod,omitempty"`
}

// CreateOrder accepts a storefront checkout. Totals are stored as
// submitted.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]orders.OrderItem, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, orders.OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Image:     item.Image,
			})
		}

		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			Items: items,
			Customer: orders.Customer{
				Name:    payload.Customer.Name,
				Email:   payload.Customer.Email,
				Phone:   payload.Customer.Phone,
				Address: payload.Customer.Address,
				City:    payload.Customer.City,
				State:   payload.Customer.State,
				Pincode: payload.Customer.Pincode,
			},
			Subtotal:      payload.Subtotal,
			Discount:      payload.Discount,
			CouponCode:    payload.CouponCode,
			Shipping:      payload.Shipping,
			Total:         payload.Total,
			PaymentMethod: payload.PaymentMethod,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"order":   order,
			"orderId": order.ID,
		})
	}
}

// GetOrder serves the public order-tracking lookup.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order": order})
	}
}

func AdminListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": list})
	}
}

// AdminUpdateOrder applies the body as a shallow patch, usually just
// {"status": ...}.
func AdminUpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch map[string]any
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(patch) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "empty update"))
			return
		}

		order, err := svc.Update(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"order": order})
	}
}

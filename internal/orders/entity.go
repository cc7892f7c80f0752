package orders

import "github.com/shopspring/decimal"

// Status is the order lifecycle state. Transitions are advisory: the
// admin panel moves orders pending → confirmed → packed → shipped →
// delivered (or cancelled), but the service accepts any target status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPacked    Status = "packed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Known reports whether s is one of the recognised lifecycle states.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPacked, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether an order may move from s to next.
// Every move is currently allowed; the hook exists so a stricter
// policy can be added without touching callers.
func (s Status) CanTransition(next Status) bool {
	return next.Known()
}

// OrderItem is a point-in-time snapshot of a purchased product. Later
// catalog edits never change what an order shows.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image,omitempty"`
}

// Customer holds the shipping contact captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// Order is a stored order record. Subtotal, discount, shipping and
// total arrive from the storefront and are persisted as given.
type Order struct {
	ID            string          `json:"id"`
	Items         []OrderItem     `json:"items"`
	Customer      Customer        `json:"customer"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Discount      decimal.Decimal `json:"discount"`
	CouponCode    string          `json:"couponCode,omitempty"`
	Shipping      decimal.Decimal `json:"shipping"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	Status        Status          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

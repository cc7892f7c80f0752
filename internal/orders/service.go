package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/internal/settings"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/ids"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
	"github.com/rivayastudio/rivaya-backend/pkg/metrics"
	"github.com/rivayastudio/rivaya-backend/pkg/record"
)

const notifyTimeout = 15 * time.Second

// Notifier delivers the new-order WhatsApp message.
type Notifier interface {
	Send(ctx context.Context, phone, apiKey, message string) error
}

// SettingsSource exposes the stored site settings, including the
// notification api key that the public settings view strips.
type SettingsSource interface {
	Raw(ctx context.Context) (*settings.Settings, error)
}

// CreateOrderInput carries the checkout payload. Totals arrive from
// the storefront and are stored as given; the server does not recompute
// them.
type CreateOrderInput struct {
	Items         []OrderItem
	Customer      Customer
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	CouponCode    string
	Shipping      decimal.Decimal
	Total         decimal.Decimal
	PaymentMethod string
}

// Service owns the order lifecycle.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	Update(ctx context.Context, id string, patch map[string]any) (*Order, error)
}

type service struct {
	repo     Repository
	settings SettingsSource
	notifier Notifier
	metrics  *metrics.OrderMetrics
	log      *logger.Logger
	now      func() time.Time

	dispatch sync.WaitGroup
}

// NewService wires order dependencies. Settings, notifier, metrics and
// logger are optional: without them orders still persist, only the
// notification side channel goes quiet.
func NewService(repo Repository, source SettingsSource, notifier Notifier, orderMetrics *metrics.OrderMetrics, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	return &service{
		repo:     repo,
		settings: source,
		notifier: notifier,
		metrics:  orderMetrics,
		log:      log,
		now:      time.Now,
	}, nil
}

// Create persists the order and fires the owner notification on a
// detached goroutine; notification failures never fail the order.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	now := s.now().UTC()
	items := input.Items
	if items == nil {
		items = []OrderItem{}
	}

	order := &Order{
		ID:            ids.New("ORD", now),
		Items:         items,
		Customer:      input.Customer,
		Subtotal:      input.Subtotal,
		Discount:      input.Discount,
		CouponCode:    input.CouponCode,
		Shipping:      input.Shipping,
		Total:         input.Total,
		PaymentMethod: input.PaymentMethod,
		Status:        StatusPending,
		CreatedAt:     now.Format(time.RFC3339),
		UpdatedAt:     now.Format(time.RFC3339),
	}

	if err := s.repo.Put(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order")
	}
	s.metrics.IncOrderCreated()

	snapshot := *order
	s.dispatch.Add(1)
	go func() {
		defer s.dispatch.Done()
		// The request context ends when the response is written, so
		// the dispatch runs on its own deadline.
		dispatchCtx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		s.notifyNewOrder(dispatchCtx, &snapshot)
	}()

	return order, nil
}

func (s *service) Get(ctx context.Context, id string) (*Order, error) {
	order, err := s.repo.Get(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get order")
	}
	return order, nil
}

// List returns every order, newest first.
func (s *service) List(ctx context.Context) ([]Order, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	sort.SliceStable(all, func(i, j int) bool {
		return parseTimestamp(all[j].CreatedAt).Before(parseTimestamp(all[i].CreatedAt))
	})
	return all, nil
}

// Update merges the patch over the stored record and rewrites the whole
// value. Status is merged as submitted; the panel drives which states
// follow which. Only non-string status values are rejected, since the
// stored record could no longer decode.
func (s *service) Update(ctx context.Context, id string, patch map[string]any) (*Order, error) {
	if raw, ok := patch["status"]; ok {
		if _, isString := raw.(string); !isString {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be a string")
		}
	}

	raw, err := s.repo.GetRaw(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get order")
	}

	merged, err := record.Merge(raw, patch, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge order")
	}
	if err := s.repo.PutRaw(ctx, id, merged); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order")
	}

	var order Order
	if err := json.Unmarshal(merged, &order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode merged order")
	}
	return &order, nil
}

func (s *service) notifyNewOrder(ctx context.Context, order *Order) {
	if s.notifier == nil || s.settings == nil {
		s.metrics.IncNotifySkipped()
		return
	}
	if s.log != nil {
		ctx = s.log.WithOrderID(ctx, order.ID)
	}

	cfg, err := s.settings.Raw(ctx)
	if err != nil {
		s.metrics.IncNotifyFailure()
		s.logError(ctx, "load settings for order notification", err)
		return
	}

	phone := phoneDigits(cfg.ContactPhone)
	if phone == "" {
		phone = phoneDigits(cfg.Whatsapp)
	}
	if cfg.WhatsappAPIKey == "" || phone == "" {
		s.metrics.IncNotifySkipped()
		s.logInfo(ctx, "order notification skipped, gateway not configured")
		return
	}

	if err := s.notifier.Send(ctx, phone, cfg.WhatsappAPIKey, formatOrderMessage(order)); err != nil {
		s.metrics.IncNotifyFailure()
		s.logError(ctx, "send order notification", err)
		return
	}
	s.metrics.IncNotifySuccess()
	s.logInfo(ctx, "order notification sent")
}

func (s *service) logInfo(ctx context.Context, msg string) {
	if s.log != nil {
		s.log.Info(ctx, msg)
	}
}

func (s *service) logError(ctx context.Context, msg string, err error) {
	if s.log != nil {
		s.log.Error(ctx, msg, err)
	}
}

func formatOrderMessage(order *Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🎉 New Order Received!\n\n")
	fmt.Fprintf(&b, "Order ID: %s\n", order.ID)
	fmt.Fprintf(&b, "Customer: %s\n", order.Customer.Name)
	fmt.Fprintf(&b, "Phone: %s\n", order.Customer.Phone)
	fmt.Fprintf(&b, "Items: %d\n", len(order.Items))
	if order.PaymentMethod != "" {
		fmt.Fprintf(&b, "Payment: %s\n", order.PaymentMethod)
	}
	fmt.Fprintf(&b, "Total: ₹%s", order.Total.String())
	return b.String()
}

// phoneDigits strips everything but digits so "+91 98765 43210"
// becomes the bare number the gateway expects.
func phoneDigits(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

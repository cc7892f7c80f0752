package stats

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	"github.com/rivayastudio/rivaya-backend/internal/orders"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
)

// Summary is the admin dashboard snapshot. Product counts include
// inactive products; revenue sums every order that is not cancelled,
// whatever its other lifecycle state.
type Summary struct {
	TotalProducts int             `json:"totalProducts"`
	TotalOrders   int             `json:"totalOrders"`
	PendingOrders int             `json:"pendingOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// Service computes dashboard numbers on demand; nothing is cached or
// precomputed.
type Service interface {
	Summarize(ctx context.Context) (*Summary, error)
}

type service struct {
	products catalog.Repository
	orders   orders.Repository
}

// NewService wires stats dependencies.
func NewService(products catalog.Repository, orderRepo orders.Repository) (Service, error) {
	if products == nil || orderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "stats repositories required")
	}
	return &service{products: products, orders: orderRepo}, nil
}

func (s *service) Summarize(ctx context.Context) (*Summary, error) {
	allProducts, err := s.products.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	allOrders, err := s.orders.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}

	summary := &Summary{
		TotalProducts: len(allProducts),
		TotalOrders:   len(allOrders),
		TotalRevenue:  decimal.Zero,
	}
	for _, order := range allOrders {
		if order.Status == orders.StatusPending {
			summary.PendingOrders++
		}
		if order.Status != orders.StatusCancelled {
			summary.TotalRevenue = summary.TotalRevenue.Add(order.Total)
		}
	}
	return summary, nil
}

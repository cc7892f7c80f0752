package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/ids"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/record"
)

// Sort orders accepted by the public listing.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ListFilter narrows the public product listing. Price bounds are
// inclusive. Category matching is skipped for empty and "all".
type ListFilter struct {
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

// CreateProductInput carries the admin-submitted product fields.
type CreateProductInput struct {
	Name             string
	Category         string
	Price            decimal.Decimal
	DiscountPrice    *decimal.Decimal
	ShortDescription string
	Description      string
	Weight           string
	Material         string
	Stock            int
	Images           []string
	Active           *bool
}

// Service owns products and the category list.
type Service interface {
	ListProducts(ctx context.Context, filter ListFilter) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, patch map[string]any) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]Category, error)
	ReplaceCategories(ctx context.Context, categories []Category) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires catalog dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// ListProducts scans every product record, applies the filters and
// always drops inactive products: public callers never see them.
func (s *service) ListProducts(ctx context.Context, filter ListFilter) ([]Product, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	products := make([]Product, 0, len(all))
	for _, product := range all {
		if filter.Category != "" && filter.Category != "all" && product.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && product.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && product.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		if !product.Active {
			continue
		}
		products = append(products, product)
	}

	switch filter.Sort {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[j].Price.LessThan(products[i].Price)
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return parseTimestamp(products[j].CreatedAt).Before(parseTimestamp(products[i].CreatedAt))
		})
	}

	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.Get(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get product")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	now := s.now().UTC()
	active := true
	if input.Active != nil {
		active = *input.Active
	}
	images := input.Images
	if images == nil {
		images = []string{}
	}

	product := &Product{
		ID:               ids.New("PRD", now),
		Name:             input.Name,
		Category:         input.Category,
		Price:            input.Price,
		DiscountPrice:    input.DiscountPrice,
		ShortDescription: input.ShortDescription,
		Description:      input.Description,
		Weight:           input.Weight,
		Material:         input.Material,
		Stock:            input.Stock,
		Images:           images,
		Active:           active,
		CreatedAt:        now.Format(time.RFC3339),
		UpdatedAt:        now.Format(time.RFC3339),
	}

	if err := s.repo.Put(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store product")
	}
	return product, nil
}

// UpdateProduct merges the patch over the stored record field by field
// and rewrites the whole value; omitted fields keep their stored values.
func (s *service) UpdateProduct(ctx context.Context, id string, patch map[string]any) (*Product, error) {
	raw, err := s.repo.GetRaw(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get product")
	}

	merged, err := record.Merge(raw, patch, s.now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "merge product")
	}
	if err := s.repo.PutRaw(ctx, id, merged); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store product")
	}

	var product Product
	if err := json.Unmarshal(merged, &product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode merged product")
	}
	return &product, nil
}

// DeleteProduct removes the key whether or not it exists.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}

// ReplaceCategories overwrites the whole list; callers submit the
// complete desired state, not a diff.
func (s *service) ReplaceCategories(ctx context.Context, categories []Category) error {
	if categories == nil {
		categories = []Category{}
	}
	if err := s.repo.ReplaceCategories(ctx, categories); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace categories")
	}
	return nil
}

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

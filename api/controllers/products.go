package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	"github.com/rivayastudio/rivaya-backend/api/validators"
	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

// ListProducts serves the public storefront listing.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minPrice, err := validators.ParseQueryDecimal(r, "minPrice")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		maxPrice, err := validators.ParseQueryDecimal(r, "maxPrice")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.ListFilter{
			Category: validators.SanitizeString(r.URL.Query().Get("category"), 100),
			MinPrice: minPrice,
			MaxPrice: maxPrice,
			Sort:     validators.SanitizeString(r.URL.Query().Get("sort"), 20),
		}

		products, err := svc.ListProducts(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}

type createProductRequest struct {
	Name             string           `json:"name" validate:"required"`
	Category         string           `json:"category" validate:"required"`
	Price            decimal.Decimal  `json:"price" validate:"required"`
	DiscountPrice    *decimal.Decimal `json:"discountPrice,omitempty"`
	ShortDescription string           `json:"shortDescription,omitempty"`
	Description      string           `json:"description,omitempty"`
	Weight           string           `json:"weight,omitempty"`
	Material         string           `json:"material,omitempty"`
	Stock            int              `json:"stock,omitempty" validate:"omitempty,min=0"`
	Images           []string         `json:"images,omitempty"`
	Active           *bool            `json:"active,omitempty"`
}

func AdminCreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Name:             payload.Name,
			Category:         payload.Category,
			Price:            payload.Price,
			DiscountPrice:    payload.DiscountPrice,
			ShortDescription: payload.ShortDescription,
			Description:      payload.Description,
			Weight:           payload.Weight,
			Material:         payload.Material,
			Stock:            payload.Stock,
			Images:           payload.Images,
			Active:           payload.Active,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"product": product})
	}
}

// AdminUpdateProduct applies the body as a shallow patch; fields absent
// from the body keep their stored values.
func AdminUpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
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

		product, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), patch)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"product": product})
	}
}

func AdminDeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{})
	}
}

package controllers

import (
	"net/http"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	"github.com/rivayastudio/rivaya-backend/api/validators"
	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

func ListCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

type replaceCategoriesRequest struct {
	Categories []categoryRequest `json:"categories" validate:"required,dive"`
}

type categoryRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// AdminReplaceCategories overwrites the whole category list with the
// submitted one.
func AdminReplaceCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload replaceCategoriesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categories := make([]catalog.Category, 0, len(payload.Categories))
		for _, category := range payload.Categories {
			categories = append(categories, catalog.Category{
				ID:          category.ID,
				Name:        category.Name,
				Description: category.Description,
			})
		}

		if err := svc.ReplaceCategories(r.Context(), categories); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

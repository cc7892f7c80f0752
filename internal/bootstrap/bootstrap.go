// Package bootstrap seeds the store on first boot: jewellery
// categories, site settings and the admin login. Seeding is
// idempotent; existing records are never overwritten.
package bootstrap

import (
	"context"

	"go.uber.org/multierr"

	"github.com/rivayastudio/rivaya-backend/internal/adminauth"
	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	"github.com/rivayastudio/rivaya-backend/internal/settings"
	"github.com/rivayastudio/rivaya-backend/pkg/config"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
)

// DefaultCategories is the category list seeded on an empty store.
func DefaultCategories() []catalog.Category {
	return []catalog.Category{
		{ID: "rings", Name: "Rings"},
		{ID: "earrings", Name: "Earrings"},
		{ID: "necklaces", Name: "Necklaces"},
		{ID: "bracelets", Name: "Bracelets"},
		{ID: "anklets", Name: "Anklets"},
		{ID: "pendants", Name: "Pendants"},
	}
}

// Seeder writes first-boot records.
type Seeder struct {
	catalog  catalog.Service
	settings settings.Service
	auth     adminauth.Service
	admin    config.AdminConfig
}

// NewSeeder wires the seeding dependencies.
func NewSeeder(catalogSvc catalog.Service, settingsSvc settings.Service, authSvc adminauth.Service, admin config.AdminConfig) (*Seeder, error) {
	if catalogSvc == nil || settingsSvc == nil || authSvc == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "seeder services required")
	}
	return &Seeder{catalog: catalogSvc, settings: settingsSvc, auth: authSvc, admin: admin}, nil
}

// Seed runs every seeding step and aggregates their failures so one
// broken step does not hide the others.
func (s *Seeder) Seed(ctx context.Context) error {
	return multierr.Combine(
		s.seedCategories(ctx),
		s.settings.EnsureDefaults(ctx),
		s.seedCredentials(ctx),
	)
}

func (s *Seeder) seedCategories(ctx context.Context) error {
	existing, err := s.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	return s.catalog.ReplaceCategories(ctx, DefaultCategories())
}

func (s *Seeder) seedCredentials(ctx context.Context) error {
	secret := s.admin.Password
	if s.admin.PasswordHash != "" {
		secret = s.admin.PasswordHash
	}
	return s.auth.EnsureCredentials(ctx, s.admin.Username, secret)
}

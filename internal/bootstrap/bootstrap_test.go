package bootstrap

import (
	"context"
	"testing"

	"github.com/rivayastudio/rivaya-backend/internal/adminauth"
	"github.com/rivayastudio/rivaya-backend/internal/catalog"
	"github.com/rivayastudio/rivaya-backend/internal/settings"
	"github.com/rivayastudio/rivaya-backend/pkg/config"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

func newSeededEnv(t *testing.T) (*Seeder, catalog.Service, settings.Service, adminauth.Service) {
	t.Helper()
	store := kv.NewMemory()

	catalogSvc, err := catalog.NewService(catalog.NewRepository(store))
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	settingsSvc, err := settings.NewService(store)
	if err != nil {
		t.Fatalf("settings service: %v", err)
	}
	authSvc, err := adminauth.NewService(store, nil)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}

	seeder, err := NewSeeder(catalogSvc, settingsSvc, authSvc, config.AdminConfig{
		Username: "admin",
		Password: "admin123",
	})
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}
	return seeder, catalogSvc, settingsSvc, authSvc
}

func TestSeedPopulatesEmptyStore(t *testing.T) {
	seeder, catalogSvc, settingsSvc, authSvc := newSeededEnv(t)

	if err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	categories, err := catalogSvc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 6 {
		t.Fatalf("seeded %d categories, want 6", len(categories))
	}

	site, err := settingsSvc.Get(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if site.SiteName != "RIVAYA JEWELLERY" {
		t.Fatalf("site name = %q", site.SiteName)
	}

	if _, err := authSvc.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("login with seeded credentials: %v", err)
	}
}

func TestSeedPreservesExistingRecords(t *testing.T) {
	seeder, catalogSvc, settingsSvc, _ := newSeededEnv(t)

	custom := []catalog.Category{{ID: "bespoke", Name: "Bespoke"}}
	if err := catalogSvc.ReplaceCategories(context.Background(), custom); err != nil {
		t.Fatalf("replace categories: %v", err)
	}
	renamed := settings.Defaults()
	renamed.SiteName = "renamed"
	if _, err := settingsSvc.Update(context.Background(), renamed); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	if err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	categories, err := catalogSvc.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(categories) != 1 || categories[0].ID != "bespoke" {
		t.Fatalf("seed replaced existing categories: %+v", categories)
	}
	site, err := settingsSvc.Get(context.Background())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if site.SiteName != "renamed" {
		t.Fatalf("seed overwrote settings: %q", site.SiteName)
	}
}

func TestSeedPrefersConfiguredHash(t *testing.T) {
	store := kv.NewMemory()
	catalogSvc, _ := catalog.NewService(catalog.NewRepository(store))
	settingsSvc, _ := settings.NewService(store)
	authSvc, _ := adminauth.NewService(store, nil)

	seeder, err := NewSeeder(catalogSvc, settingsSvc, authSvc, config.AdminConfig{
		Username:     "admin",
		Password:     "ignored",
		PasswordHash: "$argon2id$v=19$m=8,t=1,p=1$AAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAA",
	})
	if err != nil {
		t.Fatalf("new seeder: %v", err)
	}
	if err := seeder.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	// The plaintext fallback must not work once a hash is configured.
	if _, err := authSvc.Login(context.Background(), "admin", "ignored"); err == nil {
		t.Fatal("plaintext password accepted despite configured hash")
	}
}

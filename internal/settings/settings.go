package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
)

const settingsKey = "settings"

// Settings is the single mutable site-wide record. RazorpayKeySecret is
// write-only: admins may set it on update but Get never returns it.
type Settings struct {
	SiteName          string          `json:"siteName"`
	Tagline           string          `json:"tagline,omitempty"`
	ContactEmail      string          `json:"contactEmail,omitempty"`
	ContactPhone      string          `json:"contactPhone,omitempty"`
	Whatsapp          string          `json:"whatsapp,omitempty"`
	Address           string          `json:"address,omitempty"`
	ShippingCharges   decimal.Decimal `json:"shippingCharges"`
	FreeShippingAbove decimal.Decimal `json:"freeShippingAbove"`
	RazorpayKeyID     string          `json:"razorpayKeyId,omitempty"`
	RazorpayKeySecret string          `json:"razorpayKeySecret,omitempty"`
	EnableCOD         bool            `json:"enableCOD"`
	WhatsappAPIKey    string          `json:"whatsappApiKey,omitempty"`
	Banners           []string        `json:"banners"`
	UpdatedAt         string          `json:"updatedAt,omitempty"`
}

// Defaults returns the record seeded on first boot.
func Defaults() Settings {
	return Settings{
		SiteName:          "RIVAYA JEWELLERY",
		Tagline:           "Where Elegance Whispers",
		ContactEmail:      "info@rivayajewellery.com",
		ContactPhone:      "+91 9876543210",
		Whatsapp:          "+919876543210",
		Address:           "Mumbai, Maharashtra, India",
		ShippingCharges:   decimal.NewFromInt(50),
		FreeShippingAbove: decimal.NewFromInt(1000),
		EnableCOD:         true,
		Banners:           []string{},
	}
}

// Service owns the settings singleton.
type Service interface {
	// Get returns the record with the gateway secret stripped; admin
	// and public callers receive the same view.
	Get(ctx context.Context) (*Settings, error)
	// Raw returns the stored record including the secret. Internal
	// callers only (notification dispatch); never exposed over HTTP.
	Raw(ctx context.Context) (*Settings, error)
	// Update replaces the whole record; omitted fields are lost.
	Update(ctx context.Context, next Settings) (*Settings, error)
	// EnsureDefaults writes the default record when none exists.
	EnsureDefaults(ctx context.Context) error
}

type service struct {
	store kv.Store
	now   func() time.Time
}

// NewService wires settings dependencies.
func NewService(store kv.Store) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings store required")
	}
	return &service{store: store, now: time.Now}, nil
}

func (s *service) Get(ctx context.Context) (*Settings, error) {
	stored, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	public := *stored
	public.RazorpayKeySecret = ""
	return &public, nil
}

func (s *service) Raw(ctx context.Context) (*Settings, error) {
	raw, err := s.store.Get(ctx, settingsKey)
	if errors.Is(err, kv.ErrNotFound) {
		defaults := Defaults()
		return &defaults, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "get settings")
	}
	var stored Settings
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("decode settings: %w", err), "decode settings")
	}
	return &stored, nil
}

func (s *service) Update(ctx context.Context, next Settings) (*Settings, error) {
	if next.Banners == nil {
		next.Banners = []string{}
	}
	next.UpdatedAt = s.now().UTC().Format(time.RFC3339)

	raw, err := json.Marshal(next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode settings")
	}
	if err := s.store.Set(ctx, settingsKey, raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store settings")
	}

	public := next
	public.RazorpayKeySecret = ""
	return &public, nil
}

func (s *service) EnsureDefaults(ctx context.Context) error {
	_, err := s.store.Get(ctx, settingsKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check settings")
	}

	raw, err := json.Marshal(Defaults())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode default settings")
	}
	if err := s.store.Set(ctx, settingsKey, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store default settings")
	}
	return nil
}

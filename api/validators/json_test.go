package validators

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
)

type decodeTarget struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"omitempty,min=1"`
}

func decodeRequest(t *testing.T, body string, dest any) error {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	return DecodeJSONBody(r, dest)
}

func TestDecodeJSONBodyToleratesUnknownFields(t *testing.T) {
	var dest decodeTarget
	// Storefront payloads routinely carry fields the server never
	// reads; they must not fail the request.
	if err := decodeRequest(t, `{"name":"ring","giftWrap":true}`, &dest); err != nil {
		t.Fatalf("decode with extra field: %v", err)
	}
	if dest.Name != "ring" {
		t.Fatalf("name = %q", dest.Name)
	}
}

func TestDecodeJSONBodyValidatesStructTags(t *testing.T) {
	var dest decodeTarget
	err := decodeRequest(t, `{"count":1}`, &dest)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestDecodeJSONBodySkipsValidationForMaps(t *testing.T) {
	patch := map[string]any{}
	if err := decodeRequest(t, `{"status":"shipped","note":"ok"}`, &patch); err != nil {
		t.Fatalf("decode into map: %v", err)
	}
	if patch["status"] != "shipped" {
		t.Fatalf("patch = %v", patch)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var dest decodeTarget
	err := decodeRequest(t, `{"name":`, &dest)
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("err = %v, want validation error", err)
	}
}

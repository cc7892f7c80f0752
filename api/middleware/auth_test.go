package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeVerifier struct {
	valid map[string]bool
	err   error
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.valid[token], nil
}

func protectedHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if AdminTokenFromContext(r.Context()) == "" {
			t.Error("expected token in request context")
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func TestAdminAuthAcceptsLiveToken(t *testing.T) {
	handler := AdminAuth(&fakeVerifier{valid: map[string]bool{"admin_1_abc": true}}, nil)(protectedHandler(t))

	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	r.Header.Set("X-Admin-Token", "admin_1_abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 but got %d", w.Code)
	}
}

func TestAdminAuthRejectsMissingAndUnknownTokens(t *testing.T) {
	verifier := &fakeVerifier{valid: map[string]bool{}}
	handler := AdminAuth(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	for _, token := range []string{"", "admin_1_unknown"} {
		r := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		if token != "" {
			r.Header.Set("X-Admin-Token", token)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("token %q: expected 401 but got %d", token, w.Code)
		}
		var body map[string]any
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["success"] != false || body["error"] != "Unauthorized" {
			t.Fatalf("unexpected envelope %v", body)
		}
	}
}

func TestAdminAuthSurfacesVerifierFailure(t *testing.T) {
	handler := AdminAuth(&fakeVerifier{err: errors.New("store down")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	r.Header.Set("X-Admin-Token", "admin_1_abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 but got %d", w.Code)
	}
}

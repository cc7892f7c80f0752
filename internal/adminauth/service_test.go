package adminauth

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/rivayastudio/rivaya-backend/pkg/config"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/security"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestService(t *testing.T) *service {
	t.Helper()
	return &service{
		store: kv.NewMemory(),
		match: DefaultMatcher,
		now:   fixedClock(time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)),
	}
}

func seed(t *testing.T, svc *service, username, secret string) {
	t.Helper()
	if err := svc.EnsureCredentials(context.Background(), username, secret); err != nil {
		t.Fatalf("seed credentials: %v", err)
	}
}

func wantUnauthorized(t *testing.T, err error) {
	t.Helper()
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("err = %v, want unauthorized", err)
	}
	if appErr.Message() != "Invalid credentials" {
		t.Fatalf("message = %q", appErr.Message())
	}
}

func TestLoginIssuesOpaqueToken(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "admin", "admin123")

	token, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	parts := strings.SplitN(token, "_", 3)
	if len(parts) != 3 || parts[0] != "admin" {
		t.Fatalf("token = %q, want admin_<millis>_<suffix>", token)
	}
	millis, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		t.Fatalf("token millis segment %q: %v", parts[1], err)
	}
	if got := time.UnixMilli(millis).UTC(); !got.Equal(time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("token timestamp = %v", got)
	}
	if len(parts[2]) != 9 {
		t.Fatalf("token suffix %q, want 9 chars", parts[2])
	}

	ok, err := svc.Verify(context.Background(), token)
	if err != nil || !ok {
		t.Fatalf("verify fresh token = %v, %v", ok, err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "admin", "admin123")

	_, err := svc.Login(context.Background(), "admin", "wrong")
	wantUnauthorized(t, err)
}

func TestLoginRejectsWrongUsername(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "admin", "admin123")

	_, err := svc.Login(context.Background(), "root", "admin123")
	wantUnauthorized(t, err)
}

func TestLoginWithoutSeededCredentials(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login(context.Background(), "admin", "admin123")
	wantUnauthorized(t, err)
}

func TestLoginAgainstHashedSecret(t *testing.T) {
	svc := newTestService(t)
	// Minimal parameters keep the test fast.
	hash, err := security.HashPassword("s3cret", config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	seed(t, svc, "admin", hash)

	if _, err := svc.Login(context.Background(), "admin", "s3cret"); err != nil {
		t.Fatalf("login with hashed secret: %v", err)
	}
	_, err = svc.Login(context.Background(), "admin", "not-it")
	wantUnauthorized(t, err)
}

func TestVerifyUnknownAndEmptyTokens(t *testing.T) {
	svc := newTestService(t)

	for _, token := range []string{"", "   ", "admin_1_nope"} {
		ok, err := svc.Verify(context.Background(), token)
		if err != nil {
			t.Fatalf("verify %q: %v", token, err)
		}
		if ok {
			t.Fatalf("verify %q = true, want false", token)
		}
	}
}

func TestLogoutEndsSessionAndIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "admin", "admin123")

	token, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if ok, _ := svc.Verify(context.Background(), token); ok {
		t.Fatal("token still valid after logout")
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("logout with empty token: %v", err)
	}
}

func TestEnsureCredentialsDoesNotOverwrite(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "admin", "first")
	seed(t, svc, "admin", "second")

	if _, err := svc.Login(context.Background(), "admin", "first"); err != nil {
		t.Fatalf("original credentials stopped working: %v", err)
	}
	_, err := svc.Login(context.Background(), "admin", "second")
	wantUnauthorized(t, err)
}

func TestSessionsDoNotExpire(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc, "admin", "admin123")

	token, err := svc.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// A verify long after issuance still succeeds; there is no TTL.
	svc.now = fixedClock(time.Date(2027, 3, 1, 14, 0, 0, 0, time.UTC))
	ok, err := svc.Verify(context.Background(), token)
	if err != nil || !ok {
		t.Fatalf("verify after a year = %v, %v", ok, err)
	}
}

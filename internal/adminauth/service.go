package adminauth

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/ids"
	"github.com/rivayastudio/rivaya-backend/pkg/kv"
	"github.com/rivayastudio/rivaya-backend/pkg/security"
)

const (
	credentialsKey   = "admin:credentials"
	sessionKeyPrefix = "admin:session:"
)

// Credentials is the stored admin login record. Secret is either a
// plaintext password or an argon2id hash; Matcher tells them apart.
type Credentials struct {
	Username string `json:"username"`
	Secret   string `json:"password"`
}

// Session is a stored login session. Sessions never expire; they live
// until an explicit logout deletes them.
type Session struct {
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

// Matcher decides whether a submitted password matches the stored
// secret. Pluggable so deployments can move from plaintext seeds to
// hashed secrets without touching the login flow.
type Matcher func(submitted, stored string) (bool, error)

// DefaultMatcher verifies argon2id-encoded secrets and falls back to a
// constant-time comparison for plaintext ones.
func DefaultMatcher(submitted, stored string) (bool, error) {
	if security.IsHash(stored) {
		return security.VerifyPassword(submitted, stored)
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1, nil
}

// Service owns admin login, session verification and logout.
type Service interface {
	// Login returns an opaque session token, or an unauthorized error
	// when either the username or the password is wrong.
	Login(ctx context.Context, username, password string) (string, error)
	// Verify reports whether the token names a live session. Unknown
	// and empty tokens answer false without error.
	Verify(ctx context.Context, token string) (bool, error)
	// Logout deletes the session; logging out twice is fine.
	Logout(ctx context.Context, token string) error
	// EnsureCredentials seeds the login record when none exists.
	EnsureCredentials(ctx context.Context, username, secret string) error
}

type service struct {
	store kv.Store
	match Matcher
	now   func() time.Time
}

// NewService wires auth dependencies.
func NewService(store kv.Store, match Matcher) (Service, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "auth store required")
	}
	if match == nil {
		match = DefaultMatcher
	}
	return &service{store: store, match: match, now: time.Now}, nil
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

func (s *service) Login(ctx context.Context, username, password string) (string, error) {
	raw, err := s.store.Get(ctx, credentialsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load credentials")
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode credentials")
	}

	ok, err := s.match(password, creds.Secret)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "match credentials")
	}
	if username != creds.Username || !ok {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
	}

	now := s.now().UTC()
	token := fmt.Sprintf("admin_%d_%s", now.UnixMilli(), ids.Suffix(9))
	session, err := json.Marshal(Session{
		Username:  creds.Username,
		CreatedAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session")
	}
	if err := s.store.Set(ctx, sessionKey(token), session); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store session")
	}
	return token, nil
}

func (s *service) Verify(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, nil
	}
	_, err := s.store.Get(ctx, sessionKey(token))
	if errors.Is(err, kv.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session")
	}
	return true, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.store.Delete(ctx, sessionKey(token)); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete session")
	}
	return nil
}

func (s *service) EnsureCredentials(ctx context.Context, username, secret string) error {
	_, err := s.store.Get(ctx, credentialsKey)
	if err == nil {
		return nil
	}
	if !errors.Is(err, kv.ErrNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check credentials")
	}

	raw, err := json.Marshal(Credentials{Username: username, Secret: secret})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode credentials")
	}
	if err := s.store.Set(ctx, credentialsKey, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store credentials")
	}
	return nil
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	pkgerrors "github.com/rivayastudio/rivaya-backend/pkg/errors"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

const adminTokenHeader = "X-Admin-Token"

type ctxKeyAdminToken struct{}

// TokenVerifier reports whether a session token is live.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// AdminTokenFromContext returns the verified session token, or "".
func AdminTokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(ctxKeyAdminToken{}).(string); ok {
		return token
	}
	return ""
}

// AdminAuth guards admin routes: the request must carry a live session
// token in the X-Admin-Token header.
func AdminAuth(verifier TokenVerifier, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := strings.TrimSpace(r.Header.Get(adminTokenHeader))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}

			if verifier == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
				return
			}

			ok, err := verifier.Verify(r.Context(), token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify session"))
				return
			}
			if !ok {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdminToken{}, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/rivayastudio/rivaya-backend/api/responses"
	"github.com/rivayastudio/rivaya-backend/api/validators"
	"github.com/rivayastudio/rivaya-backend/internal/adminauth"
	"github.com/rivayastudio/rivaya-backend/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func AdminLogin(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Login(r.Context(), payload.Username, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithAdminUser(r.Context(), payload.Username), "admin.login")
		}
		responses.WriteSuccess(w, map[string]any{"token": token})
	}
}

// AdminLogout deletes the session named by the X-Admin-Token header.
// Unknown tokens still answer success.
func AdminLogout(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
		if err := svc.Logout(r.Context(), token); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{})
	}
}

// AdminVerify lets the panel check a stored token before rendering.
func AdminVerify(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("X-Admin-Token"))
		ok, err := svc.Verify(r.Context(), token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"valid": ok})
	}
}

package middlewares

import (
	"carerouter-service/internal/pkg/constvars"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const clientCookieMaxAge = 365 * 24 * time.Hour

// ClientIDMiddleware identifies the browser the way local storage would: a
// long lived cookie, or an explicit header for non-browser clients. Unknown
// clients get a fresh id.
func (m *Middlewares) ClientIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := strings.TrimSpace(r.Header.Get(constvars.HeaderXClientID))
		if clientID == "" {
			if cookie, err := r.Cookie(constvars.ClientIDCookieName); err == nil {
				clientID = cookie.Value
			}
		}
		if _, err := uuid.Parse(clientID); err != nil {
			clientID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     constvars.ClientIDCookieName,
				Value:    clientID,
				Path:     "/",
				MaxAge:   int(clientCookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   m.InternalConfig.App.Env == constvars.AppEnvProduction,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(constvars.HeaderXClientID, clientID)

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_CLIENT_ID_KEY, clientID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

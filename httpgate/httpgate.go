package httpgate

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"github.com/devmarvs/pagegate"
	"github.com/devmarvs/pagegate/apperr"
)

// DefaultCookieName names the session-id cookie.
const DefaultCookieName = "pagegate_sid"

type contextKey struct{}

// Options configures the middleware.
type Options struct {
	// CookieName overrides DefaultCookieName.
	CookieName string
	// Route identifies the serving endpoint in fingerprints; it must be
	// stable across the requests of one logical session. Defaults to "/".
	Route string
	// Secure marks the session-id cookie Secure.
	Secure bool
	// Forbidden handles denied requests. Defaults to a plain 403.
	Forbidden http.Handler
}

// Middleware resolves the request identity before the wrapped handler
// runs and rejects unauthorized URLs with 403 Forbidden. The resolved
// identity is available through IdentityFromRequest. The session-id
// cookie carries no identity or secret; it only partitions the
// server-side session store.
func Middleware(guard *pagegate.Guard, options Options) func(http.Handler) http.Handler {
	cookieName := options.CookieName
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	route := options.Route
	if route == "" {
		route = "/"
	}
	forbidden := options.Forbidden
	if forbidden == nil {
		forbidden = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			appErr := apperr.Forbidden("access denied", nil)
			http.Error(w, appErr.Message, appErr.Status)
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sid, issued, err := sessionID(r, cookieName)
			if err != nil {
				http.Error(w, "session id unavailable", http.StatusInternalServerError)
				return
			}
			if issued {
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					Secure:   options.Secure,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			identity, err := guard.Authenticate(r.Context(), pagegate.FromHTTP(r, route, sid))
			if err != nil {
				status := http.StatusInternalServerError
				if appErr := apperr.As(err); appErr != nil && appErr.Status != 0 {
					status = appErr.Status
				}
				http.Error(w, "authentication unavailable", status)
				return
			}

			if !guard.Authorize(identity, r.URL.Path) {
				forbidden.ServeHTTP(w, WithIdentity(r, identity))
				return
			}

			next.ServeHTTP(w, WithIdentity(r, identity))
		})
	}
}

// WithIdentity stores the resolved identity on the request context.
func WithIdentity(r *http.Request, identity pagegate.Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, identity))
}

// IdentityFromRequest returns the identity the middleware resolved, or
// Anonymous when none was stored.
func IdentityFromRequest(r *http.Request) pagegate.Identity {
	if identity, ok := r.Context().Value(contextKey{}).(pagegate.Identity); ok {
		return identity
	}
	return pagegate.Anonymous
}

func sessionID(r *http.Request, cookieName string) (string, bool, error) {
	cookie, err := r.Cookie(cookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, false, nil
	}
	id, err := newSessionID()
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

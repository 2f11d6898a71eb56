package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rupaladventures/basecamp/internal/auth"
	"github.com/rupaladventures/basecamp/internal/domain"
)

const bearerPrefix = "Bearer "

// TokenVerifier turns a bearer token into a user.
type TokenVerifier interface {
	Verify(token string, now time.Time) (domain.User, error)
}

var errNoToken = errors.New("missing bearer token")

func userFromRequest(v TokenVerifier, r *http.Request) (domain.User, error) {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(raw, bearerPrefix) {
		return domain.User{}, errNoToken
	}
	return v.Verify(strings.TrimSpace(strings.TrimPrefix(raw, bearerPrefix)), time.Now())
}

// OptionalUser attaches the signed-in user to the request context when a
// valid bearer token is present. Requests without one, or with an invalid
// one, continue anonymously.
func OptionalUser(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, err := userFromRequest(v, r); err == nil {
				r = r.WithContext(auth.WithUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireUser rejects requests without a valid bearer token with 401.
func RequireUser(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := userFromRequest(v, r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

// RequireAdmin rejects non-admin users with 403. Wire it after RequireUser.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.UserFrom(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required")
			return
		}
		if !u.IsAdmin {
			writeError(w, http.StatusForbidden, "forbidden", "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError renders the API's JSON error envelope for responses produced
// before a handler runs.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

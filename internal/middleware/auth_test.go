package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rupaladventures/basecamp/internal/auth"
	"github.com/rupaladventures/basecamp/internal/domain"
	"github.com/rupaladventures/basecamp/internal/middleware"
)

// stubVerifier accepts exactly one token per user.
type stubVerifier map[string]domain.User

func (s stubVerifier) Verify(token string, _ time.Time) (domain.User, error) {
	u, ok := s[token]
	if !ok {
		return domain.User{}, errors.New("bad token")
	}
	return u, nil
}

var _ middleware.TokenVerifier = stubVerifier{}

var (
	member = domain.User{ID: uuid.New(), Email: "member@example.com", Name: "member"}
	admin  = domain.User{ID: uuid.New(), Email: "admin@example.com", Name: "admin", IsAdmin: true}
	tokens = stubVerifier{"member-token": member, "admin-token": admin}
)

// whoami echoes the signed-in user's email, or "anonymous".
var whoami = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.UserFrom(r.Context()); ok {
		_, _ = w.Write([]byte(u.Email))
		return
	}
	_, _ = w.Write([]byte("anonymous"))
})

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestOptionalUser(t *testing.T) {
	h := middleware.OptionalUser(tokens)(whoami)

	assert.Equal(t, "anonymous", serve(h, "").Body.String())
	assert.Equal(t, "anonymous", serve(h, "forged").Body.String())
	assert.Equal(t, member.Email, serve(h, "member-token").Body.String())
}

func TestRequireUser(t *testing.T) {
	h := middleware.RequireUser(tokens)(whoami)

	rec := serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))

	assert.Equal(t, http.StatusUnauthorized, serve(h, "forged").Code)

	rec = serve(h, "member-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, member.Email, rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	h := middleware.RequireUser(tokens)(middleware.RequireAdmin(whoami))

	rec := serve(h, "member-token")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", errorCode(t, rec))

	rec = serve(h, "admin-token")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, admin.Email, rec.Body.String())
}

func TestRequireAdmin_WithoutUser(t *testing.T) {
	rec := serve(middleware.RequireAdmin(whoami), "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

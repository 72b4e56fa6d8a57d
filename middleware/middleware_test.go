package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"encore/globals"
	"encore/rbac"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(globals.JwtSecret)
	require.NoError(t, err)
	return signed
}

func TestValidateJWT(t *testing.T) {
	signed := signToken(t, &Claims{
		Username: "sam",
		UserID:   "u1",
		Role:     []string{"fan"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := ValidateJWT(signed)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, []string{"fan"}, claims.Role)

	_, err = ValidateJWT("")
	assert.Error(t, err)

	_, err = ValidateJWT(signed + "x")
	assert.Error(t, err)
}

func TestOptionalAuth(t *testing.T) {
	var gotUserID string
	var gotPerms rbac.PermissionSet
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotPerms = PermsFromRequest(r)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("no token passes through anonymously", func(t *testing.T) {
		gotUserID = ""
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/api/ticket/gig/g1", nil), nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, gotUserID)
	})

	t.Run("valid token lands identity and permissions in the context", func(t *testing.T) {
		signed := signToken(t, &Claims{
			UserID: "u1",
			Role:   []string{"admin"},
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		r := httptest.NewRequest("GET", "/api/ticket/gig/g1", nil)
		r.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u1", gotUserID)
		assert.True(t, gotPerms.Has(rbac.PermModerate))
	})

	t.Run("garbage token is served anonymously, not rejected", func(t *testing.T) {
		gotUserID = ""
		r := httptest.NewRequest("GET", "/api/ticket/gig/g1", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		handler(w, r, nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, gotUserID)
	})
}

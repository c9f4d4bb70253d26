package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAccessToken(t *testing.T) {
	t.Run("Header Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		req.Header.Set("Authorization", "Bearer header_token")

		assert.Equal(t, "header_token", ExtractAccessToken(req))
	})

	t.Run("Cookie Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})

		assert.Equal(t, "cookie_token", ExtractAccessToken(req))
	})

	t.Run("Query Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ws?token=query_token", nil)

		assert.Equal(t, "query_token", ExtractAccessToken(req))
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractAccessToken(req))
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")
		assert.Empty(t, ExtractAccessToken(req))
	})
}

func TestManager(t *testing.T) {
	m := NewManager("secret", time.Hour)

	t.Run("Round trip", func(t *testing.T) {
		tok, err := m.Generate(7, "a@b.test", "admin")
		require.NoError(t, err)

		claims, err := m.Parse(tok)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		assert.Equal(t, "a@b.test", claims.Email)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		tok, err := NewManager("other", time.Hour).Generate(7, "a@b.test", "user")
		require.NoError(t, err)

		_, err = m.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := NewManager("secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		tok, err := expired.Generate(7, "a@b.test", "user")
		require.NoError(t, err)

		_, err = m.Parse(tok)
		assert.Error(t, err)
	})

	t.Run("Missing secret", func(t *testing.T) {
		_, err := NewManager("", time.Hour).Generate(1, "", "user")
		assert.ErrorIs(t, err, ErrMissingSecret)
	})
}

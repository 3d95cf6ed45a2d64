package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, secret string) *Manager {
	t.Helper()
	m, err := NewManager(Options{Secret: secret, CookieName: "sid", TTL: time.Hour}, nil)
	require.NoError(t, err)
	return m
}

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager(Options{CookieName: "sid"}, nil)
	assert.Error(t, err)
}

func TestSignParse_RoundTrip(t *testing.T) {
	m := newTestManager(t, "secret")
	want := Identity{UserID: 42, Username: "alice"}

	raw, err := m.Sign(want)
	require.NoError(t, err)

	got, err := m.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParse_Rejects(t *testing.T) {
	m := newTestManager(t, "secret")
	raw, err := m.Sign(Identity{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = newTestManager(t, "other-secret").Parse(raw)
	assert.True(t, errors.Is(err, ErrInvalidSession), "foreign signature")

	_, err = m.Parse(raw + "x")
	assert.True(t, errors.Is(err, ErrInvalidSession), "tampered")

	expired := newTestManager(t, "secret")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Sign(Identity{UserID: 1, Username: "alice"})
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.True(t, errors.Is(err, ErrInvalidSession), "expired")
}

func TestMiddleware_BindsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager(t, "secret")
	raw, err := m.Sign(Identity{UserID: 7, Username: "bob"})
	require.NoError(t, err)

	var seen Identity
	var bound bool
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/", func(c *gin.Context) {
		seen, bound = FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: raw})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.True(t, bound)
	assert.Equal(t, Identity{UserID: 7, Username: "bob"}, seen)
}

func TestMiddleware_ClearsBadCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager(t, "secret")

	var bound bool
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/", func(c *gin.Context) {
		_, bound = FromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "garbage"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.False(t, bound)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
}

func TestEstablishAndClear(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newTestManager(t, "secret")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/authenticate", nil)

	require.NoError(t, m.Establish(c, Identity{UserID: 3, Username: "carol"}))
	id, ok := FromContext(c.Request.Context())
	assert.True(t, ok)
	assert.Equal(t, uint(3), id.UserID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	parsed, err := m.Parse(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "carol", parsed.Username)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodDelete, "/logout", nil)
	m.Clear(c2)
	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
}

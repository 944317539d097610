package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dom "Lucky/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, *Store) {
	t.Helper()
	store, _ := newTestStore(t, time.Hour)
	m := NewManager(store, NewSigner("devsecret", time.Hour), false)

	r := gin.New()
	r.Use(m.Sessions())
	r.POST("/login", func(c *gin.Context) {
		_ = m.Renew(c, func(s *dom.Session) { s.AccountID = 7 })
		c.Status(http.StatusOK)
	})
	r.POST("/admin/login", func(c *gin.Context) {
		_ = m.Renew(c, func(s *dom.Session) { s.Admin = true })
		c.Status(http.StatusOK)
	})
	r.GET("/admin/logout", func(c *gin.Context) {
		_ = m.Update(c, func(s *dom.Session) { s.Admin = false })
		c.Status(http.StatusOK)
	})
	r.GET("/logout", func(c *gin.Context) {
		_ = m.Clear(c)
		c.Status(http.StatusOK)
	})
	r.GET("/play", RequireAccount(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": AccountIDFromContext(c)})
	})
	r.GET("/admin/dashboard", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, store
}

func do(r http.Handler, method, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", CookieName)
	return nil
}

func TestRequireAccount_Anonymous(t *testing.T) {
	r, _ := newTestRouter(t)
	w := do(r, http.MethodGet, "/play", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestLoginThenPlay(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	assert.True(t, cookie.HttpOnly)

	w := do(r, http.MethodGet, "/play", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestAccountSessionIsNotAdmin(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))

	w := do(r, http.MethodGet, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, AdminLoginPath, w.Header().Get("Location"))
}

func TestAdminSessionIsNotAccount(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := sessionCookie(t, do(r, http.MethodPost, "/admin/login", nil))

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin/dashboard", cookie).Code)
	assert.Equal(t, http.StatusSeeOther, do(r, http.MethodGet, "/play", cookie).Code)
}

func TestAdminLogoutKeepsAccount(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	cookie = sessionCookie(t, do(r, http.MethodPost, "/admin/login", cookie))
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin/dashboard", cookie).Code)

	do(r, http.MethodGet, "/admin/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, do(r, http.MethodGet, "/admin/dashboard", cookie).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/play", cookie).Code)
}

func TestLoginIssuesFreshSession(t *testing.T) {
	r, store := newTestRouter(t)
	before := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	after := sessionCookie(t, do(r, http.MethodPost, "/admin/login", before))
	assert.NotEqual(t, before.Value, after.Value)

	// The new session keeps the account slot.
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/play", after).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin/dashboard", after).Code)

	// The cookie from before the admin login is dead.
	assert.Equal(t, http.StatusSeeOther, do(r, http.MethodGet, "/admin/dashboard", before).Code)
	assert.Equal(t, http.StatusSeeOther, do(r, http.MethodGet, "/play", before).Code)
	id, err := NewSigner("devsecret", time.Hour).Parse(before.Value)
	require.NoError(t, err)
	_, ok, err := store.Get(t.Context(), id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLogoutClearsEverything(t *testing.T) {
	r, _ := newTestRouter(t)
	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))
	cookie = sessionCookie(t, do(r, http.MethodPost, "/admin/login", cookie))

	w := do(r, http.MethodGet, "/logout", cookie)
	assert.Equal(t, -1, sessionCookie(t, w).MaxAge)

	// The old cookie no longer resolves to a stored session.
	assert.Equal(t, http.StatusSeeOther, do(r, http.MethodGet, "/play", cookie).Code)
	assert.Equal(t, http.StatusSeeOther, do(r, http.MethodGet, "/admin/dashboard", cookie).Code)
}

func TestForgedCookieIsAnonymous(t *testing.T) {
	r, store := newTestRouter(t)
	cookie := sessionCookie(t, do(r, http.MethodPost, "/login", nil))

	forged, err := NewSigner("guess", time.Hour).Sign("whatever")
	require.NoError(t, err)
	w := do(r, http.MethodGet, "/play", &http.Cookie{Name: CookieName, Value: forged})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	// A raw session id without a signature is rejected as well.
	id, err := NewSigner("devsecret", time.Hour).Parse(cookie.Value)
	require.NoError(t, err)
	_, ok, err := store.Get(t.Context(), id)
	require.NoError(t, err)
	require.True(t, ok)
	w = do(r, http.MethodGet, "/play", &http.Cookie{Name: CookieName, Value: id})
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

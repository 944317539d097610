package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"Lucky/internal/auth"
	"Lucky/internal/cache"
	dom "Lucky/internal/domain"
	"Lucky/internal/logging"
	"Lucky/internal/repo"
	"Lucky/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fixedEngine struct {
	out dom.Outcome
}

func (e *fixedEngine) Play(float64) dom.Outcome { return e.out }

type harness struct {
	router   *gin.Engine
	accounts *repo.MemoryAccountRepo
	settings *service.SettingsService
	engine   *fixedEngine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	h := &harness{
		accounts: repo.NewMemoryAccountRepo(),
		settings: service.NewSettingsService(repo.NewMemorySettingsRepo(), cache.NewSettingsCache(rdb, time.Minute)),
		engine:   &fixedEngine{},
	}
	require.NoError(t, h.settings.EnsureDefaults(context.Background()))

	sessions := auth.NewManager(auth.NewStore(rdb, time.Hour), auth.NewSigner("test-secret", time.Hour), false)
	accountSvc := service.NewAccountService(h.accounts)
	log := logging.Nop()

	authH := NewAuthHandler(sessions, accountSvc, log)
	playH := NewPlayHandler(accountSvc, service.NewPlayService(h.accounts, h.settings, h.engine), log)
	adminH := NewAdminHandler(sessions, service.NewAdminService("admin@example.com", "senha123", h.accounts, h.settings), log)

	r := gin.New()
	r.Use(sessions.Sessions())
	r.POST("/register", authH.Register)
	r.POST("/login", authH.Login)
	r.GET("/logout", authH.Logout)
	r.GET("/play", auth.RequireAccount(), playH.Status)
	r.POST("/play", auth.RequireAccount(), playH.Play)
	r.POST("/admin/login", adminH.Login)
	r.GET("/admin/logout", adminH.Logout)
	admin := r.Group("/admin", auth.RequireAdmin())
	admin.GET("/dashboard", adminH.Dashboard)
	admin.POST("/dashboard", adminH.UpdateLossProb)
	admin.GET("/create_demo/:user_id", adminH.CreateDemo)
	h.router = r
	return h
}

// client is a one-cookie browser.
type client struct {
	r      http.Handler
	cookie *http.Cookie
}

func (h *harness) client() *client {
	return &client{r: h.router}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name != auth.CookieName {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return w
}

func credentials(email, password string) url.Values {
	return url.Values{"email": {email}, "password": {password}}
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

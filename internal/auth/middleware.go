package auth

import (
	"net/http"

	dom "Lucky/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the session cookie.
	CookieName = "session"

	LoginPath      = "/login"
	AdminLoginPath = "/admin/login"
)

const (
	contextKeySession   = "session"
	contextKeySessionID = "session_id"
)

// Manager loads and persists the session behind the signed cookie.
type Manager struct {
	store  *Store
	signer *Signer
	secure bool
}

func NewManager(store *Store, signer *Signer, secure bool) *Manager {
	return &Manager{store: store, signer: signer, secure: secure}
}

// Sessions returns a middleware that resolves the cookie into a session and puts it
// in context. A missing, tampered or expired cookie yields an anonymous session.
func (m *Manager) Sessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}
		id, err := m.signer.Parse(raw)
		if err != nil {
			c.Next()
			return
		}
		sess, ok, err := m.store.Get(c.Request.Context(), id)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		if ok {
			c.Set(contextKeySession, sess)
			c.Set(contextKeySessionID, id)
		}
		c.Next()
	}
}

// Update applies fn to the current session and persists it under the same id, issuing
// a cookie for a new session. A session left with no identity is deleted.
func (m *Manager) Update(c *gin.Context, fn func(*dom.Session)) error {
	sess := SessionFromContext(c)
	fn(&sess)
	if sess.Empty() {
		return m.Clear(c)
	}

	id := c.GetString(contextKeySessionID)
	if id == "" {
		return m.issue(c, sess)
	}
	if err := m.store.Save(c.Request.Context(), id, sess); err != nil {
		return err
	}
	return m.setCookie(c, id, sess)
}

// Renew applies fn like Update but always moves the session to a fresh id and deletes
// the old one. Use it whenever an identity is granted, so a cookie obtained before
// login never carries the identity gained by it.
func (m *Manager) Renew(c *gin.Context, fn func(*dom.Session)) error {
	sess := SessionFromContext(c)
	fn(&sess)
	if old := c.GetString(contextKeySessionID); old != "" {
		if err := m.store.Delete(c.Request.Context(), old); err != nil {
			return err
		}
		c.Set(contextKeySessionID, "")
	}
	if sess.Empty() {
		return m.Clear(c)
	}
	return m.issue(c, sess)
}

func (m *Manager) issue(c *gin.Context, sess dom.Session) error {
	id, err := m.store.Create(c.Request.Context(), sess)
	if err != nil {
		return err
	}
	return m.setCookie(c, id, sess)
}

func (m *Manager) setCookie(c *gin.Context, id string, sess dom.Session) error {
	token, err := m.signer.Sign(id)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.store.TTL().Seconds()), "/", "", m.secure, true)
	c.Set(contextKeySession, sess)
	c.Set(contextKeySessionID, id)
	return nil
}

// Clear drops the whole session, both the account and the admin identity.
func (m *Manager) Clear(c *gin.Context) error {
	if id := c.GetString(contextKeySessionID); id != "" {
		if err := m.store.Delete(c.Request.Context(), id); err != nil {
			return err
		}
	}
	c.SetCookie(CookieName, "", -1, "/", "", m.secure, true)
	c.Set(contextKeySession, dom.Session{})
	c.Set(contextKeySessionID, "")
	return nil
}

// SessionFromContext returns the session loaded by Sessions. Zero value if anonymous.
func SessionFromContext(c *gin.Context) dom.Session {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return dom.Session{}
	}
	sess, _ := v.(dom.Session)
	return sess
}

// AccountIDFromContext returns the signed-in account ID. 0 if not set.
func AccountIDFromContext(c *gin.Context) int64 {
	id, _ := SessionFromContext(c).Account()
	return id
}

// RequireAccount redirects to the login page unless a player is signed in.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFromContext(c).Account(); !ok {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin redirects to the admin login page unless the admin flag is set.
// A signed-in player without the flag is redirected too.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SessionFromContext(c).Admin {
			c.Redirect(http.StatusSeeOther, AdminLoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

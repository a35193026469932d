package session

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CookieName = "tastycorner_session"

	dataKey    = "session.data"
	managerKey = "session.manager"
	tokenKey   = "session.token"
)

// Manager loads the session before each request and writes it back on Save.
type Manager struct {
	store  Store
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewManager(store Store, ttl time.Duration, secure bool) *Manager {
	return &Manager{store: store, ttl: ttl, secure: secure, now: time.Now}
}

// Now is the clock grants are checked against.
func (m *Manager) Now() time.Time {
	return m.now()
}

func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(CookieName)
		data, err := m.store.Load(token)
		if err != nil {
			if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrInvalid) {
				log.Printf("Failed to load session: %v", err)
			}
			data = &Data{}
			token = ""
		}
		data.PruneExpired(m.now())

		c.Set(managerKey, m)
		c.Set(tokenKey, token)
		c.Set(dataKey, data)
		c.Next()
	}
}

// Get returns the request's session; it is never nil.
func Get(c *gin.Context) *Data {
	if v, ok := c.Get(dataKey); ok {
		if data, ok := v.(*Data); ok {
			return data
		}
	}
	data := &Data{}
	c.Set(dataKey, data)
	return data
}

// Save persists the session and sets the cookie. It must run before the
// response body is written.
func Save(c *gin.Context) error {
	v, ok := c.Get(managerKey)
	if !ok {
		return errors.New("session middleware not installed")
	}
	m := v.(*Manager)
	data := Get(c)
	previous := c.GetString(tokenKey)

	if data.renewed {
		data.ID = ""
		data.renewed = false
		if previous != "" {
			if err := m.store.Destroy(previous); err != nil {
				log.Printf("Failed to destroy old session: %v", err)
			}
		}
	}

	token, err := m.store.Save(data)
	if err != nil {
		return err
	}
	c.Set(tokenKey, token)
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// Now returns the clock of the installed manager.
func Now(c *gin.Context) time.Time {
	if v, ok := c.Get(managerKey); ok {
		return v.(*Manager).Now()
	}
	return time.Now()
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	Get(c).AddFlash(category, message)
}

// Current returns the live grant for role on this request.
func Current(c *gin.Context, role Role) (Grant, bool) {
	return Get(c).Grant(role, Now(c))
}

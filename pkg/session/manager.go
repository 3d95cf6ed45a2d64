// Package session keeps the authenticated identity in an HS256-signed cookie
// and exposes it to handlers through the request context.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidSession = errors.New("session: invalid or expired cookie")

type Options struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type claims struct {
	Username string `json:"usr"`
	jwt.StandardClaims
}

type Manager struct {
	secret []byte
	opts   Options
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewManager(opts Options, log logrus.FieldLogger) (*Manager, error) {
	if opts.Secret == "" {
		return nil, fmt.Errorf("session secret cannot be empty")
	}
	if opts.CookieName == "" {
		return nil, fmt.Errorf("session cookie name cannot be empty")
	}
	if opts.TTL <= 0 {
		opts.TTL = 14 * 24 * time.Hour
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Manager{secret: []byte(opts.Secret), opts: opts, log: log, now: time.Now}, nil
}

// Sign encodes id into a signed session value.
func (m *Manager) Sign(id Identity) (string, error) {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: id.Username,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(id.UserID), 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.opts.TTL).Unix(),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a session value and returns the identity it carries.
func (m *Manager) Parse(raw string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	userID, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || userID == 0 {
		return Identity{}, fmt.Errorf("%w: bad subject %q", ErrInvalidSession, c.Subject)
	}
	return Identity{UserID: uint(userID), Username: c.Username}, nil
}

// Establish binds id to the client's session cookie.
func (m *Manager) Establish(c *gin.Context, id Identity) error {
	value, err := m.Sign(id)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, value, int(m.opts.TTL.Seconds()), "/", "", m.opts.Secure, true)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
	return nil
}

// Clear drops the session cookie. It succeeds whether or not one was set.
func (m *Manager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.opts.CookieName, "", -1, "/", "", m.opts.Secure, true)
}

// Middleware resolves the session cookie, if any, into the request context.
// Invalid cookies are cleared and the request continues anonymously.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(m.opts.CookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		id, err := m.Parse(raw)
		if err != nil {
			m.log.WithError(err).Debug("Session middleware: discarding cookie")
			m.Clear(c)
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

package admin

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/neuroeducatimo/landing/pkg/common"
	"github.com/neuroeducatimo/landing/pkg/config"
)

const (
	sessionUserKey    = "admin_user"
	sessionLoginAtKey = "admin_login_at"

	contextUserKey = "admin_user"
)

// NewSessionStore creates the signed cookie store for admin sessions
func NewSessionStore(cfg config.SessionConfig) sessions.Store {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// Sessions returns the middleware that loads the session for each request
func Sessions(cfg config.SessionConfig, store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(cfg.Name, store)
}

// CurrentUser returns the logged-in admin, if any
func CurrentUser(c *gin.Context) (string, bool) {
	user, ok := sessions.Default(c).Get(sessionUserKey).(string)
	return user, ok && user != ""
}

// RequireAdmin aborts requests without an admin session. API calls get a
// 401 JSON error, pages are redirected to /login.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				common.ErrorResponse(c, http.StatusUnauthorized, "authentication required")
			} else {
				c.Redirect(http.StatusFound, "/login")
			}
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

func startSession(c *gin.Context, user string, now time.Time) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(sessionUserKey, user)
	s.Set(sessionLoginAtKey, now.UTC().Unix())
	return s.Save()
}

func endSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return s.Save()
}

func loginTime(c *gin.Context) time.Time {
	if ts, ok := sessions.Default(c).Get(sessionLoginAtKey).(int64); ok {
		return time.Unix(ts, 0).UTC()
	}
	return time.Time{}
}

package middleware

import (
	"net/http"
	"time"

	"lawease/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const sessionTokenKey = "token"

// NewSessionStore returns the cookie store browser clients use to carry their
// access token instead of an Authorization header.
func NewSessionStore(secret string, secure bool, maxAge time.Duration) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// SaveSessionToken stores token in the session cookie.
func SaveSessionToken(c *gin.Context, store sessions.Store, token string) error {
	session, err := store.Get(c.Request, utils.SessionName)
	if err != nil && session == nil {
		return err
	}
	session.Values[sessionTokenKey] = token
	return session.Save(c.Request, c.Writer)
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context, store sessions.Store) error {
	session, err := store.Get(c.Request, utils.SessionName)
	if err != nil && session == nil {
		return err
	}
	delete(session.Values, sessionTokenKey)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

func sessionToken(c *gin.Context, store sessions.Store) string {
	if store == nil {
		return ""
	}
	session, err := store.Get(c.Request, utils.SessionName)
	if err != nil || session == nil {
		return ""
	}
	token, _ := session.Values[sessionTokenKey].(string)
	return token
}

package api

import (
	"net/http"

	"github.com/Domenick1991/flightservice/internal/service/accounts"
	"github.com/Domenick1991/flightservice/internal/service/search"
	"github.com/Domenick1991/flightservice/internal/service/trips"
	"github.com/Domenick1991/flightservice/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionHeader carries the session token issued by POST /sessions. Every
// operation except user creation executes against a session.
const SessionHeader = "X-Session-Token"

const sessionKey = "session"

// NewRouter assembles the HTTP surface. Operation responses are plain text:
// the message strings are a compatibility surface shared with the legacy
// service.
func NewRouter(
	registry *session.Registry,
	accountSvc accounts.AccountUseCase,
	searchSvc search.SearchUseCase,
	tripSvc trips.TripUseCase,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(resolveSession(registry))

	router.POST("/sessions", func(c *gin.Context) {
		sess := registry.Create()
		c.JSON(http.StatusCreated, gin.H{"token": sess.Token()})
	})

	NewAccountHandler(accountSvc).Register(router)
	NewSearchHandler(searchSvc).Register(router)
	NewTripHandler(tripSvc).Register(router)

	return router
}

// resolveSession attaches the caller's session to the request context when
// the token is known. Handlers decide what a missing session means for their
// operation (usually the not-logged-in message).
func resolveSession(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := c.GetHeader(SessionHeader); token != "" {
			if sess, ok := registry.Get(token); ok {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) (*session.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

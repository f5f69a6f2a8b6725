package middleware

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/lawdesk/config"
	"github.com/lshigami/lawdesk/internal/apperror"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/controller"
	"github.com/rs/zerolog/log"
)

const SessionName = "lawdesk_session"

const sessionMaxAge = 86400 * 7

func Sessions(cfg *config.Config) gin.HandlerFunc {
	store := cookie.NewStore([]byte(cfg.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Server.SessionSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   sessionMaxAge,
	})
	return sessions.Sessions(SessionName, store)
}

// PrincipalSource resolves a session's user id into a principal.
type PrincipalSource interface {
	LoadPrincipal(ctx context.Context, userID uint) (*auth.Principal, error)
}

// PrincipalLoader loads the caller from the session into the gin context. A
// session pointing at a user that no longer exists is cleared and the request
// continues anonymously.
func PrincipalLoader(source PrincipalSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(auth.SessionUserKey).(uint)
		if !ok {
			c.Next()
			return
		}

		p, err := source.LoadPrincipal(c.Request.Context(), userID)
		if err != nil {
			if apperror.As(err).Kind != apperror.KindNotFound {
				log.Error().Err(err).Uint("userID", userID).Msg("Failed to load session user")
			}
			ClearSession(c)
			c.Next()
			return
		}
		auth.SetPrincipal(c, p)
		c.Next()
	}
}

// StartSession stores userID in a fresh session.
func StartSession(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(auth.SessionUserKey, userID)
	return session.Save()
}

func ClearSession(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear session")
	}
}

// AuthRequired rejects anonymous requests with AUTH_REQUIRED.
func AuthRequired() gin.HandlerFunc {
	return RequireRole(auth.AnyUser)
}

// RequireRole admits only principals whose role is in allowed.
func RequireRole(allowed auth.RoleSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RequireRole(auth.FromContext(c), allowed); err != nil {
			controller.Fail(c, err)
			return
		}
		c.Next()
	}
}

package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hangar/internal/config"
	"hangar/internal/flash"
	redisdb "hangar/internal/redis"
	"hangar/internal/user"
)

// Session is the authenticated identity attached to a request.
type Session struct {
	UserID   uint
	Username string
	Role     user.Role
}

// Decision is the access guard's verdict for one request.
type Decision int

const (
	Allow Decision = iota
	DenyUnauthenticated
	DenyForbidden
)

// Decide is the guard's decision core: given the role a route requires and
// the current session (nil when unauthenticated), pick the verdict. An
// empty required role admits any authenticated user. Public routes never
// reach the guard at all; they simply have no guard middleware attached.
func Decide(required user.Role, sess *Session) Decision {
	if sess == nil {
		return DenyUnauthenticated
	}
	if required != "" && sess.Role != required {
		return DenyForbidden
	}
	return Allow
}

// Deps bundles what the guard middleware needs per route.
type Deps struct {
	Cfg   *config.Config
	Redis redisdb.Cmdable
	Flash *flash.Store
}

// SessionFromRequest reconstructs the session from the cookie: the JWT
// must parse against the configured secret AND match the token recorded in
// Redis for that user. Any failure along the way means no session.
func SessionFromRequest(c *gin.Context, deps Deps) *Session {
	tokenStr, err := c.Cookie(CookieName)
	if err != nil || tokenStr == "" {
		return nil
	}
	claims, err := ParseJWT(deps.Cfg.Server.JWTSecret, tokenStr)
	if err != nil {
		return nil
	}
	stored, err := GetSession(c.Request.Context(), deps.Redis, claims.UserID)
	if err != nil || stored != tokenStr {
		return nil
	}
	return &Session{UserID: claims.UserID, Username: claims.Username, Role: user.Role(claims.Role)}
}

// RequireRole guards a route with a declared role requirement. Denials
// queue a flash message and redirect; allowed requests get the identity
// attached to the gin context and their inactivity window refreshed.
func RequireRole(deps Deps, required user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFromRequest(c, deps)
		switch Decide(required, sess) {
		case DenyUnauthenticated:
			deps.Flash.Add(c.Request.Context(), flash.VisitorID(c), flash.LevelDanger,
				"You must log in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		case DenyForbidden:
			deps.Flash.Add(c.Request.Context(), flash.VisitorID(c), flash.LevelDanger,
				"You do not have permission to access this page.")
			c.Redirect(http.StatusFound, sess.Role.HomePath())
			c.Abort()
			return
		}

		// Enforce inactivity timeout (refresh expiry); a failed refresh only
		// means the session expires on its original schedule.
		_ = RefreshSession(c.Request.Context(), deps.Redis, sess.UserID, deps.Cfg.SessionTTL())
		c.Set("userId", sess.UserID)
		c.Set("username", sess.Username)
		c.Set("role", string(sess.Role))
		c.Next()
	}
}

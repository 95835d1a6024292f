package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"hangar/internal/apperr"
	"hangar/internal/auth"
	"hangar/internal/flash"
	"hangar/internal/user"
)

// GET /
func RootHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := auth.SessionFromRequest(c, deps.guard())
		if sess == nil {
			c.Redirect(http.StatusFound, "/login")
			return
		}
		c.Redirect(http.StatusFound, sess.Role.HomePath())
	}
}

// GET /login
func LoginFormHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, deps, http.StatusOK, "login.html", nil)
	}
}

// POST /login
func LoginHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		u, err := deps.Users.Authenticate(c.Request.Context(), username, password)
		if errors.Is(err, apperr.ErrBadCredentials) {
			queueFlash(c, deps, flash.LevelDanger, "Incorrect username or password.")
			renderPage(c, deps, http.StatusUnauthorized, "login.html", nil)
			return
		}
		if err != nil {
			log.Printf("[Auth] Login lookup failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Something went wrong. Please try again.")
			renderPage(c, deps, http.StatusInternalServerError, "login.html", nil)
			return
		}

		// A stored role outside the known set gets no session at all.
		if u.Role != user.RoleUser && u.Role != user.RoleAdmin {
			log.Printf("[Auth] User %q has unknown role %q", u.Username, u.Role)
			queueFlash(c, deps, flash.LevelDanger, "Unknown role. Please contact the administrator.")
			renderPage(c, deps, http.StatusForbidden, "login.html", nil)
			return
		}

		ttl := deps.Cfg.SessionTTL()
		token, err := auth.GenerateJWT(deps.Cfg.Server.JWTSecret, u.ID, u.Username, string(u.Role), ttl)
		if err != nil {
			log.Printf("[Auth] Token generation failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Something went wrong. Please try again.")
			renderPage(c, deps, http.StatusInternalServerError, "login.html", nil)
			return
		}
		if err := auth.SetSession(c.Request.Context(), deps.Redis, u.ID, token, ttl); err != nil {
			log.Printf("[Auth] Session store failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Something went wrong. Please try again.")
			renderPage(c, deps, http.StatusInternalServerError, "login.html", nil)
			return
		}

		c.SetCookie(auth.CookieName, token, int(ttl.Seconds()), "/", "", false, true)
		c.Redirect(http.StatusFound, u.Role.HomePath())
	}
}

// GET /register
func RegisterFormHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, deps, http.StatusOK, "register.html", nil)
	}
}

// POST /register
func RegisterHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		role := user.Role(c.PostForm("role"))

		err := deps.Users.Register(c.Request.Context(), username, password, role)
		switch {
		case errors.Is(err, apperr.ErrValidation):
			queueFlash(c, deps, flash.LevelDanger, err.Error())
			renderPage(c, deps, http.StatusBadRequest, "register.html", gin.H{"formUsername": username})
			return
		case errors.Is(err, apperr.ErrDuplicateUsername):
			queueFlash(c, deps, flash.LevelDanger, "The username is already registered.")
			renderPage(c, deps, http.StatusConflict, "register.html", gin.H{"formUsername": username})
			return
		case err != nil:
			log.Printf("[Auth] Registration failed: %v", err)
			queueFlash(c, deps, flash.LevelDanger, "Something went wrong. Please try again.")
			renderPage(c, deps, http.StatusInternalServerError, "register.html", gin.H{"formUsername": username})
			return
		}

		queueFlash(c, deps, flash.LevelSuccess, "User registered successfully.")
		c.Redirect(http.StatusFound, "/login")
	}
}

// GET|POST /logout — idempotent, works with or without a live session.
func LogoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := auth.SessionFromRequest(c, deps.guard()); sess != nil {
			if err := auth.DeleteSession(c.Request.Context(), deps.Redis, sess.UserID); err != nil {
				log.Printf("[Auth] Session delete failed for user %d: %v", sess.UserID, err)
			}
		}
		c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
		queueFlash(c, deps, flash.LevelInfo, "You have been logged out successfully.")
		c.Redirect(http.StatusFound, "/login")
	}
}

// GET /home [role: user]
func HomeHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, deps, http.StatusOK, "home.html", nil)
	}
}

// GET /dashboard [role: admin]
func DashboardHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderPage(c, deps, http.StatusOK, "dashboard.html", nil)
	}
}

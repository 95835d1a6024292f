package api

import (
	"github.com/gin-gonic/gin"

	"hangar/internal/flash"
)

// renderPage renders a template with the queued flash messages drained
// into it and the request identity (when the guard attached one) exposed
// to the template.
func renderPage(c *gin.Context, deps Deps, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = deps.Flash.Drain(c.Request.Context(), flash.VisitorID(c))
	if username, ok := c.Get("username"); ok {
		data["username"] = username
	}
	if role, ok := c.Get("role"); ok {
		data["role"] = role
	}
	c.HTML(status, name, data)
}

// queueFlash shortens the add-a-flash-for-this-visitor dance handlers do
// on every outcome.
func queueFlash(c *gin.Context, deps Deps, level, message string) {
	deps.Flash.Add(c.Request.Context(), flash.VisitorID(c), level, message)
}

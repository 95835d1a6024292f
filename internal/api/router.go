package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hangar/internal/auth"
	"hangar/internal/config"
	"hangar/internal/flash"
	"hangar/internal/fleet"
	"hangar/internal/metrics"
	"hangar/internal/parts"
	redisdb "hangar/internal/redis"
	"hangar/internal/user"
)

// Deps is everything the web layer needs, constructed once in main and
// passed down. No handler touches package-level state.
type Deps struct {
	Cfg     *config.Config
	Redis   redisdb.Cmdable
	Flash   *flash.Store
	Users   *user.Service
	Parts   *parts.Service
	Fleet   *fleet.Service
	Metrics *metrics.Metrics

	// TemplateGlob locates the HTML templates; main uses the default,
	// tests point it at the source tree.
	TemplateGlob string
}

func (d Deps) guard() auth.Deps {
	return auth.Deps{Cfg: d.Cfg, Redis: d.Redis, Flash: d.Flash}
}

// SetupRouter wires every route. Public routes simply carry no guard
// middleware; protected ones declare the role they require.
func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	glob := deps.TemplateGlob
	if glob == "" {
		glob = "./frontend/*.html"
	}
	r.LoadHTMLGlob(glob)

	r.Use(flash.Middleware())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
		r.GET("/metrics", deps.Metrics.Handler())
	}

	// Public area.
	r.GET("/", RootHandler(deps))
	r.GET("/healthz", healthzHandler)
	r.GET("/login", LoginFormHandler(deps))
	r.POST("/login", LoginHandler(deps))
	r.GET("/register", RegisterFormHandler(deps))
	r.POST("/register", RegisterHandler(deps))
	r.GET("/logout", LogoutHandler(deps))
	r.POST("/logout", LogoutHandler(deps))

	// Role-specific home pages.
	r.GET("/home", auth.RequireRole(deps.guard(), user.RoleUser), HomeHandler(deps))
	r.GET("/dashboard", auth.RequireRole(deps.guard(), user.RoleAdmin), DashboardHandler(deps))

	// Catalog search is open to any authenticated role.
	anyRole := auth.RequireRole(deps.guard(), "")
	r.GET("/search", anyRole, SearchFormHandler(deps))
	r.POST("/search", anyRole, SearchHandler(deps))

	// Parts catalog administration.
	admin := auth.RequireRole(deps.guard(), user.RoleAdmin)
	p := r.Group("/parts", admin)
	{
		p.GET("", ListPartsHandler(deps))
		p.GET("/create", CreatePartFormHandler(deps))
		p.POST("/create", CreatePartHandler(deps))
		p.GET("/update/:id", UpdatePartFormHandler(deps))
		p.POST("/update/:id", UpdatePartHandler(deps))
		p.POST("/delete/:id", DeletePartHandler(deps))
	}

	// Fleet registry. Every sub-route keys on the aircraft id first so the
	// route tree stays free of static/param sibling ambiguity.
	f := r.Group("/fleet", admin)
	{
		f.GET("", ListAircraftHandler(deps))
		f.POST("", RegisterAircraftHandler(deps))
		f.GET("/:id/edit", EditAircraftFormHandler(deps))
		f.POST("/:id/edit", EditAircraftHandler(deps))
		f.POST("/:id/delete", DeleteAircraftHandler(deps))
		f.GET("/:id/parts", ListAircraftPartsHandler(deps))
		f.POST("/:id/parts", AddAircraftPartHandler(deps))
		f.POST("/:id/parts/:partId/delete", DeleteAircraftPartHandler(deps))
	}

	return r
}

// GET /healthz
func healthzHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Package router wires every HTTP route and middleware.
package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/hosseinmostafavi2079/roydadpro/internal/auth"
	"github.com/hosseinmostafavi2079/roydadpro/internal/categories"
	"github.com/hosseinmostafavi2079/roydadpro/internal/events"
	"github.com/hosseinmostafavi2079/roydadpro/internal/instructors"
	"github.com/hosseinmostafavi2079/roydadpro/internal/middleware"
	"github.com/hosseinmostafavi2079/roydadpro/internal/organizations"
	"github.com/hosseinmostafavi2079/roydadpro/internal/tickets"
	"github.com/hosseinmostafavi2079/roydadpro/internal/users"
	"github.com/hosseinmostafavi2079/roydadpro/pkg/response"
)

// Handlers groups the resource handlers served by the API.
type Handlers struct {
	Auth          *auth.Handler
	Organizations *organizations.Handler
	Users         *users.Handler
	Instructors   *instructors.Handler
	Categories    *categories.Handler
	Events        *events.Handler
	Tickets       *tickets.Handler
}

// Options holds the router settings taken from config.
type Options struct {
	ServiceName        string
	CORSAllowedOrigins string
	TokenRPM           int
	// MediaURL and MediaRoot serve uploaded files when media is stored locally.
	// Leave MediaRoot empty for the S3 backend.
	MediaURL  string
	MediaRoot string
}

// New builds the gin engine.
func New(h Handlers, jwtService *auth.JWTService, loader middleware.UserLoader, opts Options, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.ServiceName != "" {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(middleware.CORS(opts.CORSAllowedOrigins))
	r.Use(middleware.Logger(logger))

	r.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })
	if opts.MediaRoot != "" && opts.MediaURL != "" {
		r.Static(opts.MediaURL, opts.MediaRoot)
	}

	// Token endpoints (public, throttled)
	tokens := r.Group("/token", middleware.NewRateLimiter(opts.TokenRPM).Handler())
	{
		tokens.POST("/", h.Auth.Obtain)
		tokens.POST("/refresh/", h.Auth.Refresh)
		tokens.POST("/blacklist/", h.Auth.Blacklist)
	}

	// Everything below resolves an optional bearer token.
	api := r.Group("", middleware.Authenticate(jwtService, loader, logger))
	requireAuth := middleware.RequireAuth()
	// Tenant creates only need an organization; an anonymous caller has none.
	tenant := middleware.RequireOrganization()

	// Organizations and users are provisioned by administrators; reads are public.
	orgs := api.Group("/organizations")
	{
		orgs.GET("/", h.Organizations.List)
		orgs.GET("/:id/", h.Organizations.Get)
		orgs.POST("/", requireAuth, h.Organizations.Create)
		orgs.PUT("/:id/", requireAuth, h.Organizations.Update)
		orgs.PATCH("/:id/", requireAuth, h.Organizations.Patch)
		orgs.DELETE("/:id/", requireAuth, h.Organizations.Delete)
	}

	usersGroup := api.Group("/users")
	{
		usersGroup.GET("/", h.Users.List)
		usersGroup.GET("/me/", requireAuth, h.Users.Me)
		usersGroup.GET("/:id/", h.Users.Get)
		usersGroup.POST("/", requireAuth, h.Users.Create)
		usersGroup.PUT("/:id/", requireAuth, h.Users.Update)
		usersGroup.PATCH("/:id/", requireAuth, h.Users.Patch)
		usersGroup.DELETE("/:id/", requireAuth, h.Users.Delete)
	}

	// Tenant-scoped resources: creates are stamped with the caller's organization.
	inst := api.Group("/instructors")
	{
		inst.GET("/", h.Instructors.List)
		inst.GET("/:id/", h.Instructors.Get)
		inst.POST("/", tenant, h.Instructors.Create)
		inst.PUT("/:id/", requireAuth, h.Instructors.Update)
		inst.PATCH("/:id/", requireAuth, h.Instructors.Patch)
		inst.DELETE("/:id/", requireAuth, h.Instructors.Delete)
	}

	cats := api.Group("/categories")
	{
		cats.GET("/", h.Categories.List)
		cats.GET("/:id/", h.Categories.Get)
		cats.POST("/", tenant, h.Categories.Create)
		cats.PUT("/:id/", requireAuth, h.Categories.Update)
		cats.PATCH("/:id/", requireAuth, h.Categories.Update)
		cats.DELETE("/:id/", requireAuth, h.Categories.Delete)
	}

	evs := api.Group("/events")
	{
		evs.GET("/", h.Events.List)
		evs.GET("/:id/", h.Events.Get)
		evs.POST("/", tenant, h.Events.Create)
		evs.PUT("/:id/", requireAuth, h.Events.Update)
		evs.PATCH("/:id/", requireAuth, h.Events.Patch)
		evs.DELETE("/:id/", requireAuth, h.Events.Delete)
	}

	tix := api.Group("/tickets", requireAuth)
	{
		tix.GET("/", h.Tickets.List)
		tix.POST("/", h.Tickets.Create)
		tix.GET("/:id/", h.Tickets.Get)
		tix.PUT("/:id/", h.Tickets.Update)
		tix.PATCH("/:id/", h.Tickets.Patch)
		tix.DELETE("/:id/", h.Tickets.Delete)
	}

	return r
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/seniorlearn/bulletin-api/internal/api/handler"
	"github.com/seniorlearn/bulletin-api/internal/api/middleware"
	"github.com/seniorlearn/bulletin-api/internal/core/domain"
	"github.com/seniorlearn/bulletin-api/internal/core/ports"

	_ "github.com/seniorlearn/bulletin-api/docs"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	Identity  ports.IdentityService
	Bulletins ports.BulletinService
	Health    map[string]handler.Pinger
	Log       zerolog.Logger

	CORSOrigins   []string
	AuthRateLimit float64
	AuthRateBurst int

	// Registry receives the HTTP metrics and backs /metrics. Defaults to the
	// global Prometheus registry, which also holds the metrics package vars.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: deps.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer, gatherer = deps.Registry, deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "bulletins",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
		},
	}))

	// --- Dependencies ---
	identityHandler := handler.NewIdentityHandler(deps.Identity)
	bulletinHandler := handler.NewBulletinHandler(deps.Bulletins)
	healthHandler := handler.NewHealthHandler(deps.Health)

	requireAuth := middleware.RequireAuth(deps.Identity)
	optionalAuth := middleware.OptionalAuth(deps.Identity)
	authLimit := middleware.RateLimit(deps.AuthRateLimit, deps.AuthRateBurst)

	// --- Identity routes ---
	e.POST("/createuser", identityHandler.Register, authLimit)
	e.POST("/login", identityHandler.Login, authLimit)
	e.POST("/logout", identityHandler.Logout, requireAuth)
	e.GET("/user/profile", identityHandler.Profile, middleware.RequireAuthWith(deps.Identity, domain.ErrUnauthorized))

	// --- Bulletin routes ---
	e.GET("/posts", bulletinHandler.List, optionalAuth)
	e.GET("/posts/:id", bulletinHandler.Get, optionalAuth)
	e.POST("/createpost", bulletinHandler.Create, requireAuth)
	e.POST("/editpost", bulletinHandler.Edit, requireAuth)
	e.DELETE("/deletepost", bulletinHandler.Delete, requireAuth)

	admin := e.Group("/admin", requireAuth, middleware.RBAC(deps.Identity, domain.RoleAdmin))
	admin.GET("/activity", bulletinHandler.Activity)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

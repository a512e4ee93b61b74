package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/invento/backend/internal/infrastructure/logger"
	"github.com/invento/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on a router group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Config holds router configuration
type Config struct {
	Environment string
	CORS        middleware.CORSConfig
	JWT         middleware.JWTMiddlewareConfig
	Logger      *zap.Logger
}

// Router assembles the gin engine with middleware and registered handlers.
// Handlers register in one of three tiers: public (no auth), authenticated
// (JWT only), or protected (JWT plus role enforcement, where writes require
// the admin role).
type Router struct {
	cfg           Config
	public        []RouteRegistrar
	authenticated []RouteRegistrar
	protected     []RouteRegistrar
}

// New creates a router
func New(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// RegisterPublic adds handlers whose routes bypass authentication
func (r *Router) RegisterPublic(registrars ...RouteRegistrar) {
	r.public = append(r.public, registrars...)
}

// Register adds handlers whose routes require a valid access token
func (r *Router) Register(registrars ...RouteRegistrar) {
	r.authenticated = append(r.authenticated, registrars...)
}

// RegisterProtected adds handlers whose routes additionally enforce
// role-based access
func (r *Router) RegisterProtected(registrars ...RouteRegistrar) {
	r.protected = append(r.protected, registrars...)
}

// Setup builds the gin engine. All application routes live under /api/v1.
func (r *Router) Setup() *gin.Engine {
	if r.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(r.cfg.Logger))
	engine.Use(logger.Recovery(r.cfg.Logger))
	engine.Use(middleware.CORS(r.cfg.CORS))

	public := engine.Group("/api/v1")
	for _, registrar := range r.public {
		registrar.RegisterRoutes(public)
	}

	authenticated := engine.Group("/api/v1")
	authenticated.Use(middleware.JWTAuth(r.cfg.JWT))
	for _, registrar := range r.authenticated {
		registrar.RegisterRoutes(authenticated)
	}

	protected := engine.Group("/api/v1")
	protected.Use(middleware.JWTAuth(r.cfg.JWT))
	protected.Use(middleware.RequireRole())
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(protected)
	}

	return engine
}

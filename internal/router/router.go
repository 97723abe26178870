// Package router registers the HTTP routes of the directory and the
// middleware that guards them.
package router

import (
	"database/sql"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/form"
	"github.com/iliyamo/fyyur/internal/handler"
	"github.com/iliyamo/fyyur/internal/middleware"
)

// Handlers bundles the handler sets the routes dispatch to.
type Handlers struct {
	Home    *handler.HomeHandler
	Venues  *handler.VenueHandler
	Artists *handler.ArtistHandler
	Shows   *handler.ShowHandler
	Auth    *handler.AuthHandler // nil when admin auth is disabled
}

// Options carries the middleware settings.  A nil Redis client disables
// the response cache and the rate limiter.
type Options struct {
	Cache       config.CacheConfig
	RateLimit   config.RateLimitConfig
	Redis       *redis.Client
	AuthEnabled bool
	JWTSecret   string
}

// guards holds the middleware chains shared by the resource groups.
// Only responses that do not depend on the clock are cached: a show moves
// from upcoming to past without any write, so detail pages, area listings
// and upcoming counts are computed on every read.
type guards struct {
	cached []echo.MiddlewareFunc
	write  []echo.MiddlewareFunc
	delete []echo.MiddlewareFunc
}

func newGuards(opts Options) guards {
	cache := middleware.NewRedisCache(opts.Cache, opts.Redis)
	invalidate := middleware.Invalidate(opts.Cache, opts.Redis)
	g := guards{
		cached: []echo.MiddlewareFunc{cache},
		write:  []echo.MiddlewareFunc{invalidate},
	}
	if opts.AuthEnabled {
		g.delete = append(g.delete, middleware.JWTAuth(opts.JWTSecret), middleware.RequireRole(middleware.RoleAdmin))
	}
	g.delete = append(g.delete, invalidate)
	return g
}

// Register installs the validator, the JSON error handler, the rate
// limiter and every route on e.
func Register(e *echo.Echo, db *sql.DB, h Handlers, opts Options) {
	e.Validator = form.NewValidator()
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	RegisterRoutes(e, db)

	g := newGuards(opts)
	app := e.Group("", middleware.NewTokenBucket(opts.RateLimit, opts.Redis))
	app.GET("/", h.Home.Index)
	registerVenues(app, h.Venues, g)
	registerArtists(app, h.Artists, g)
	registerShows(app, h.Shows, g)
	if h.Auth != nil {
		RegisterAuth(app, h.Auth)
	}
}

// RegisterRoutes registers the routes that bypass rate limiting.  At the
// moment that is only the health check.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
	e.GET("/healthz", handler.Health(db))
}

// RegisterAuth exposes the admin login.
func RegisterAuth(g *echo.Group, a *handler.AuthHandler) {
	g.POST("/auth/login", a.Login)
}

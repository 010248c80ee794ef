// Package router wires the HTTP surface: route groups, auth middleware,
// role gates, and the cache/rate-limit layers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/evergreenmedia/showdesk/internal/config"
	"github.com/evergreenmedia/showdesk/internal/handler"
	"github.com/evergreenmedia/showdesk/internal/middleware"
	"github.com/evergreenmedia/showdesk/internal/model"
)

// Handlers collects everything the route table needs.
type Handlers struct {
	Auth    *handler.AuthHandler
	Shows   *handler.ShowHandler
	Partner *handler.PartnerHandler
	Ledger  *handler.LedgerHandler
	CSV     *handler.CSVHandler
}

// Register mounts every route. The layout is three tiers: public
// (health, login), authenticated (reads, scoped by role inside the
// handlers), and admin-only (every mutation plus partner management).
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// Login is rate limited per client IP so credential stuffing gets
	// expensive; everything else rides behind the JWT instead.
	login := e.Group("")
	login.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	login.POST("/login", h.Auth.Login)

	auth := e.Group("")
	auth.Use(middleware.JWTAuth(cfg.JWTSecret))
	auth.Use(middleware.RequireRole(string(model.RoleAdmin), string(model.RolePartner)))

	auth.GET("/users/me", h.Auth.Me)

	// GET list endpoints sit behind the response cache. The cache key
	// includes the caller identity, so role-scoped lists never cross over.
	cached := auth.Group("")
	cached.Use(middleware.NewResponseCache(config.LoadCacheConfig(), rdb))
	cached.GET("/podcasts", h.Shows.List)
	cached.GET("/podcasts/filter", h.Shows.Filter)
	cached.GET("/ledger", h.Ledger.List)
	cached.GET("/ledger/summary", h.Ledger.Summary)

	auth.GET("/podcasts/export", h.CSV.Export)
	auth.GET("/podcasts/import/template", h.CSV.Template)
	auth.GET("/podcasts/:id", h.Shows.Get)
	auth.GET("/partners/me/podcasts", h.Partner.MyShows)

	admin := auth.Group("")
	admin.Use(middleware.RequireRole(string(model.RoleAdmin)))
	admin.POST("/podcasts", h.Shows.Create)
	admin.PUT("/podcasts/:id", h.Shows.Update)
	admin.DELETE("/podcasts/:id", h.Shows.Delete)
	admin.POST("/podcasts/import", h.CSV.Import)

	admin.POST("/partners", h.Partner.Create)
	admin.PUT("/partners/:id/password", h.Partner.UpdatePassword)
	admin.DELETE("/users/:id", h.Partner.DeleteUser)
	admin.POST("/podcasts/:id/partners/:partnerId", h.Partner.Attach)
	admin.DELETE("/podcasts/:id/partners/:partnerId", h.Partner.Detach)
	admin.GET("/partners/:id/podcasts", h.Partner.ShowsFor)
}

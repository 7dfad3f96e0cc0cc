// Package router wires the HTTP surface: which handler serves each
// path and which middleware chain guards it.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/jortega-dev/job-board-api/internal/authz"
	"github.com/jortega-dev/job-board-api/internal/config"
	"github.com/jortega-dev/job-board-api/internal/handler"
	"github.com/jortega-dev/job-board-api/internal/middleware"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Companies    *handler.CompanyHandler
	Offers       *handler.OfferHandler
	Applications *handler.ApplicationHandler
	Skills       *handler.SkillHandler
}

// Register mounts all routes under /v1. Public reads go through the
// response cache; everything passes the rate limiter; protected routes
// authenticate and then role-gate per operation. Ownership checks run
// inside the services, after the existence check.
func Register(e *echo.Echo, h Handlers, jwtSecret string, ids middleware.Identifier, rdb *redis.Client) {
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	cache := middleware.ResponseCache(config.LoadCacheConfig(), rdb)
	auth := middleware.Authenticate(jwtSecret, ids)

	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Auth.
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.GET("/auth/me", h.Auth.Me, auth)

	// Companies. Browse and detail are public and cached.
	v1.GET("/companies", h.Companies.List, cache)
	v1.GET("/companies/:id", h.Companies.Get, cache)
	v1.POST("/companies", h.Companies.Create, auth, middleware.Require(authz.OpCompanyCreate))
	v1.PATCH("/companies/:id", h.Companies.Update, auth, middleware.Require(authz.OpCompanyUpdate))
	v1.DELETE("/companies/:id", h.Companies.Delete, auth, middleware.Require(authz.OpCompanyDelete))

	// Job offers. The fixed /my-offers and /admin/all paths are
	// registered before the :id route so Echo does not capture them as
	// ids.
	v1.GET("/job-offers", h.Offers.List, cache)
	v1.GET("/job-offers/my-offers", h.Offers.ListMine, auth, middleware.Require(authz.OpOfferListMine))
	v1.GET("/job-offers/admin/all", h.Offers.ListAdmin, auth, middleware.Require(authz.OpOfferListAdmin))
	v1.GET("/job-offers/:id", h.Offers.Get, cache)
	v1.POST("/job-offers", h.Offers.Create, auth, middleware.Require(authz.OpOfferCreate))
	v1.PATCH("/job-offers/:id", h.Offers.Update, auth, middleware.Require(authz.OpOfferUpdate))
	v1.DELETE("/job-offers/:id", h.Offers.Delete, auth, middleware.Require(authz.OpOfferDelete))

	// Applications.
	v1.POST("/job-offers/:id/apply", h.Applications.Apply, auth, middleware.Require(authz.OpApplicationSubmit))
	v1.GET("/job-offers/:id/applications", h.Applications.ListForOffer, auth, middleware.Require(authz.OpApplicationReview))
	v1.GET("/applications/my", h.Applications.ListMine, auth, middleware.Require(authz.OpApplicationListMine))

	// Skill catalog.
	v1.GET("/skills", h.Skills.List, cache)
}

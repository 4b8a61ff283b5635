package router

// This file registers the administrative endpoints: role and permission
// management, officer accounts and forwarding maps.  They are grouped
// separately from the application routes to keep concerns isolated.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/handler"
	"github.com/iliyamo/license-flow/internal/middleware"
)

// RegisterRoles registers role and permission endpoints under /v1.  All
// routes require a valid JWT; reads are open to every rank, the CRUD
// operations are not rank-gated because permission records themselves
// decide what a role may do.
func RegisterRoles(e *echo.Echo, h *handler.RoleHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/roles/hierarchy", h.Hierarchy, cache)
	g.GET("/roles/:id/actions", h.Actions)

	g.POST("/roles", h.CreateRole)
	g.PUT("/roles/:id", h.UpdateRole)

	g.POST("/permissions", h.CreatePermission)
	g.PUT("/permissions/:id", h.UpdatePermission)
}

// RegisterUsers registers officer account management endpoints under /v1.
func RegisterUsers(e *echo.Echo, h *handler.UserHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.GET("/users", h.List)
	g.GET("/users/:id", h.Get)
	g.POST("/users", h.Create)
	g.PUT("/users/:id", h.Update)
	g.DELETE("/users/:id", h.Delete)
}

// RegisterFlowMaps registers the forwarding map endpoints under /v1.
func RegisterFlowMaps(e *echo.Echo, h *handler.FlowMapHandler, jwtSecret string) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/flow-maps", h.Replace)
	g.GET("/flow-maps/user/:userId", h.ListByUser)
}

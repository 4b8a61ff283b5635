package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/handler"
	"github.com/iliyamo/license-flow/internal/middleware"
	"github.com/iliyamo/license-flow/internal/workflow"
)

// RegisterApplications registers the application endpoints under /v1.
// Every route requires a valid JWT; any rank may create, list and read
// applications, while the two workflow operations additionally carry
// rank allow-lists.  The blanket RequireRole gate is backed by the
// engine's own permission check, so a stale route configuration cannot
// widen what a rank is allowed to do.
func RegisterApplications(e *echo.Echo, h *handler.ApplicationHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret))

	g.POST("/applications", h.Create)
	g.GET("/applications", h.List, cache)
	g.GET("/applications/:id", h.Get, cache)
	g.GET("/applications/:id/history", h.GetHistory)

	// Status changes are for SHO and above; forwarding also covers ZS.
	g.PATCH("/applications/:id/status", h.ChangeStatus,
		middleware.RequireRole(workflow.StatusChangerRoles()...))
	g.POST("/applications/:id/forward", h.Forward,
		middleware.RequireRole(workflow.ForwarderRoles()...))
}

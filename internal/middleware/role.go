package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context
)

// RequireRole returns a middleware function that enforces that the
// authenticated user holds one of the specified rank codes.  The codes
// correspond to the values stored in the JWT's "role" claim, which a
// previous JWTAuth middleware placed in the context.  A missing or
// disallowed rank aborts the request with 403 Forbidden.  This gate is
// the blanket check only; the workflow engine re-validates the specific
// transition or forwarding target behind it.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed rank codes for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Get("role")
			role, ok := v.(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

package handler // handler defines http handlers

import (
	"errors"  // errors provides sentinel values used in the context helpers
	"strconv" // strconv converts strings to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/license-flow/internal/workflow" // workflow holds the actor type
)

// getUserID extracts the user_id from echo.Context and converts it to uint64
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id") // fetch user_id from context
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64: // JWT numeric claims decode as float64
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentActor assembles the workflow actor from the identity the JWT
// middleware placed in the context.
func currentActor(c echo.Context) (workflow.Actor, error) {
	id, err := getUserID(c)
	if err != nil {
		return workflow.Actor{}, err
	}
	username, _ := c.Get("username").(string)
	roleStr, _ := c.Get("role").(string)
	role, parseErr := workflow.ParseRole(roleStr)
	if parseErr != nil {
		// Unknown rank codes still reach the engine, which fails them
		// closed on the permission check.
		role = workflow.Role(roleStr)
	}
	return workflow.Actor{ID: id, Username: username, Role: role}, nil
}

// pathID parses a numeric :id style path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}

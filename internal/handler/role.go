package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/repository"
	"github.com/iliyamo/license-flow/internal/workflow"
)

// RoleHandler exposes the rank listing and the role/permission admin
// endpoints.  The forwarding targets reported per rank come from the
// static workflow hierarchy, not from the database.
type RoleHandler struct {
	Roles *repository.RoleRepo
}

func NewRoleHandler(r *repository.RoleRepo) *RoleHandler {
	return &RoleHandler{Roles: r}
}

type createRoleReq struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

type updateRoleReq struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

type createPermissionReq struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type updatePermissionReq struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
}

// hierarchyEntry decorates a stored role with the forwarding targets its
// rank code grants.  Codes outside the rank table report no targets.
type hierarchyEntry struct {
	ID             uint8    `json:"id"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	IsActive       bool     `json:"is_active"`
	ForwardTargets []string `json:"forward_targets"`
}

// Hierarchy lists all roles ordered by name, each with the rank's
// forwarding targets.
func (h *RoleHandler) Hierarchy(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	roles, err := h.Roles.ListOrdered(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hierarchyEntry, 0, len(roles))
	for _, r := range roles {
		targets := make([]string, 0)
		if rank, err := workflow.ParseRole(r.Code); err == nil {
			for _, t := range workflow.ForwardTargets(rank) {
				targets = append(targets, string(t))
			}
		}
		out = append(out, hierarchyEntry{
			ID:             r.ID,
			Code:           r.Code,
			Name:           r.Name,
			IsActive:       r.IsActive,
			ForwardTargets: targets,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": out})
}

// Actions returns one role together with its granted permissions.
func (h *RoleHandler) Actions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil || id > 255 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role, err := h.Roles.GetWithPermissions(ctx, uint8(id))
	if err != nil {
		if err == repository.ErrRoleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "role not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, role)
}

// CreateRole registers a new role record.
func (h *RoleHandler) CreateRole(c echo.Context) error {
	var req createRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code/name required"})
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role, err := h.Roles.CreateRole(ctx, req.Code, req.Name, active)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "role code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, role)
}

// UpdateRole applies a partial update to a role.
func (h *RoleHandler) UpdateRole(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil || id > 255 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	role, err := h.Roles.UpdateRole(ctx, uint8(id), req.Name, req.IsActive)
	if err != nil {
		if err == repository.ErrRoleNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "role not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, role)
}

// CreatePermission registers a new permission record.
func (h *RoleHandler) CreatePermission(c echo.Context) error {
	var req createPermissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if req.Code == "" || req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code/name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	perm, err := h.Roles.CreatePermission(ctx, req.Code, req.Name, strings.TrimSpace(req.Category))
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "permission code already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, perm)
}

// UpdatePermission applies a partial update to a permission.
func (h *RoleHandler) UpdatePermission(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updatePermissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	perm, err := h.Roles.UpdatePermission(ctx, id, req.Name, req.Category)
	if err != nil {
		if err == repository.ErrPermissionNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "permission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, perm)
}

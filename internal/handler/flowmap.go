package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/repository"
)

// FlowMapHandler manages per-user forwarding maps.  A map records which
// users an officer usually forwards to; it informs client UIs and does
// not restrict what the workflow engine accepts.
type FlowMapHandler struct {
	FlowMaps *repository.FlowMapRepo
}

func NewFlowMapHandler(f *repository.FlowMapRepo) *FlowMapHandler {
	return &FlowMapHandler{FlowMaps: f}
}

type replaceFlowMapReq struct {
	CurrentUserID uint64   `json:"current_user_id"`
	NextUserIDs   []uint64 `json:"next_user_ids"`
}

// Replace overwrites the forwarding map of one user with a new recipient
// list.  The whole replacement is atomic; a bad user reference fails the
// request without partial effect.
func (h *FlowMapHandler) Replace(c echo.Context) error {
	var req replaceFlowMapReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentUserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current_user_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	fm, err := h.FlowMaps.Replace(ctx, req.CurrentUserID, req.NextUserIDs)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown user reference"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "replace failed"})
	}
	return c.JSON(http.StatusCreated, fm)
}

// ListByUser returns the forwarding maps recorded for one user.
func (h *FlowMapHandler) ListByUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	maps, err := h.FlowMaps.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"flow_maps": maps})
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/model"
	"github.com/iliyamo/license-flow/internal/repository"
	"github.com/iliyamo/license-flow/internal/workflow"
)

// ApplicationHandler bundles the dependencies of the application endpoints.
// Reads go straight to the repositories; the two mutating workflow
// operations (status change, forward) go through the engine so that
// every acceptance rule lives in one place.
type ApplicationHandler struct {
	Apps    *repository.ApplicationRepo
	History *repository.HistoryRepo
	Engine  *workflow.Engine
}

func NewApplicationHandler(apps *repository.ApplicationRepo, history *repository.HistoryRepo, engine *workflow.Engine) *ApplicationHandler {
	if apps == nil || history == nil || engine == nil {
		panic("nil dependency passed to NewApplicationHandler")
	}
	return &ApplicationHandler{Apps: apps, History: history, Engine: engine}
}

// ----- DTOs -----

type createApplicationReq struct {
	ApplicantName           string  `json:"applicant_name"`
	ApplicantMobile         *string `json:"applicant_mobile"`
	ApplicantEmail          *string `json:"applicant_email"`
	FatherName              *string `json:"father_name"`
	Gender                  *string `json:"gender"`
	DOB                     *string `json:"dob"`
	Address                 *string `json:"address"`
	ApplicationType         *string `json:"application_type"`
	WeaponType              *string `json:"weapon_type"`
	WeaponReason            *string `json:"weapon_reason"`
	LicenseType             *string `json:"license_type"`
	LicenseValidity         *string `json:"license_validity"`
	IsPreviouslyHeldLicense bool    `json:"is_previously_held_license"`
	PreviousLicenseNumber   *string `json:"previous_license_number"`
	HasCriminalRecord       bool    `json:"has_criminal_record"`
	CriminalRecordDetails   *string `json:"criminal_record_details"`
	Status                  string  `json:"status"`
}

type changeStatusReq struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

type forwardReq struct {
	ForwardToRole string `json:"forward_to_role"`
	Comments      string `json:"comments"`
}

// parseDate accepts either a bare date or a full RFC3339 timestamp,
// which is what clients of the original system send interchangeably.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// workflowError maps engine and store sentinels onto HTTP responses.
// Anything unrecognized is a 500 with a generic message.
func workflowError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, workflow.ErrApplicationNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "application not found"})
	case errors.Is(err, workflow.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "role not allowed"})
	case errors.Is(err, workflow.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status transition"})
	case errors.Is(err, workflow.ErrInvalidForwardTarget):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid forwarding target"})
	case errors.Is(err, workflow.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "application changed concurrently, retry"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "operation failed"})
	}
}

// Create registers a new application under a generated ALM id.
func (h *ApplicationHandler) Create(c echo.Context) error {
	var req createApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.ApplicantName = strings.TrimSpace(req.ApplicantName)
	if req.ApplicantName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "applicant_name required"})
	}
	if strings.TrimSpace(req.Status) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}
	status, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	app := model.Application{
		ApplicantName:           req.ApplicantName,
		ApplicantMobile:         req.ApplicantMobile,
		ApplicantEmail:          req.ApplicantEmail,
		FatherName:              req.FatherName,
		Gender:                  req.Gender,
		Address:                 req.Address,
		ApplicationType:         req.ApplicationType,
		WeaponType:              req.WeaponType,
		WeaponReason:            req.WeaponReason,
		LicenseType:             req.LicenseType,
		IsPreviouslyHeldLicense: req.IsPreviouslyHeldLicense,
		PreviousLicenseNumber:   req.PreviousLicenseNumber,
		HasCriminalRecord:       req.HasCriminalRecord,
		CriminalRecordDetails:   req.CriminalRecordDetails,
		Status:                  string(status),
	}
	if req.DOB != nil {
		t, err := parseDate(*req.DOB)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid dob"})
		}
		app.DOB = &t
	}
	if req.LicenseValidity != nil {
		t, err := parseDate(*req.LicenseValidity)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid license_validity"})
		}
		app.LicenseValidity = &t
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// The date-scoped random id can collide; one retry with a fresh
	// number is enough given the 90000-value space per day.
	app.ID = workflow.NewApplicationID(time.Now())
	if err := h.Apps.Create(ctx, &app); err != nil {
		if err != repository.ErrDuplicateID {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
		app.ID = workflow.NewApplicationID(time.Now())
		if err := h.Apps.Create(ctx, &app); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
		}
	}

	return c.JSON(http.StatusCreated, app)
}

// List returns applications matching the query filters, newest first.
func (h *ApplicationHandler) List(c echo.Context) error {
	f := repository.ApplicationFilter{
		Search: strings.TrimSpace(c.QueryParam("search")),
		Status: strings.TrimSpace(c.QueryParam("status")),
	}
	if s := c.QueryParam("start_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date"})
		}
		f.StartDate = &t
	}
	if s := c.QueryParam("end_date"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_date"})
		}
		f.EndDate = &t
	}
	if s := c.QueryParam("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			f.Page = n
		}
	}
	if s := c.QueryParam("page_size"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			f.PageSize = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	apps, err := h.Apps.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"applications": apps})
}

// Get returns a single application by its ALM id.
func (h *ApplicationHandler) Get(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Apps.GetByID(ctx, id)
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

// GetHistory returns the application's action trail, oldest first.
func (h *ApplicationHandler) GetHistory(c echo.Context) error {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// History of a missing application is a 404, not an empty list.
	if _, err := h.Apps.GetByID(ctx, id); err != nil {
		return workflowError(c, err)
	}
	entries, err := h.History.ListByApplication(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"history": entries})
}

// ChangeStatus moves an application through the status lifecycle on
// behalf of the authenticated actor.
func (h *ApplicationHandler) ChangeStatus(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	var req changeStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	next, err := workflow.ParseStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Engine.ChangeStatus(ctx, actor, c.Param("id"), next, strings.TrimSpace(req.Comment))
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

// Forward routes an application to another rank.
func (h *ApplicationHandler) Forward(c echo.Context) error {
	actor, err := currentActor(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthenticated"})
	}
	var req forwardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	target, err := workflow.ParseRole(req.ForwardToRole)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	app, err := h.Engine.Forward(ctx, actor, c.Param("id"), target, strings.TrimSpace(req.Comments))
	if err != nil {
		return workflowError(c, err)
	}
	return c.JSON(http.StatusOK, app)
}

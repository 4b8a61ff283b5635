package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/license-flow/internal/model"
	"github.com/iliyamo/license-flow/internal/repository"
	"github.com/iliyamo/license-flow/internal/workflow"
)

// stubStore serves a single in-memory application to the engine so the
// handler can be exercised without a database.
type stubStore struct {
	app      model.Application
	applyErr error
}

func (s *stubStore) GetApplication(_ context.Context, id string) (model.Application, error) {
	if id != s.app.ID {
		return model.Application{}, workflow.ErrApplicationNotFound
	}
	return s.app, nil
}

func (s *stubStore) ApplyStatusChange(_ context.Context, id string, from, to workflow.Status, entry model.ActionHistory) (model.Application, error) {
	if s.applyErr != nil {
		return model.Application{}, s.applyErr
	}
	s.app.Status = string(to)
	return s.app, nil
}

func (s *stubStore) ApplyForward(_ context.Context, id string, comments string, entry model.ActionHistory) (model.Application, error) {
	if s.applyErr != nil {
		return model.Application{}, s.applyErr
	}
	s.app.ForwardComments = comments
	return s.app, nil
}

func newTestHandler(store workflow.Store) *ApplicationHandler {
	return NewApplicationHandler(
		repository.NewApplicationRepo(nil),
		repository.NewHistoryRepo(nil),
		workflow.NewEngine(store, nil),
	)
}

func jsonRequest(method, target, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func TestCreateRejectsMissingStatus(t *testing.T) {
	h := newTestHandler(&stubStore{})
	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/v1/applications", `{"applicant_name":"Arjun Rao"}`)
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRejectsMissingName(t *testing.T) {
	h := newTestHandler(&stubStore{})
	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/v1/applications", `{"status":"FRESH"}`)
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	h := newTestHandler(&stubStore{})
	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/v1/applications", `{"applicant_name":"Arjun Rao","status":"PENDING"}`)
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func actorContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, role string) echo.Context {
	c := e.NewContext(req, rec)
	c.Set("user_id", float64(7))
	c.Set("username", "officer7")
	c.Set("role", role)
	return c
}

func TestChangeStatusHappyPath(t *testing.T) {
	store := &stubStore{app: model.Application{ID: "ALM-20250101-12345", ApplicantName: "Arjun Rao", Status: "FRESH"}}
	h := newTestHandler(store)
	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/v1/applications/ALM-20250101-12345/status", `{"status":"FORWARDED"}`)
	c := actorContext(e, req, rec, "SHO")
	c.SetParamNames("id")
	c.SetParamValues("ALM-20250101-12345")

	if err := h.ChangeStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got model.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Status != "FORWARDED" {
		t.Errorf("application status = %q, want FORWARDED", got.Status)
	}
}

func TestChangeStatusConflictMapsTo409(t *testing.T) {
	store := &stubStore{
		app:      model.Application{ID: "ALM-20250101-12345", Status: "FRESH"},
		applyErr: workflow.ErrConflict,
	}
	h := newTestHandler(store)
	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/v1/applications/ALM-20250101-12345/status", `{"status":"FORWARDED"}`)
	c := actorContext(e, req, rec, "ACP")
	c.SetParamNames("id")
	c.SetParamValues("ALM-20250101-12345")

	if err := h.ChangeStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestChangeStatusUnknownApplication(t *testing.T) {
	store := &stubStore{app: model.Application{ID: "ALM-20250101-12345", Status: "FRESH"}}
	h := newTestHandler(store)
	e := echo.New()
	req, rec := jsonRequest(http.MethodPatch, "/v1/applications/ALM-20250101-99999/status", `{"status":"FORWARDED"}`)
	c := actorContext(e, req, rec, "SHO")
	c.SetParamNames("id")
	c.SetParamValues("ALM-20250101-99999")

	if err := h.ChangeStatus(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestForwardRejectsUnknownRole(t *testing.T) {
	store := &stubStore{app: model.Application{ID: "ALM-20250101-12345", Status: "FRESH"}}
	h := newTestHandler(store)
	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/v1/applications/ALM-20250101-12345/forward", `{"forward_to_role":"CLERK"}`)
	c := actorContext(e, req, rec, "ZS")
	c.SetParamNames("id")
	c.SetParamValues("ALM-20250101-12345")

	if err := h.Forward(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestForwardRecordsComments(t *testing.T) {
	store := &stubStore{app: model.Application{ID: "ALM-20250101-12345", Status: "FRESH"}}
	h := newTestHandler(store)
	e := echo.New()
	req, rec := jsonRequest(http.MethodPost, "/v1/applications/ALM-20250101-12345/forward", `{"forward_to_role":"ACP","comments":"needs senior review"}`)
	c := actorContext(e, req, rec, "ZS")
	c.SetParamNames("id")
	c.SetParamValues("ALM-20250101-12345")

	if err := h.Forward(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got model.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.ForwardComments != "needs senior review" {
		t.Errorf("forward_comments = %q", got.ForwardComments)
	}
	if got.Status != "FRESH" {
		t.Errorf("status changed to %q on forward", got.Status)
	}
}

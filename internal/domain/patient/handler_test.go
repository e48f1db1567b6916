package patient

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo, *mockRepo) {
	svc, repo := newTestService()
	return NewHandler(svc), echo.New(), repo
}

func TestHandler_Register(t *testing.T) {
	h, e, repo := newTestHandler()
	body := `{"name":"Jordan Reeves","email":"jordan@example.com","dateOfBirth":"1990-04-12","insuranceNumber":"INS-1"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 stored patient, got %d", len(repo.items))
	}
	for _, p := range repo.items {
		if p.InsuranceID == nil || *p.InsuranceID != "INS-1" {
			t.Error("expected insuranceNumber to map to insurance_id")
		}
		if p.DateOfBirth == nil {
			t.Error("expected dateOfBirth to be parsed")
		}
	}
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"name":"Jordan","email":"dup@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Register(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req2.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec2 := httptest.NewRecorder()
	err := h.Register(e.NewContext(req2, rec2))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Register_BadDate(t *testing.T) {
	h, e, _ := newTestHandler()
	body := `{"name":"Jordan","email":"j@example.com","dateOfBirth":"12/04/1990"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	err := h.Register(e.NewContext(req, rec))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Get(t *testing.T) {
	h, e, repo := newTestHandler()
	id := uuid.New()
	repo.items[id] = &Patient{ID: id, Name: "Jordan", Email: "j@example.com"}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, e, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.Get(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e, _ := newTestHandler()
	public := e.Group("/api/v1")
	staff := e.Group("/api/v1")
	h.RegisterRoutes(public, staff)

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Method+":"+r.Path] = true
	}
	for _, route := range []string{
		"POST:/api/v1/patients/register",
		"GET:/api/v1/patients",
		"GET:/api/v1/patients/:id",
	} {
		if !routePaths[route] {
			t.Errorf("expected route %s to be registered", route)
		}
	}
}

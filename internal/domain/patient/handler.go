package patient

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *echo.Group, staff *echo.Group) {
	public.POST("/patients/register", h.Register)

	manage := staff.Group("", auth.RequireRole("admin", "staff"))
	manage.GET("/patients", h.List)
	manage.GET("/patients/:id", h.Get)
}

// registerRequest is the self-registration payload.
type registerRequest struct {
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             *string    `json:"phone"`
	DateOfBirth       string     `json:"dateOfBirth"`
	Address           *string    `json:"address"`
	InsuranceProvider *string    `json:"insuranceProvider"`
	InsuranceNumber   *string    `json:"insuranceNumber"`
	PrimaryDoctorID   *uuid.UUID `json:"primaryDoctorId"`
}

func (h *Handler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p := &Patient{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		InsuranceProvider: req.InsuranceProvider,
		InsuranceID:       req.InsuranceNumber,
		PrimaryDoctorID:   req.PrimaryDoctorID,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid dateOfBirth, expected YYYY-MM-DD")
		}
		p.DateOfBirth = &dob
	}

	if err := h.svc.Register(c.Request().Context(), p); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if req.Name == "" || req.Email == "" {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to register patient")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Patient registered successfully",
		"patientId": p.ID,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list patients")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

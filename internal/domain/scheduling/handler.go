package scheduling

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/domain/availability"
	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts booking and schedule views on the public group and
// the appointment management endpoints on the authenticated staff group.
func (h *Handler) RegisterRoutes(public *echo.Group, staff *echo.Group) {
	public.POST("/appointments", h.Book)
	public.GET("/appointments/doctor", h.DoctorSchedule)
	public.GET("/appointments/patient", h.PatientAppointments)

	manage := staff.Group("", auth.RequireRole("admin", "staff"))
	manage.GET("/appointments", h.ListAppointments)
	manage.PATCH("/appointments/:id/status", h.UpdateStatus)
}

// bookRequest is the booking payload.
type bookRequest struct {
	PatientID       uuid.UUID `json:"patientId"`
	DoctorID        uuid.UUID `json:"doctorId"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Type            string    `json:"type"`
	Notes           *string   `json:"notes"`
	DurationMinutes *int      `json:"durationMinutes"`
}

func (h *Handler) Book(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Date == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}
	date, err := availability.ParseDate(req.Date)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a := &Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Date:            date,
		Time:            req.Time,
		Type:            req.Type,
		Notes:           req.Notes,
		DurationMinutes: req.DurationMinutes,
	}
	if err := h.svc.Book(c.Request().Context(), a); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		if errors.Is(err, availability.ErrInvalidTime) || errors.Is(err, availability.ErrInvalidDate) ||
			errors.Is(err, availability.ErrMissingField) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to book appointment")
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListAppointments(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) PatientAppointments(c echo.Context) error {
	patientID, err := uuid.Parse(c.QueryParam("patientId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patientId")
	}
	items, err := h.svc.PatientAppointments(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list appointments")
	}
	if items == nil {
		items = []*AppointmentDetail{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) DoctorSchedule(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctorId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctorId")
	}
	sched, err := h.svc.DoctorSchedule(c.Request().Context(), doctorID,
		c.QueryParam("startDate"), c.QueryParam("endDate"))
	if err != nil {
		if errors.Is(err, availability.ErrInvalidDate) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build doctor schedule")
	}
	return c.JSON(http.StatusOK, sched)
}

// statusRequest is the lifecycle transition payload.
type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "appointment not found")
	}
	return c.JSON(http.StatusOK, a)
}

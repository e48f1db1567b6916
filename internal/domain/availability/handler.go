package availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinic/clinic/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the patient-facing checks on the public group and the
// rule management endpoints on the authenticated staff group.
func (h *Handler) RegisterRoutes(public *echo.Group, staff *echo.Group) {
	public.POST("/appointments/check-availability", h.CheckAvailability)
	public.GET("/appointments/slots", h.DaySlots)

	manage := staff.Group("", auth.RequireRole("admin", "staff"))
	manage.GET("/doctors/:id/availability", h.GetRules)
	manage.PUT("/doctors/:id/availability", h.SetRules)
	manage.GET("/doctors/:id/time-off", h.ListTimeOff)
	manage.POST("/doctors/:id/time-off", h.AddTimeOff)
	manage.DELETE("/doctors/:id/time-off/:timeOffId", h.RemoveTimeOff)
}

func isValidationErr(err error) bool {
	return errors.Is(err, ErrInvalidTime) || errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrMissingField)
}

func (h *Handler) CheckAvailability(c echo.Context) error {
	var req CheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.CheckAvailability(c.Request().Context(), req)
	if err != nil {
		if isValidationErr(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to check availability")
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DaySlots(c echo.Context) error {
	doctorID, err := uuid.Parse(c.QueryParam("doctorId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid doctorId")
	}
	date, err := ParseDate(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	slots, err := h.svc.DaySlots(c.Request().Context(), doctorID, date)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list slots")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"date":           date.Format(DateLayout),
		"availableSlots": slots,
	})
}

// ruleInput is the write shape for a weekly rule.
type ruleInput struct {
	DayOfWeek       int     `json:"dayOfWeek"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	BreakStart      *string `json:"breakStart"`
	BreakEnd        *string `json:"breakEnd"`
	MaxAppointments int     `json:"maxAppointments"`
	IsAvailable     bool    `json:"isAvailable"`
}

func (h *Handler) GetRules(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rules, err := h.svc.RulesForDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list availability")
	}
	return c.JSON(http.StatusOK, rules)
}

func (h *Handler) SetRules(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var inputs []ruleInput
	if err := c.Bind(&inputs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rules := make([]*Rule, 0, len(inputs))
	for _, in := range inputs {
		rules = append(rules, &Rule{
			DayOfWeek:       in.DayOfWeek,
			StartTime:       in.StartTime,
			EndTime:         in.EndTime,
			BreakStart:      in.BreakStart,
			BreakEnd:        in.BreakEnd,
			MaxAppointments: in.MaxAppointments,
			IsAvailable:     in.IsAvailable,
		})
	}
	if err := h.svc.SetRules(c.Request().Context(), doctorID, rules); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rules)
}

// timeOffInput is the write shape for a time-off range.
type timeOffInput struct {
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason"`
}

func (h *Handler) ListTimeOff(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	items, err := h.svc.TimeOffForDoctor(c.Request().Context(), doctorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list time off")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) AddTimeOff(c echo.Context) error {
	doctorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in timeOffInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	start, err := ParseDate(in.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	end, err := ParseDate(in.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t := &TimeOff{DoctorID: doctorID, StartDate: start, EndDate: end, Reason: in.Reason}
	if err := h.svc.AddTimeOff(c.Request().Context(), t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) RemoveTimeOff(c echo.Context) error {
	if _, err := uuid.Parse(c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	timeOffID, err := uuid.Parse(c.Param("timeOffId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid timeOffId")
	}
	if err := h.svc.RemoveTimeOff(c.Request().Context(), timeOffID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove time off")
	}
	return c.NoContent(http.StatusNoContent)
}

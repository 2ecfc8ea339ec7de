package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/officinadeltaglio/barbershop-api/internal/domain/appointment"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/httpresp"
	"github.com/officinadeltaglio/barbershop-api/internal/middleware"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
	ucbooking "github.com/officinadeltaglio/barbershop-api/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER (admin agenda)
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	repo          domain.Repository
	createBooking *ucbooking.CreateBooking
	transitions   *ucbooking.Transitions
	settings      ucbooking.Settings
}

func NewAppointmentHandler(
	repo domain.Repository,
	createBooking *ucbooking.CreateBooking,
	transitions *ucbooking.Transitions,
	settings ucbooking.Settings,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:          repo,
		createBooking: createBooking,
		transitions:   transitions,
		settings:      settings,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type AdminCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// LIST BY DATE
////////////////////////////////////////////////////////

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = timezone.DateKey(todayIn(h.settings.Loc), h.settings.Loc)
	}

	day, ok := parseLocalDate(dateStr, h.settings.Loc)
	if !ok {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Data non valida.")
		return
	}

	appointments, err := h.repo.ListDayAppointments(c.Request.Context(), day)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Errore nel caricamento dell'agenda.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": appointments,
	})
}

////////////////////////////////////////////////////////
// CREATE (staff-entered, bypasses the public policies)
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AdminCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	result, err := h.createBooking.Execute(
		c.Request.Context(),
		ucbooking.CreateBookingInput{
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
			IsAdmin:     true,
			AdminUserID: &userID,
		},
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, result.Appointment)
}

////////////////////////////////////////////////////////
// TRANSITIONS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID, apID, ok := transitionParams(c)
	if !ok {
		return
	}

	ap, err := h.transitions.Cancel(c.Request.Context(), userID, apID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID, apID, ok := transitionParams(c)
	if !ok {
		return
	}

	ap, err := h.transitions.Complete(c.Request.Context(), userID, apID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	userID, apID, ok := transitionParams(c)
	if !ok {
		return
	}

	ap, err := h.transitions.MarkNoShow(c.Request.Context(), userID, apID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func transitionParams(c *gin.Context) (userID uint, apID uint, ok bool) {
	userID = c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Identificativo non valido.")
		return 0, 0, false
	}
	return userID, uint(id), true
}

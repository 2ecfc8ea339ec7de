package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/httpresp"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	ucbooking "github.com/officinadeltaglio/barbershop-api/internal/usecase/booking"
	ucqueue "github.com/officinadeltaglio/barbershop-api/internal/usecase/queue"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	createBooking *ucbooking.CreateBooking
	cancelByToken *ucbooking.CancelByToken
	availability  *ucbooking.GetAvailability
	queueSnapshot *ucqueue.Snapshot
}

func NewPublicHandler(
	db *gorm.DB,
	createBooking *ucbooking.CreateBooking,
	cancelByToken *ucbooking.CancelByToken,
	availability *ucbooking.GetAvailability,
	queueSnapshot *ucqueue.Snapshot,
) *PublicHandler {
	return &PublicHandler{
		db:            db,
		createBooking: createBooking,
		cancelByToken: cancelByToken,
		availability:  availability,
		queueSnapshot: queueSnapshot,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:MM
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Errore nel caricamento dei servizi.")
		return
	}

	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e servizio sono obbligatori.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Servizio non valido.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), dateStr, uint(serviceID))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

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
		},
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":        true,
		"appointment_id": result.Appointment.ID,
		"cancel_url":     result.CancelURL,
		"whatsapp_url":   result.WhatsAppURL,
	})
}

////////////////////////////////////////////////////////
// CANCEL BY TOKEN (/cancella?token=...)
////////////////////////////////////////////////////////

func (h *PublicHandler) CancelByToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			token = body.Token
		}
	}

	ap, err := h.cancelByToken.Execute(c.Request.Context(), token)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  ap.Status,
	})
}

////////////////////////////////////////////////////////
// QUEUE BOARD
////////////////////////////////////////////////////////

// QueueBoard is the public waiting-room view: positions and waits,
// names as entered at check-in, no contact data.
func (h *PublicHandler) QueueBoard(c *gin.Context) {
	snap, err := h.queueSnapshot.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "queue_failed", "Errore nel caricamento della coda.")
		return
	}

	c.JSON(http.StatusOK, snap)
}

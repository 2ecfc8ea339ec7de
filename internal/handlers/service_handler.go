package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/httpresp"
	"github.com/officinadeltaglio/barbershop-api/internal/middleware"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER (service catalog)
////////////////////////////////////////////////////////

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditor *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditor}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required"`
	Price       float64 `json:"price"`
	Active      *bool   `json:"active"`
}

////////////////////////////////////////////////////////
// CRUD
////////////////////////////////////////////////////////

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Errore nel caricamento dei servizi.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

	if req.DurationMin <= 0 || req.DurationMin > 8*60 {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Durata non valida.")
		return
	}

	svc := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Active:      true,
	}
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Errore nella creazione del servizio.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Identificativo non valido.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Servizio non trovato.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

	if req.DurationMin <= 0 || req.DurationMin > 8*60 {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Durata non valida.")
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.Price = req.Price
	if req.Active != nil {
		svc.Active = *req.Active
	}

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Errore nell'aggiornamento del servizio.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	httpresp.OK(c, svc)
}

// Delete deactivates: appointments keep their service reference, so
// rows are never removed, only hidden from the public list.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Identificativo non valido.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Servizio non trovato.")
		return
	}

	svc.Active = false
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Errore nell'aggiornamento del servizio.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: &svc.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

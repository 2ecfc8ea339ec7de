package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/officinadeltaglio/barbershop-api/internal/audit"
	"github.com/officinadeltaglio/barbershop-api/internal/domain/schedule"
	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/httpresp"
	"github.com/officinadeltaglio/barbershop-api/internal/middleware"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/validators"
)

////////////////////////////////////////////////////////
// HANDLER (opening hours + closed days)
////////////////////////////////////////////////////////

type SettingsHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewSettingsHandler(db *gorm.DB, auditor *audit.Dispatcher, loc *time.Location) *SettingsHandler {
	return &SettingsHandler{db: db, audit: auditor, loc: loc}
}

////////////////////////////////////////////////////////
// OPENING HOURS
////////////////////////////////////////////////////////

type OpeningHoursRow struct {
	Weekday    int    `json:"weekday"`
	Closed     bool   `json:"closed"`
	OpenTime   string `json:"open_time"`
	CloseTime  string `json:"close_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

func (h *SettingsHandler) GetOpeningHours(c *gin.Context) {
	var rows []models.OpeningHours
	if err := h.db.Order("weekday ASC").Find(&rows).Error; err != nil {
		httperr.Internal(c, "failed_to_load_hours", "Errore nel caricamento degli orari.")
		return
	}

	httpresp.List(c, rows)
}

// PutOpeningHours replaces the weekly schedule. Rows are upserted by
// weekday, so a partial payload only touches the days it names.
func (h *SettingsHandler) PutOpeningHours(c *gin.Context) {
	var req struct {
		Days []OpeningHoursRow `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

	for _, d := range req.Days {
		if d.Weekday < 0 || d.Weekday > 6 {
			httperr.BadRequest(c, httperr.CodeInvalidFormat, "Giorno della settimana non valido.")
			return
		}
		if d.Closed {
			continue
		}

		open, err1 := schedule.ParseHM(d.OpenTime)
		closeMin, err2 := schedule.ParseHM(d.CloseTime)
		if err1 != nil || err2 != nil || open >= closeMin {
			httperr.BadRequest(c, httperr.CodeInvalidFormat, "Orario di apertura non valido.")
			return
		}

		if d.BreakStart != "" || d.BreakEnd != "" {
			bs, err1 := schedule.ParseHM(d.BreakStart)
			be, err2 := schedule.ParseHM(d.BreakEnd)
			if err1 != nil || err2 != nil || bs >= be || bs < open || be > closeMin {
				httperr.BadRequest(c, httperr.CodeInvalidFormat, "Pausa non valida.")
				return
			}
		}
	}

	for _, d := range req.Days {
		row := models.OpeningHours{
			Weekday:    d.Weekday,
			Closed:     d.Closed,
			OpenTime:   d.OpenTime,
			CloseTime:  d.CloseTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
		}
		if err := h.db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"closed", "open_time", "close_time", "break_start", "break_end", "updated_at",
			}),
		}).Create(&row).Error; err != nil {
			httperr.Internal(c, "failed_to_save_hours", "Errore nel salvataggio degli orari.")
			return
		}
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID: &userID,
		Action: "opening_hours_updated",
		Entity: "opening_hours",
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

////////////////////////////////////////////////////////
// CLOSED DAYS
////////////////////////////////////////////////////////

type ClosedDayRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	Recurring bool   `json:"recurring"`
}

func (h *SettingsHandler) ListClosedDays(c *gin.Context) {
	var days []models.ClosedDay
	if err := h.db.Order("date ASC").Find(&days).Error; err != nil {
		httperr.Internal(c, "failed_to_load_closed_days", "Errore nel caricamento delle chiusure.")
		return
	}

	httpresp.List(c, days)
}

func (h *SettingsHandler) CreateClosedDay(c *gin.Context) {
	var req ClosedDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

	if !validators.IsDate(req.Date) {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Data non valida.")
		return
	}
	day, ok := parseLocalDate(req.Date, h.loc)
	if !ok {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Data non valida.")
		return
	}

	switch req.Type {
	case "":
		req.Type = "holiday"
	case "holiday", "vacation", "special":
	default:
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Tipo di chiusura non valido.")
		return
	}

	cd := models.ClosedDay{
		Date:      day,
		Type:      req.Type,
		Reason:    req.Reason,
		Recurring: req.Recurring,
	}

	if err := h.db.Create(&cd).Error; err != nil {
		httperr.Conflict(c, "closed_day_exists", "Questa data è già segnata come chiusura.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "closed_day_created",
		Entity:   "closed_day",
		EntityID: &cd.ID,
		Metadata: map[string]any{"date": req.Date},
	})

	httpresp.Created(c, cd)
}

func (h *SettingsHandler) DeleteClosedDay(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Identificativo non valido.")
		return
	}

	res := h.db.Delete(&models.ClosedDay{}, uint(id))
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_closed_day", "Errore nella cancellazione.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, httperr.CodeNotFound, "Chiusura non trovata.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)
	entityID := uint(id)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "closed_day_deleted",
		Entity:   "closed_day",
		EntityID: &entityID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

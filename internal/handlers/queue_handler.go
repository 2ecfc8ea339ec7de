package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
	"github.com/officinadeltaglio/barbershop-api/internal/httpresp"
	"github.com/officinadeltaglio/barbershop-api/internal/middleware"
	ucqueue "github.com/officinadeltaglio/barbershop-api/internal/usecase/queue"
)

////////////////////////////////////////////////////////
// HANDLER (walk-in queue)
////////////////////////////////////////////////////////

type QueueHandler struct {
	checkIn     *ucqueue.CheckIn
	callNext    *ucqueue.CallNext
	transitions *ucqueue.Transitions
	snapshot    *ucqueue.Snapshot
}

func NewQueueHandler(
	checkIn *ucqueue.CheckIn,
	callNext *ucqueue.CallNext,
	transitions *ucqueue.Transitions,
	snapshot *ucqueue.Snapshot,
) *QueueHandler {
	return &QueueHandler{
		checkIn:     checkIn,
		callNext:    callNext,
		transitions: transitions,
		snapshot:    snapshot,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type CheckInRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// CHECK-IN
////////////////////////////////////////////////////////

func (h *QueueHandler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeMissingFields, "Compila tutti i campi obbligatori.")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.checkIn.Execute(c.Request.Context(), userID, ucqueue.CheckInInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Notes:       req.Notes,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

////////////////////////////////////////////////////////
// CALL NEXT
////////////////////////////////////////////////////////

func (h *QueueHandler) CallNext(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	ap, err := h.callNext.Execute(c.Request.Context(), userID)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

////////////////////////////////////////////////////////
// TRANSITIONS
////////////////////////////////////////////////////////

func (h *QueueHandler) Complete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Identificativo non valido.")
		return
	}

	ap, err := h.transitions.Complete(c.Request.Context(), userID, uint(id))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *QueueHandler) Leave(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidFormat, "Identificativo non valido.")
		return
	}

	ap, err := h.transitions.Leave(c.Request.Context(), userID, uint(id))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

////////////////////////////////////////////////////////
// SNAPSHOT
////////////////////////////////////////////////////////

func (h *QueueHandler) Snapshot(c *gin.Context) {
	snap, err := h.snapshot.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "queue_failed", "Errore nel caricamento della coda.")
		return
	}

	httpresp.OK(c, snap)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/officinadeltaglio/barbershop-api/internal/httperr"
)

// Messages are what the booking page shows, so they name the exact
// constraint that failed: a full slot is routine, not an exception.
var businessMessages = map[string]string{
	httperr.CodeMissingFields: "Compila tutti i campi obbligatori.",
	httperr.CodeInvalidFormat: "Alcuni dati non sono validi, controlla e riprova.",
	httperr.CodeDateClosed:    "Il negozio è chiuso in questa data, scegline un'altra.",
	httperr.CodeAlreadyBooked: "Hai già una prenotazione attiva: annullala prima di crearne un'altra.",
	httperr.CodeSlotConflict:  "Questo orario non è più disponibile, aggiorna gli orari e riprova.",
	httperr.CodeRateLimited:   "Troppi tentativi, riprova tra qualche minuto.",
	httperr.CodeNotFound:      "Elemento non trovato.",
	httperr.CodeInvalidState:  "Operazione non consentita nello stato attuale.",
}

var businessStatus = map[string]int{
	httperr.CodeMissingFields: http.StatusBadRequest,
	httperr.CodeInvalidFormat: http.StatusBadRequest,
	httperr.CodeDateClosed:    http.StatusBadRequest,
	httperr.CodeAlreadyBooked: http.StatusConflict,
	httperr.CodeSlotConflict:  http.StatusConflict,
	httperr.CodeRateLimited:   http.StatusTooManyRequests,
	httperr.CodeNotFound:      http.StatusNotFound,
	httperr.CodeInvalidState:  http.StatusBadRequest,
}

// writeBusinessError maps a use-case error onto the wire; anything
// that is not a BusinessError becomes a generic 500.
func writeBusinessError(c *gin.Context, err error) {
	for code, status := range businessStatus {
		if httperr.IsBusiness(err, code) {
			httperr.WriteMeta(c, status, code, businessMessages[code], httperr.BusinessMeta(err))
			return
		}
	}

	httperr.Internal(c, "internal_error", "Si è verificato un errore, riprova più tardi.")
}

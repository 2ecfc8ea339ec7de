package httperr

import "errors"

// Codici di errore di dominio, esposti al chiamante come error_code.
const (
	CodeMissingFields = "missing_fields"
	CodeInvalidFormat = "invalid_format"
	CodeDateClosed    = "date_closed"
	CodeAlreadyBooked = "already_booked"
	CodeSlotConflict  = "slot_conflict"
	CodeRateLimited   = "rate_limited"
	CodeNotFound      = "not_found"
	CodeInvalidState  = "invalid_state"
)

type BusinessError struct {
	Code string
	// Meta carries caller-actionable details, e.g. the cancellation
	// link of the booking that triggered already_booked.
	Meta map[string]string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMeta(code string, meta map[string]string) error {
	return BusinessError{Code: code, Meta: meta}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessMeta(err error) map[string]string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Meta
	}
	return nil
}

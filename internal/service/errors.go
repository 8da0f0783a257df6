package service

import "errors"

// Sentinel errors for the whole service layer. Handlers translate them to
// HTTP status codes; nothing below the handler boundary knows about HTTP.
var (
	ErrValidation        = errors.New("validation")         // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrConflict          = errors.New("conflict")           // 409
	ErrForbidden         = errors.New("forbidden")          // 403
	ErrInvalidLineItem   = errors.New("invalid line item")  // 400
	ErrInvalidStatus     = errors.New("invalid status")     // 400
	ErrInvalidTransition = errors.New("invalid transition") // 400
	ErrNothingToUpdate   = errors.New("nothing to update")  // 400
)

package service

import "errors"

// Structured outcomes surfaced by the services. The HTTP port maps these to
// status codes; nothing below the port ever sees a status code.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("listing is already booked")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
)

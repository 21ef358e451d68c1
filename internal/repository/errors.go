package repository

import "errors"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyBooked = errors.New("listing is already booked")
	ErrUpdateFailed  = errors.New("update failed")
	ErrDeleteFailed  = errors.New("delete failed")
	ErrQueryFailed   = errors.New("database query failed")
)

package register_walkin

import "errors"

var (
	ErrAccessDenied  = errors.New("register_walkin: only doctors can register walk-in appointments")
	ErrInvalidInput  = errors.New("register_walkin: invalid input")
	ErrInvalidDate   = errors.New("register_walkin: appointment date is in the past")
	ErrAlreadyExists = errors.New("register_walkin: appointment already exists")
	ErrInternal      = errors.New("register_walkin: internal error")
)

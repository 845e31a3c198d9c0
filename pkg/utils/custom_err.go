package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidPage            = errors.New("invalid page parameter")
	ErrInvalidPageSize        = errors.New("invalid page size parameter")
	ErrDatabaseError          = errors.New("database error")
	ErrTripNotFound           = errors.New("trip not found")
	ErrPOINotFound            = errors.New("poi not found")
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected ai response")
)

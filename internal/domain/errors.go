package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation")         // 400
	ErrUnauthorized      = errors.New("unauthorized")       // 401
	ErrNotFound          = errors.New("not found")          // 404
	ErrConflict          = errors.New("conflict")           // 409
	ErrInvalidTransition = errors.New("invalid transition") // 409
)

var (
	ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", ErrValidation)
	ErrEmptyCart         = fmt.Errorf("%w: cart is empty", ErrValidation)
)

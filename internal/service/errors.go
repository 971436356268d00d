package service

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrPermission = errors.New("permission denied")
	ErrImmutable  = errors.New("deleted task is immutable")
)

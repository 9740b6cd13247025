package domain

import "errors"

var (
	ErrNotFound    = errors.New("lodge_not_found")
	ErrInvalidName = errors.New("invalid_lodge_name")
	ErrInvalidID   = errors.New("invalid_lodge_id")
)

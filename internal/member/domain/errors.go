package domain

import "errors"

var (
	ErrNotFound     = errors.New("member_not_found")
	ErrInvalidLodge = errors.New("invalid_lodge")
	ErrInvalidID    = errors.New("invalid_member_id")
	ErrInvalidName  = errors.New("invalid_member_name")
	ErrInvalidDate  = errors.New("invalid_member_date")
)

package domain

import "errors"

var (
	ErrInvalidLodge  = errors.New("invalid_lodge")
	ErrInvalidPeriod = errors.New("invalid_start_period")
	ErrInvalidAmount = errors.New("invalid_amount")
	ErrNotFound      = errors.New("price_entry_not_found")
	ErrEmptyHistory  = errors.New("empty_price_history")
)

package domain

import "errors"

var (
	ErrInvalidLodge   = errors.New("invalid_lodge")
	ErrInvalidID      = errors.New("invalid_member_id")
	ErrInvalidPeriod  = errors.New("invalid_period")
	ErrInvalidAmount  = errors.New("invalid_amount")
	ErrInvalidDate    = errors.New("invalid_payment_date")
	ErrNotFound       = errors.New("ledger_entry_not_found")
	ErrNoPriceHistory = errors.New("no_price_history")
)

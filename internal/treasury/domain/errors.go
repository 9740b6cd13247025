package domain

import "errors"

var (
	ErrInvalidLodge       = errors.New("invalid_lodge")
	ErrInvalidID          = errors.New("invalid_entry_id")
	ErrInvalidDate        = errors.New("invalid_entry_date")
	ErrInvalidType        = errors.New("invalid_transaction_type")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrInvalidAllocation  = errors.New("invalid_allocation")
	ErrAllocationMismatch = errors.New("allocation_sum_mismatch")
	ErrDerivedEntry       = errors.New("derived_entry_read_only")
	ErrNotFound           = errors.New("treasury_entry_not_found")
)

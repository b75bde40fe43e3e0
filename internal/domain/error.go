package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrInvalidCadence        = errors.New("cadence must be weekly, monthly or yearly")
	ErrInvalidDate           = errors.New("invalid or unrepresentable date")
	ErrInvalidAmount         = errors.New("amount must be a positive decimal")
	ErrUnsupportedCurrency   = errors.New("currency code is not supported")
	ErrConversionUnavailable = errors.New("live currency conversion unavailable")
	ErrOperationFailed       = errors.New("operation failed")
	ErrReadDatabaseRow       = errors.New("failed to read database row")
)

package entity

import "errors"

var (
	// Table errors
	ErrEmptyTable     = errors.New("no appointment data loaded")
	ErrMissingHeader  = errors.New("input file has no header row")
	ErrRecordNotFound = errors.New("appointment record not found")
	ErrStaleTable     = errors.New("appointment table replaced since snapshot")

	// Run errors
	ErrRunInProgress   = errors.New("a notification run is already in progress")
	ErrRunNotFound     = errors.New("run not found")
	ErrAlreadyExecuted = errors.New("automatic run already executed for this table")

	// Channel errors
	ErrMissingCredentials = errors.New("sms credentials not configured")
)

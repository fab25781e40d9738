package schedule

import "errors"

var (
	ErrSpecNotFound     = errors.New("no action spec for this action type")
	ErrMissingTerminal  = errors.New("action spec table has no terminal expiry stage")
	ErrDuplicateSpec    = errors.New("duplicate action spec type")
	ErrInvalidSpecTable = errors.New("invalid action spec table")
)

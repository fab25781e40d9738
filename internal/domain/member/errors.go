package member

import "errors"

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrMissingEmail   = errors.New("member email is required")
	ErrAlreadyActive  = errors.New("an active member with this email already exists")
)

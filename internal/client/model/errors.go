package model

import "errors"

// Error taxonomy. Remote failures that fit none of these surface as
// *gateway.RemoteError.
var (
	// ErrValidation is missing or malformed input, rejected before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrAuth covers bad credentials, missing or expired sessions and wrong
	// verification codes.
	ErrAuth = errors.New("not authorized")
	// ErrNotFound means the target of an operation is absent server-side.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is an operation the current identity may never perform.
	ErrForbidden = errors.New("forbidden")
)

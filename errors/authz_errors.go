// errors/authz_errors.go
package errors

import "errors"

var (
	ErrStorageOperation = errors.New("policy store operation failed")
	ErrInvalidRole      = errors.New("role is not valid at this level")
	ErrInvalidLevel     = errors.New("invalid authorization level")
	ErrInvalidSubject   = errors.New("invalid subject")
	ErrInternalServer   = errors.New("internal server error")
	ErrUnauthorized     = errors.New("unauthorized")
)

package errors

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalid            = errors.New("invalid")
	ErrConflict           = errors.New("conflict")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
	ErrMalformedPayload   = errors.New("malformed payload")
	ErrCorruptImage       = errors.New("corrupt image")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInternal           = errors.New("internal")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

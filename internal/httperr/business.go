package httperr

import "errors"

// Kind classifies a BusinessError for HTTP mapping.
type Kind int

const (
	KindValidation Kind = iota
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindTooManyRequests
)

type BusinessError struct {
	Kind Kind
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

var (
	ErrInvalidCredentials = BusinessError{Kind: KindInvalidCredentials, Code: "invalid_credentials"}
	ErrUnauthenticated    = BusinessError{Kind: KindUnauthenticated, Code: "unauthenticated"}
	ErrForbidden          = BusinessError{Kind: KindForbidden, Code: "forbidden"}
	ErrInvalidID          = BusinessError{Kind: KindValidation, Code: "invalid_id"}
	ErrTooManyAttempts    = BusinessError{Kind: KindTooManyRequests, Code: "too_many_attempts"}
)

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

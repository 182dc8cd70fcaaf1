package service

import "errors"

// Kind classifies a failed operation. Handlers map kinds to HTTP statuses.
type Kind string

const (
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindUnauthorized   Kind = "unauthorized"
	KindDeliveryFailed Kind = "delivery_failed"
	KindInternal       Kind = "internal"
)

// Error is returned by every service operation that fails.
// Message is safe to show to callers; Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
	}
	return string(e.Kind) + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind carried by err, or KindInternal for anything else.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

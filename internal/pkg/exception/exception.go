package exception

import (
	"errors"
	"fmt"
)

// Kind classifies application errors by the boundary that recovers them.
type Kind string

const (
	KindProviderFetch Kind = "provider_fetch"
	KindParse         Kind = "parse"
	KindStorage       Kind = "storage"
	KindNotification  Kind = "notification"
)

// ApplicationError handles application level errors.
type ApplicationError struct {
	Message string
	Kind    Kind
	Cause   error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	if e.Cause == nil {
		return errors.New(e.Message)
	}

	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Cause == targetErr.Cause &&
		e.Message == targetErr.Message
}

// ErrorKind returns the taxonomy kind for an application error.
func (e ApplicationError) ErrorKind() Kind {
	return e.Kind
}

package offerprovider

import (
	"github.com/sacredtrails/flight-tracker-delhi-goa/internal/pkg/exception"
)

var ErrProviderUnavailable = exception.ApplicationError{
	Kind:    exception.KindProviderFetch,
	Message: "provider internal error or temporary unavailable",
}

var ErrProviderAuth = exception.ApplicationError{
	Kind:    exception.KindProviderFetch,
	Message: "provider rejected the configured credentials",
}

var ErrRateLimitExceeded = exception.ApplicationError{
	Kind:    exception.KindProviderFetch,
	Message: "client-side provider rate limit exceeded",
}

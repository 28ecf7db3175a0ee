package provider

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed fetch.
type ErrorKind string

const (
	// KindNetworkFailure covers transport-level failures: connectivity,
	// DNS, timeouts. The provider was never reached.
	KindNetworkFailure ErrorKind = "network_failure"

	// KindProviderError means the provider was reached but rejected the
	// request: non-2xx status, rate limit, or an error payload.
	KindProviderError ErrorKind = "provider_error"

	// KindNoData means the request was valid but the result was empty or
	// not decodable as data.
	KindNoData ErrorKind = "no_data"
)

// FetchError is the error type returned by provider clients. Fetches are
// single round trips; no kind is retried automatically.
type FetchError struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Err      error
}

func (e *FetchError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, msg)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NetworkFailure wraps a transport error.
func NetworkFailure(providerName string, err error) *FetchError {
	return &FetchError{Kind: KindNetworkFailure, Provider: providerName, Err: err}
}

// ProviderFailure reports a rejection by the provider.
func ProviderFailure(providerName, message string) *FetchError {
	return &FetchError{Kind: KindProviderError, Provider: providerName, Message: message}
}

// NoData reports an empty or undecodable result for a valid request.
func NoData(providerName, detail string) *FetchError {
	return &FetchError{Kind: KindNoData, Provider: providerName, Message: detail}
}

// IsKind reports whether err is (or wraps) a FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

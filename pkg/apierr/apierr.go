// Package apierr defines the fixed error taxonomy shared by the API bridges.
//
// Every failure that crosses a tool boundary is an *Error carrying one Kind and
// a human-readable message. Platform classifiers build these from upstream
// error bodies; Classify turns transport failures (timeouts, dial errors) into
// the same shape so callers never see an unclassified error.
package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind is one of the fixed error categories.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindAuth              Kind = "auth_error"
	KindRateLimit         Kind = "rate_limit_error"
	KindInvalidParameter  Kind = "invalid_parameter_error"
	KindUpstream          Kind = "upstream_error"
	KindTimeout           Kind = "timeout_error"
	KindNetwork           Kind = "network_error"
	KindUnknown           Kind = "unknown_error"
	KindContainerNotReady Kind = "container_not_ready"
)

// TimeoutMessage is the fixed text for requests that hit their deadline.
const TimeoutMessage = "Request timed out. Please try again."

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string

	// Status is the upstream HTTP status, zero for transport failures.
	Status int
	// Code is the upstream error code as text ("BAD_URL", "190").
	Code string

	Err error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// ErrorCode returns the machine-readable kind.
func (e *Error) ErrorCode() string { return string(e.Kind) }

// New builds a classified error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports bad caller input rejected before any network call.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// KindOf returns the kind of err, or KindUnknown when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Classify maps any error onto the taxonomy. Already classified errors are
// returned unchanged; deadlines become KindTimeout; dial, DNS and other
// url/net failures become KindNetwork; anything else is KindUnknown.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	if isTimeout(err) {
		return &Error{Kind: KindTimeout, Message: TimeoutMessage, Err: err}
	}

	var urlErr *url.Error
	var netErr net.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &netErr) || errors.As(err, &opErr) {
		return &Error{Kind: KindNetwork, Message: "Network error: " + networkDetail(err), Err: err}
	}

	return &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// networkDetail strips the "Get \"https://...?access_token=...\"" prefix
// url.Error adds so credentials carried in the query never reach the caller.
func networkDetail(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}

// Package errs provides the unified error type used across the artifact
// backend configuration path.
//
// Every subsystem (bucket service drivers, validator, factory, settings, …)
// wraps its native errors into *errs.Error before returning them to callers.
// Callers use the Is* predicates to handle errors without importing
// driver-specific packages.
//
// Usage:
//
//	// In a driver — wrap native errors:
//	return errs.Wrap(errs.ErrKindUnavailable, "bucket info lookup failed", httpErr)
//
//	// In a handler — check error kind:
//	if errs.IsMissingField(err) {
//	    // report at the field level, no remote call was made
//	}
package errs

import (
	"errors"
	"fmt"
)

// ErrKind categorises a configuration-path error without exposing
// provider-specific codes. All drivers (native, S3-compatible, …) map their
// native errors to one of these kinds, giving callers a single consistent API.
type ErrKind int

const (
	ErrKindUnknown           ErrKind = iota
	ErrKindMissingField              // a required credential or bucket field is empty
	ErrKindMalformedEndpoint         // a domain string is not a valid host
	ErrKindAuthDenied                // the provider rejected credentials or denied bucket access
	ErrKindUnavailable               // network or provider failure during validation or discovery
	ErrKindNoDownloadDomain          // the bucket has no bound domain and none was configured
	ErrKindTimeout                   // context deadline / cancellation
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindMissingField:
		return "missing_field"
	case ErrKindMalformedEndpoint:
		return "malformed_endpoint"
	case ErrKindAuthDenied:
		return "auth_denied"
	case ErrKindUnavailable:
		return "unavailable"
	case ErrKindNoDownloadDomain:
		return "no_download_domain"
	case ErrKindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the configuration subsystems.
// Drivers produce it; callers inspect it via the Is* predicates below.
// The provider's diagnostic text is preserved in Cause and surfaced
// verbatim by Error().
type Error struct {
	Kind    ErrKind
	Message string
	Cause   error // original provider-level error, preserved for the operator
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap allows errors.Is / errors.As to traverse the cause chain.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

// New creates an *Error with the given kind and message and no cause.
func New(kind ErrKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates an *Error with a formatted message and no cause.
func Newf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error with the given kind, message, and an underlying cause.
func Wrap(kind ErrKind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// --- Predicates ---

// IsMissingField reports whether err names an empty required field.
func IsMissingField(err error) bool {
	return kindOf(err) == ErrKindMissingField
}

// IsMalformedEndpoint reports whether err was caused by an invalid host string.
func IsMalformedEndpoint(err error) bool {
	return kindOf(err) == ErrKindMalformedEndpoint
}

// IsAuthDenied reports whether the provider rejected the credentials or
// denied access to the bucket.
func IsAuthDenied(err error) bool {
	return kindOf(err) == ErrKindAuthDenied
}

// IsUnavailable reports whether err is a network or provider failure.
func IsUnavailable(err error) bool {
	return kindOf(err) == ErrKindUnavailable
}

// IsNoDownloadDomain reports whether auto-discovery found no bound domain.
func IsNoDownloadDomain(err error) bool {
	return kindOf(err) == ErrKindNoDownloadDomain
}

// IsTimeout reports whether err was caused by a deadline or context cancellation.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrKindTimeout
}

// kindOf extracts the ErrKind from any error in the chain.
func kindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindUnknown
}

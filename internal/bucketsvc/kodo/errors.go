package kodo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cistack/artifactstore/internal/errs"
)

// providerError is the provider's diagnostic payload on non-200 responses.
type providerError struct {
	Error string `json:"error"`
}

// mapTransportError translates a client-side (pre-response) failure.
func mapTransportError(err error, msg string) *errs.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}
	return errs.Wrap(errs.ErrKindUnavailable, msg, err)
}

// mapStatusError translates a non-200 provider response, preserving the
// provider's diagnostic text verbatim for the operator.
func mapStatusError(status int, body []byte, msg string) *errs.Error {
	diag := strings.TrimSpace(string(body))
	var pe providerError
	if json.Unmarshal(body, &pe) == nil && pe.Error != "" {
		diag = pe.Error
	}

	cause := fmt.Errorf("%d %s: %s", status, http.StatusText(status), diag)
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.Wrap(errs.ErrKindAuthDenied, msg, cause)
	}
	return errs.Wrap(errs.ErrKindUnavailable, msg, cause)
}

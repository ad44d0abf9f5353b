package s3

import (
	"context"
	"errors"
	"net/http"

	"github.com/cistack/artifactstore/internal/errs"
	miniogo "github.com/minio/minio-go/v7"
)

// mapError translates a MinIO SDK error into a *errs.Error, preserving the
// SDK's diagnostic text as the cause so it reaches the operator verbatim.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	// The SDK exposes a typed ErrorResponse for S3-protocol errors.
	var resp miniogo.ErrorResponse
	if errors.As(err, &resp) {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.Wrap(errs.ErrKindAuthDenied, msg, err)
		}

		switch resp.Code {
		case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return errs.Wrap(errs.ErrKindAuthDenied, msg, err)
		case "NoSuchBucket":
			return errs.Wrap(errs.ErrKindAuthDenied, msg, err)
		case "RequestTimeout", "SlowDown":
			return errs.Wrap(errs.ErrKindTimeout, msg, err)
		}
	}

	// Anything else is a connectivity / provider failure.
	return errs.Wrap(errs.ErrKindUnavailable, msg, err)
}

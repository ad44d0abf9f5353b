package s3

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/cistack/artifactstore/internal/errs"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{
			name: "nil stays nil",
			err:  nil,
			pred: nil,
		},
		{
			name: "deadline",
			err:  context.DeadlineExceeded,
			pred: errs.IsTimeout,
		},
		{
			name: "forbidden status",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusForbidden, Code: "Whatever"},
			pred: errs.IsAuthDenied,
		},
		{
			name: "signature mismatch",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusBadRequest, Code: "SignatureDoesNotMatch"},
			pred: errs.IsAuthDenied,
		},
		{
			name: "missing bucket",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusNotFound, Code: "NoSuchBucket"},
			pred: errs.IsAuthDenied,
		},
		{
			name: "slow down",
			err:  miniogo.ErrorResponse{StatusCode: http.StatusServiceUnavailable, Code: "SlowDown"},
			pred: errs.IsTimeout,
		},
		{
			name: "plain transport error",
			err:  errors.New("connection refused"),
			pred: errs.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op failed")
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			assert.True(t, tt.pred(got), "got kind %v", got.Kind)
			assert.ErrorContains(t, got, "op failed")
		})
	}
}

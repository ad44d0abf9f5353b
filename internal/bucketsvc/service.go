// Package bucketsvc defines the provider-neutral interface to the remote
// Bucket Service, the endpoint set used to reach it, and the process-wide
// endpoint defaults shared by every call.
//
// All providers (the native driver, S3-compatible servers, …) implement the
// Service interface. Callers depend only on this package — never on a
// specific provider package.
//
// Usage:
//
//	defaults := bucketsvc.NewDefaults()
//	eps := defaults.Resolve(bucketsvc.Endpoints{UseHTTPS: true})
//	svc := kodo.New(accessKey, secretKey, eps)
//	info, err := svc.GetBucketInfo(ctx, "artifacts")
package bucketsvc

import (
	"context"
	"time"
)

// Service is the contract every Bucket Service provider must implement.
// Both operations require signed credentials and are single synchronous
// attempts: no retry is built in, callers decide whether to re-invoke.
type Service interface {
	// GetBucketInfo confirms the bucket exists and the configured
	// credentials are authorized against it.
	GetBucketInfo(ctx context.Context, bucket string) (*BucketInfo, error)

	// ListBoundDomains returns the download domains bound to bucket, in
	// the order the provider lists them.
	ListBoundDomains(ctx context.Context, bucket string) ([]string, error)
}

// BucketInfo describes a bucket as reported by the provider.
type BucketInfo struct {
	// Name is the bucket name.
	Name string

	// Region is the provider region / zone the bucket lives in.
	// May be empty if the backend does not expose it.
	Region string

	// Private is true when the bucket denies anonymous downloads.
	Private bool

	// CreatedAt is when the bucket was created.
	// May be zero if the backend does not expose creation time.
	CreatedAt time.Time
}

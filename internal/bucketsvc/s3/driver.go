// Package s3 implements bucketsvc.Service for S3-compatible providers
// (MinIO, AWS S3, …) via the MinIO SDK. It covers deployments where the
// artifact bucket lives on an S3-protocol server instead of the native
// Bucket Service.
package s3

import (
	"context"

	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/errs"
	"github.com/cistack/artifactstore/internal/secret"
	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Driver is an S3-compatible implementation of bucketsvc.Service.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	client *miniogo.Client
}

// New builds a Driver against the API host in endpoints. The endpoint must
// already be resolved; construction performs no I/O.
func New(accessKey string, secretKey secret.Secret, endpoints bucketsvc.Endpoints) (*Driver, error) {
	client, err := miniogo.New(endpoints.API, &miniogo.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey.Reveal(), ""),
		Secure: endpoints.UseHTTPS,
	})
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindUnavailable, "failed to create s3 client", err)
	}
	return &Driver{client: client}, nil
}

// GetBucketInfo confirms the bucket exists and the credentials are
// authorized against it, reading the bucket's region as a side benefit.
func (d *Driver) GetBucketInfo(ctx context.Context, bucket string) (*bucketsvc.BucketInfo, error) {
	exists, err := d.client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapError(err, "bucket info lookup failed")
	}
	if !exists {
		return nil, errs.Newf(errs.ErrKindAuthDenied, "bucket %q not found or not accessible", bucket)
	}

	region, err := d.client.GetBucketLocation(ctx, bucket)
	if err != nil {
		return nil, mapError(err, "bucket location lookup failed")
	}

	return &bucketsvc.BucketInfo{
		Name:   bucket,
		Region: region,
		// S3-protocol servers do not report a private flag on this path;
		// buckets are treated as private, which is the safe default for
		// artifact storage.
		Private: true,
	}, nil
}

// ListBoundDomains reports the bucket's virtual-hosted endpoint as its one
// bound domain. S3-protocol servers have no equivalent of the native
// domain-binding listing, so the download domain is derived from the
// endpoint the client is already configured with.
func (d *Driver) ListBoundDomains(ctx context.Context, bucket string) ([]string, error) {
	exists, err := d.client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, mapError(err, "domain listing failed")
	}
	if !exists {
		return nil, nil
	}
	return []string{bucket + "." + d.client.EndpointURL().Host}, nil
}

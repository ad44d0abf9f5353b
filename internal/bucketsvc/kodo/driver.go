// Package kodo implements bucketsvc.Service against the provider's native
// management API: HMAC-SHA1 signed GET requests to the resolved lookup and
// api hosts. Only the two management operations the configuration path
// consumes are implemented; the transfer protocol stays out of scope.
package kodo

import (
	"context"
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/errs"
	"github.com/cistack/artifactstore/internal/secret"
)

// Driver is the native management-API implementation of bucketsvc.Service.
// It is safe for concurrent use by multiple goroutines.
type Driver struct {
	accessKey string
	secretKey secret.Secret
	endpoints bucketsvc.Endpoints
	client    *http.Client
}

// Option customises a Driver.
type Option func(*Driver)

// WithHTTPClient replaces the default HTTP client, letting callers control
// transport timeouts. The driver itself adds no timeout of its own.
func WithHTTPClient(c *http.Client) Option {
	return func(d *Driver) { d.client = c }
}

// New returns a Driver signing requests with the given key pair and sending
// them to the hosts in endpoints. The endpoints must already be resolved;
// the driver never falls back to defaults on its own.
func New(accessKey string, secretKey secret.Secret, endpoints bucketsvc.Endpoints, opts ...Option) *Driver {
	d := &Driver{
		accessKey: accessKey,
		secretKey: secretKey,
		endpoints: endpoints,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// bucketInfoResponse is the provider's bucket metadata payload. Only the
// fields the configuration path reads are mapped.
type bucketInfoResponse struct {
	Region  string `json:"region"`
	Private int    `json:"private"`
	Ctime   int64  `json:"ctime"`
}

// GetBucketInfo confirms the bucket exists and the credentials are
// authorized against it. A single synchronous attempt, no retry.
func (d *Driver) GetBucketInfo(ctx context.Context, bucket string) (*bucketsvc.BucketInfo, error) {
	base := bucketsvc.BaseURL(d.endpoints.Lookup, d.endpoints.UseHTTPS)
	path := "/v2/bucketInfo"
	query := "bucket=" + url.QueryEscape(bucket)

	body, err := d.get(ctx, base, path, query, "bucket info lookup failed")
	if err != nil {
		return nil, err
	}

	var resp bucketInfoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errs.Wrap(errs.ErrKindUnavailable, "bucket info response is not valid JSON", err)
	}

	info := &bucketsvc.BucketInfo{
		Name:    bucket,
		Region:  resp.Region,
		Private: resp.Private != 0,
	}
	if resp.Ctime > 0 {
		info.CreatedAt = time.Unix(resp.Ctime, 0)
	}
	return info, nil
}

// ListBoundDomains returns the download domains bound to bucket in provider
// order (oldest binding first).
func (d *Driver) ListBoundDomains(ctx context.Context, bucket string) ([]string, error) {
	base := bucketsvc.BaseURL(d.endpoints.API, d.endpoints.UseHTTPS)
	path := "/v6/domain/list"
	query := "tbl=" + url.QueryEscape(bucket)

	body, err := d.get(ctx, base, path, query, "domain listing failed")
	if err != nil {
		return nil, err
	}

	var domains []string
	if err := json.Unmarshal(body, &domains); err != nil {
		return nil, errs.Wrap(errs.ErrKindUnavailable, "domain listing response is not valid JSON", err)
	}
	return domains, nil
}

// get performs one signed GET and returns the response body, mapping any
// failure through mapError.
func (d *Driver) get(ctx context.Context, base, path, query, msg string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path+"?"+query, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindUnavailable, msg, err)
	}
	req.Header.Set("Authorization", "QBox "+d.signRequest(path, query))

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, mapTransportError(err, msg)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindUnavailable, msg, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusError(resp.StatusCode, body, msg)
	}
	return body, nil
}

// signRequest computes the management access token over "path?query\n".
// This is the one place the secret key is revealed.
func (d *Driver) signRequest(path, query string) string {
	data := path
	if query != "" {
		data += "?" + query
	}
	data += "\n"

	mac := hmac.New(sha1.New, []byte(d.secretKey.Reveal()))
	mac.Write([]byte(data))
	sign := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return fmt.Sprintf("%s:%s", d.accessKey, sign)
}

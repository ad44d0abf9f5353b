package backend

import (
	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/secret"
)

// BackendConfig is the immutable configuration of one storage backend. It
// is built by the Factory only after the credentials and bucket validated
// against the provider, and is replaced wholesale (never patched) on
// reconfiguration.
type BackendConfig struct {
	creds             CredentialSet
	endpoints         bucketsvc.Endpoints
	objectNamePrefix  string
	infrequentStorage bool
}

func (c *BackendConfig) AccessKey() string {
	return c.creds.AccessKey
}

func (c *BackendConfig) SecretKey() secret.Secret {
	return c.creds.SecretKey
}

func (c *BackendConfig) BucketName() string {
	return c.creds.BucketName
}

// Endpoints returns the fully-resolved endpoint set the backend was built
// with, defaults already substituted.
func (c *BackendConfig) Endpoints() bucketsvc.Endpoints {
	return c.endpoints
}

// ObjectNamePrefix is prepended to every artifact object key. Empty by
// default.
func (c *BackendConfig) ObjectNamePrefix() string {
	return c.objectNamePrefix
}

// InfrequentStorage selects the provider's cost-optimised storage tier for
// uploaded artifacts. Pure pass-through.
func (c *BackendConfig) InfrequentStorage() bool {
	return c.infrequentStorage
}

func (c *BackendConfig) DownloadDomain() string {
	return c.endpoints.Download
}

func (c *BackendConfig) UseHTTPS() bool {
	return c.endpoints.UseHTTPS
}

// Package backend holds the domain core of the artifact storage
// configuration path: credential and backend config types, the remote
// validator, download-domain auto-discovery, the backend factory, and the
// singleton registry that keeps the host's extension list at exactly one
// active backend.
package backend

import (
	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/errs"
	"github.com/cistack/artifactstore/internal/secret"
)

// CredentialSet pairs the provider key pair with the bucket it unlocks.
type CredentialSet struct {
	AccessKey  string
	SecretKey  secret.Secret
	BucketName string
}

// Complete reports whether all three fields are present. Incomplete sets
// are normal during incremental form entry; no remote call is attempted
// until the set completes.
func (c CredentialSet) Complete() bool {
	return c.AccessKey != "" && !c.SecretKey.IsZero() && c.BucketName != ""
}

// Validate returns a MissingField error naming the first empty field, or
// nil when the set is complete.
func (c CredentialSet) Validate() error {
	switch {
	case c.AccessKey == "":
		return errs.New(errs.ErrKindMissingField, "accessKey must not be empty")
	case c.SecretKey.IsZero():
		return errs.New(errs.ErrKindMissingField, "secretKey must not be empty")
	case c.BucketName == "":
		return errs.New(errs.ErrKindMissingField, "bucketName must not be empty")
	}
	return nil
}

// ServiceBuilder constructs a Bucket Service client for one credential pair
// and an already-resolved endpoint set. Each validation or discovery call
// builds a fresh client, mirroring how the provider SDK is used: the client
// is cheap and carries no connection state.
type ServiceBuilder func(accessKey string, secretKey secret.Secret, endpoints bucketsvc.Endpoints) (bucketsvc.Service, error)

package backend

import (
	"context"

	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/logger"
)

// Validator confirms a credential set against the remote Bucket Service.
type Validator struct {
	defaults *bucketsvc.Defaults
	build    ServiceBuilder
	log      *logger.Logger
}

// NewValidator returns a Validator resolving endpoints through defaults and
// reaching the provider through build.
func NewValidator(defaults *bucketsvc.Defaults, build ServiceBuilder, log *logger.Logger) *Validator {
	if log == nil {
		log = logger.Nop()
	}
	return &Validator{defaults: defaults, build: build, log: log}
}

// Validate performs a single bucket-info lookup with the given credentials
// and endpoints. An incomplete credential set returns nil: configuration is
// allowed to be incomplete during incremental form entry, and the outcome
// is "not yet determinable" rather than a failure. Remote errors are
// returned verbatim; there is no retry, and no state is mutated beyond the
// endpoint-default promotion that resolving implies.
func (v *Validator) Validate(ctx context.Context, creds CredentialSet, endpoints bucketsvc.Endpoints) error {
	if !creds.Complete() {
		return nil
	}

	resolved := v.defaults.Resolve(endpoints)
	svc, err := v.build(creds.AccessKey, creds.SecretKey, resolved)
	if err != nil {
		return err
	}

	if _, err := svc.GetBucketInfo(ctx, creds.BucketName); err != nil {
		v.log.With().
			Str("bucket", creds.BucketName).
			Err(err).
			Logger().
			Warn("bucket validation failed")
		return err
	}
	return nil
}

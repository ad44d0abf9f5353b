package backend

import (
	"context"

	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/logger"
)

// Factory builds immutable BackendConfig values from validated operator
// input.
type Factory struct {
	defaults *bucketsvc.Defaults
	build    ServiceBuilder
	log      *logger.Logger
}

// NewFactory returns a Factory resolving endpoints through defaults and
// reaching the provider through build.
func NewFactory(defaults *bucketsvc.Defaults, build ServiceBuilder, log *logger.Logger) *Factory {
	if log == nil {
		log = logger.Nop()
	}
	return &Factory{defaults: defaults, build: build, log: log}
}

// Build checks the required fields, resolves the endpoint set, fills the
// download domain by auto-discovery when it was left blank, and returns the
// immutable BackendConfig. MissingField and MalformedEndpoint are detected
// before any remote call; a bucket with no bound domain fails the build
// with NoDownloadDomain rather than producing a half-usable backend.
func (f *Factory) Build(ctx context.Context, creds CredentialSet, endpoints bucketsvc.Endpoints, objectNamePrefix string, infrequentStorage bool) (*BackendConfig, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if err := endpoints.Validate(); err != nil {
		return nil, err
	}

	resolved := f.defaults.Resolve(endpoints)

	if resolved.Download == "" {
		svc, err := f.build(creds.AccessKey, creds.SecretKey, resolved)
		if err != nil {
			return nil, err
		}
		domain, err := ResolveDownloadDomain(ctx, svc, creds.BucketName, "")
		if err != nil {
			return nil, err
		}
		resolved.Download = domain
	}

	cfg := &BackendConfig{
		creds:             creds,
		endpoints:         resolved,
		objectNamePrefix:  objectNamePrefix,
		infrequentStorage: infrequentStorage,
	}

	f.log.With().
		Str("accessKey", creds.AccessKey).
		Str("bucket", creds.BucketName).
		Str("downloadDomain", resolved.Download).
		Logger().
		Info("backend configured")
	return cfg, nil
}

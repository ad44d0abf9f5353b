package settings

import (
	"context"
	"sync"

	"github.com/cistack/artifactstore/internal/backend"
	"github.com/cistack/artifactstore/internal/bucketsvc"
	"github.com/cistack/artifactstore/internal/errs"
	"github.com/cistack/artifactstore/internal/logger"
	"github.com/cistack/artifactstore/internal/secret"
)

// Store holds the persisted record and the operator's in-memory draft, and
// wires the configuration path together. Field checks record their value in
// the draft even when validation fails, so a partially-valid draft stays
// editable; only Apply touches the disk and the backend registry.
type Store struct {
	mu    sync.Mutex
	path  string
	draft Record

	validator *backend.Validator
	factory   *backend.Factory
	registry  *backend.Registry
	list      backend.ExtensionList
	log       *logger.Logger
}

// NewStore loads the record at path and returns a store around it.
func NewStore(path string, validator *backend.Validator, factory *backend.Factory,
	registry *backend.Registry, list backend.ExtensionList, log *logger.Logger) (*Store, error) {
	rec, err := Load(path)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		path:      path,
		draft:     *rec,
		validator: validator,
		factory:   factory,
		registry:  registry,
		list:      list,
		log:       log,
	}, nil
}

// Draft returns a snapshot of the current draft.
func (s *Store) Draft() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Bootstrap registers the backend from the loaded record at startup. An
// incomplete record is not an error: registration simply waits for the
// operator to finish configuration.
func (s *Store) Bootstrap(ctx context.Context) error {
	draft := s.Draft()
	creds := draft.Credentials()
	if !creds.Complete() {
		s.log.Debug("settings record incomplete, backend registration deferred")
		return nil
	}

	cfg, err := s.factory.Build(ctx, creds, draft.Endpoints(),
		draft.ObjectNamePrefix, draft.InfrequentStorage)
	if err != nil {
		return err
	}
	s.registry.RegisterOrUpdate(s.list, cfg)
	return nil
}

// --- Field-level checks ---
//
// Each check records the submitted value in the draft before reporting the
// validation outcome. Credential checks re-validate the whole credential
// set against the provider once it is complete; domain checks are purely
// local host-syntax checks, reported immediately with no remote call.

func (s *Store) CheckAccessKey(ctx context.Context, value string) error {
	s.mu.Lock()
	s.draft.AccessKey = value
	s.mu.Unlock()
	if value == "" {
		return errs.New(errs.ErrKindMissingField, "accessKey must not be empty")
	}
	return s.revalidate(ctx)
}

func (s *Store) CheckSecretKey(ctx context.Context, plaintext string) error {
	s.mu.Lock()
	s.draft.SecretKey = secret.New(plaintext).Encode()
	s.mu.Unlock()
	if plaintext == "" {
		return errs.New(errs.ErrKindMissingField, "secretKey must not be empty")
	}
	return s.revalidate(ctx)
}

func (s *Store) CheckBucketName(ctx context.Context, value string) error {
	s.mu.Lock()
	s.draft.BucketName = value
	s.mu.Unlock()
	if value == "" {
		return errs.New(errs.ErrKindMissingField, "bucketName must not be empty")
	}
	return s.revalidate(ctx)
}

func (s *Store) CheckDownloadDomain(value string) error {
	s.mu.Lock()
	s.draft.DownloadDomain = value
	s.mu.Unlock()
	return checkHost("downloadDomain", value)
}

func (s *Store) CheckAPIDomain(value string) error {
	s.mu.Lock()
	s.draft.APIDomain = value
	s.mu.Unlock()
	return checkHost("apiDomain", value)
}

func (s *Store) CheckMetadataDomain(value string) error {
	s.mu.Lock()
	s.draft.MetadataDomain = value
	s.mu.Unlock()
	return checkHost("metadataDomain", value)
}

func (s *Store) CheckLookupDomain(value string) error {
	s.mu.Lock()
	s.draft.LookupDomain = value
	s.mu.Unlock()
	return checkHost("lookupDomain", value)
}

// SetObjectNamePrefix records the prefix. Pass-through, no validation.
func (s *Store) SetObjectNamePrefix(value string) {
	s.mu.Lock()
	s.draft.ObjectNamePrefix = value
	s.mu.Unlock()
}

// SetUseHTTPS records the scheme flag. Pass-through, no validation.
func (s *Store) SetUseHTTPS(value bool) {
	s.mu.Lock()
	s.draft.UseHTTPS = value
	s.mu.Unlock()
}

// SetInfrequentStorage records the storage-tier flag. Pass-through.
func (s *Store) SetInfrequentStorage(value bool) {
	s.mu.Lock()
	s.draft.InfrequentStorage = value
	s.mu.Unlock()
}

func (s *Store) revalidate(ctx context.Context) error {
	draft := s.Draft()
	return s.validator.Validate(ctx, draft.Credentials(), draft.Endpoints())
}

func checkHost(field, value string) error {
	if value == "" {
		return nil
	}
	if err := bucketsvc.ValidateHost(value); err != nil {
		return errs.Wrap(errs.ErrKindMalformedEndpoint, field+" is not a valid host", err)
	}
	return nil
}

// Apply is the save path: validate the draft against the provider, build
// the backend, persist the draft, and only then register the backend. Any
// failure, the disk write included, leaves the previously persisted record
// untouched and registers nothing. When the credential set
// is still incomplete the draft is persisted as-is and registration waits,
// matching incremental form entry.
func (s *Store) Apply(ctx context.Context) error {
	draft := s.Draft()
	creds := draft.Credentials()
	endpoints := draft.Endpoints()

	if err := endpoints.Validate(); err != nil {
		return err
	}
	if err := s.validator.Validate(ctx, creds, endpoints); err != nil {
		return err
	}

	var cfg *backend.BackendConfig
	if creds.Complete() {
		built, err := s.factory.Build(ctx, creds, endpoints,
			draft.ObjectNamePrefix, draft.InfrequentStorage)
		if err != nil {
			return err
		}
		cfg = built
		// Keep the discovered download domain, so the next load does not
		// have to discover it again.
		draft.DownloadDomain = cfg.DownloadDomain()
	}

	// Persist before registering: a failed save must leave the registry
	// and the host list exactly as they were.
	if err := draft.Save(s.path); err != nil {
		return err
	}
	if cfg != nil {
		s.registry.RegisterOrUpdate(s.list, cfg)
	}

	s.mu.Lock()
	s.draft.DownloadDomain = draft.DownloadDomain
	s.mu.Unlock()
	s.log.With().Str("bucket", draft.BucketName).Logger().Info("settings applied")
	return nil
}

package backend

import (
	"sync"

	"github.com/cistack/artifactstore/internal/logger"
)

// ExtensionList is the host collaborator: a mutable ordered collection of
// registered artifact-manager factories. The registry only ever scans it
// and appends to it; other extensions in the list are left untouched.
type ExtensionList interface {
	// Entries returns the current registrations in order.
	Entries() []any

	// Append adds a registration at the end of the list.
	Append(entry any)
}

// Entry is the registration placed in the host's extension list. The entry
// itself is long-lived and shared: reconfiguration swaps its inner
// BackendConfig wholesale under the entry's lock, so every holder of the
// same *Entry observes the updated values, while each BackendConfig stays
// immutable.
type Entry struct {
	mu  sync.RWMutex
	cfg *BackendConfig
}

// Config returns the entry's current backend configuration.
func (e *Entry) Config() *BackendConfig {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cfg
}

// ForRun binds a build run to the entry's current configuration.
func (e *Entry) ForRun(run RunID) *ArtifactManager {
	return e.Config().ForRun(run)
}

func (e *Entry) update(cfg *BackendConfig) {
	e.mu.Lock()
	e.cfg = cfg
	e.mu.Unlock()
}

// Registry is the process-wide singleton slot: it holds at most one active
// backend registration and reconciles repeated configuration submissions
// into it instead of creating duplicates. Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	current *Entry
	log     *logger.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{log: log}
}

// Get returns the tracked singleton entry, or nil before the first
// successful registration.
func (r *Registry) Get() *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// UpdateInPlace overwrites the tracked entry's configuration with cfg.
// Returns false when no entry is tracked yet.
func (r *Registry) UpdateInPlace(cfg *BackendConfig) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == nil {
		return false
	}
	r.current.update(cfg)
	return true
}

// InsertIfAbsent tracks cfg as the singleton and appends it to the host
// list, unless the list already contains a backend entry. Returns the
// entry now considered active and whether an insertion happened.
func (r *Registry) InsertIfAbsent(list ExtensionList, cfg *BackendConfig) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insertIfAbsentLocked(list, cfg)
}

// RegisterOrUpdate is the reconciliation entry point, idempotent and safe
// to call repeatedly (once at startup load, once per save). The first call
// constructs the entry and appends it to the host list; later calls
// overwrite the tracked entry's fields in place so existing holders see the
// new values, and never append a second time.
func (r *Registry) RegisterOrUpdate(list ExtensionList, cfg *BackendConfig) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != nil {
		r.current.update(cfg)
		r.ensurePresentLocked(list)
		return r.current
	}

	entry, _ := r.insertIfAbsentLocked(list, cfg)
	return entry
}

func (r *Registry) insertIfAbsentLocked(list ExtensionList, cfg *BackendConfig) (*Entry, bool) {
	// Re-initialization after a reload can leave a backend entry in the
	// host list that this registry is not tracking. Detect it, skip the
	// insertion, and carry on with the existing instance.
	for _, raw := range list.Entries() {
		if existing, ok := raw.(*Entry); ok {
			r.log.Info("artifact backend was already set up")
			existing.update(cfg)
			r.current = existing
			return existing, false
		}
	}

	entry := &Entry{cfg: cfg}
	list.Append(entry)
	r.current = entry
	r.log.With().
		Str("bucket", cfg.BucketName()).
		Str("downloadDomain", cfg.DownloadDomain()).
		Logger().
		Info("artifact backend registered")
	return entry, true
}

func (r *Registry) ensurePresentLocked(list ExtensionList) {
	for _, raw := range list.Entries() {
		if _, ok := raw.(*Entry); ok {
			return
		}
	}
	list.Append(r.current)
}
